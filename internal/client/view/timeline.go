package view

import (
	"github.com/dmitrijs2005/devlog/internal/api"
)

type MonthGroup struct {
	// Label reads like "March 2026".
	Label   string
	Entries []api.Entry
}

// Timeline groups published entries by calendar month (UTC), newest month
// and newest entry first.
func Timeline(entries []api.Entry) []MonthGroup {
	published := make([]api.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == "published" {
			published = append(published, e)
		}
	}
	SortByDateDesc(published)

	var groups []MonthGroup
	for _, e := range published {
		label := e.Date.UTC().Format("January 2006")
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, MonthGroup{Label: label})
		}
		last := &groups[len(groups)-1]
		last.Entries = append(last.Entries, e)
	}
	return groups
}
