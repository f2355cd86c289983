package view

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/api"
)

const (
	dashboardChallenges = 3
	dashboardEntries    = 5
)

type Dashboard struct {
	Stats            api.Stats
	ActiveChallenges []api.Challenge
	RecentEntries    []api.Entry
}

// BuildDashboard keeps at most three active challenges and the five most
// recent entries.
func BuildDashboard(stats api.Stats, challenges []api.Challenge, entries []api.Entry) Dashboard {
	d := Dashboard{Stats: stats, ActiveChallenges: []api.Challenge{}}

	for _, c := range challenges {
		if c.Status != "active" {
			continue
		}
		d.ActiveChallenges = append(d.ActiveChallenges, c)
		if len(d.ActiveChallenges) == dashboardChallenges {
			break
		}
	}

	recent := FilterEntries(entries, Filter{})
	if len(recent) > dashboardEntries {
		recent = recent[:dashboardEntries]
	}
	d.RecentEntries = recent

	return d
}

// ProgressBar renders percent (clamped to 0..100) as a fixed-width bar.
func ProgressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + fmt.Sprintf("] %3d%%", percent)
}
