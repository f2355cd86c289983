package view

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/api"
)

// AllCategories disables the category filter.
const AllCategories = "All"

type Filter struct {
	Search   string
	Category string
}

func (f Filter) matches(e api.Entry) bool {
	if f.Category != "" && f.Category != AllCategories && e.Category != f.Category {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Topic), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// FilterEntries returns the entries matching f, newest date first. The
// input slice is not modified.
func FilterEntries(entries []api.Entry, f Filter) []api.Entry {
	out := make([]api.Entry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	SortByDateDesc(out)
	return out
}

func SortByDateDesc(entries []api.Entry) {
	slices.SortStableFunc(entries, func(a, b api.Entry) int {
		return b.Date.Compare(a.Date)
	})
}

func SortByDayNumberDesc(entries []api.Entry) {
	slices.SortStableFunc(entries, func(a, b api.Entry) int {
		return b.DayNumber - a.DayNumber
	})
}

// ChallengeEntries selects the entries of one challenge, highest day first.
func ChallengeEntries(entries []api.Entry, challengeID string) []api.Entry {
	out := make([]api.Entry, 0)
	for _, e := range entries {
		if e.ChallengeID == challengeID {
			out = append(out, e)
		}
	}
	SortByDayNumberDesc(out)
	return out
}

// NextDayNumber predicts the day number the server will assign to a new
// entry in the challenge.
func NextDayNumber(entries []api.Entry, challengeID string) int {
	n := 0
	for _, e := range entries {
		if e.ChallengeID == challengeID {
			n++
		}
	}
	return n + 1
}
