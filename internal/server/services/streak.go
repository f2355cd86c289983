package services

import (
	"sort"

	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/timex"
)

const (
	StreakPlaceholder = "placeholder"
	StreakConsecutive = "consecutive"
)

// StreakCalculator derives the current and longest streak from a user's entries.
type StreakCalculator interface {
	Streaks(entries []*models.Entry) (current, longest int)
}

// NewStreakCalculator picks an implementation by config name. Unknown names
// fall back to the placeholder.
func NewStreakCalculator(name string) StreakCalculator {
	if name == StreakConsecutive {
		return ConsecutiveDayStreak{}
	}
	return PlaceholderStreak{}
}

// PlaceholderStreak reproduces the fixed figures the product shipped with:
// 3 when there is any entry, otherwise 0, and a longest streak of 7.
type PlaceholderStreak struct{}

func (PlaceholderStreak) Streaks(entries []*models.Entry) (int, int) {
	if len(entries) == 0 {
		return 0, 7
	}
	return 3, 7
}

// ConsecutiveDayStreak counts runs of UTC calendar days that have at least one
// entry. The current streak is the run that ends on the most recent entry day.
type ConsecutiveDayStreak struct{}

func (ConsecutiveDayStreak) Streaks(entries []*models.Entry) (int, int) {
	if len(entries) == 0 {
		return 0, 0
	}

	seen := make(map[int64]struct{}, len(entries))
	days := make([]int64, 0, len(entries))
	for _, e := range entries {
		d := timex.Day(e.Date).Unix()
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	const day = 24 * 60 * 60
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return run, longest
}
