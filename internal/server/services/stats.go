package services

import (
	"math"

	"github.com/dmitrijs2005/devlog/internal/server/models"
)

// computeStats aggregates entries. Hours are summed in minutes and rounded
// to one decimal at the end.
func computeStats(entries []*models.Entry, streaks StreakCalculator) *models.Stats {
	st := &models.Stats{TotalEntriesCreated: len(entries)}

	topics := make(map[string]struct{})
	var minutes float64
	for _, e := range entries {
		topics[e.Topic] = struct{}{}
		minutes += e.TimeSpent.Minutes()

		if st.LastEntryDate == nil || e.Date.After(*st.LastEntryDate) {
			d := e.Date
			st.LastEntryDate = &d
		}
	}

	st.TopicsCount = len(topics)
	st.TotalHoursLearned = math.Round(minutes/60*10) / 10
	st.CurrentStreak, st.LongestStreak = streaks.Streaks(entries)
	return st
}
