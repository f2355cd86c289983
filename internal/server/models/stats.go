package models

import "time"

type Stats struct {
	CurrentStreak       int
	LongestStreak       int
	TotalEntriesCreated int
	TotalHoursLearned   float64
	TopicsCount         int
	LastEntryDate       *time.Time
}
