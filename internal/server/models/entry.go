package models

import (
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
)

type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
)

func (u TimeUnit) Valid() bool {
	return u == UnitMinutes || u == UnitHours
}

type TimeSpent struct {
	Amount float64
	Unit   TimeUnit
}

// Minutes normalizes the amount to minutes.
func (t TimeSpent) Minutes() float64 {
	if t.Unit == UnitHours {
		return t.Amount * 60
	}
	return t.Amount
}

type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntryPublished EntryStatus = "published"
	EntryArchived  EntryStatus = "archived"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case EntryDraft, EntryPublished, EntryArchived:
		return true
	}
	return false
}

type Entry struct {
	ID          string
	UserID      string
	Date        time.Time
	Topic       string
	Category    string
	Content     string
	KeyTakeaway string
	Doubts      string
	TimeSpent   TimeSpent
	ChallengeID string
	DayNumber   int
	Tags        []string
	Status      EntryStatus
	Views       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InChallenge reports whether the entry references a real challenge.
func (e *Entry) InChallenge() bool {
	return e.ChallengeID != "" && e.ChallengeID != common.NoChallenge
}
