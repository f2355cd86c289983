package models

import (
	"math"
	"time"
)

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeAbandoned ChallengeStatus = "abandoned"
	ChallengePaused    ChallengeStatus = "paused"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeActive, ChallengeCompleted, ChallengeAbandoned, ChallengePaused:
		return true
	}
	return false
}

// Challenge is a named, fixed-duration goal. Duration is in days.
type Challenge struct {
	ID          string
	UserID      string
	Name        string
	Category    string
	Description string
	Duration    int
	StartDate   time.Time
	Status      ChallengeStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EndDate is the first instant after the challenge window.
func (c *Challenge) EndDate() time.Time {
	return c.StartDate.AddDate(0, 0, c.Duration)
}

// ChallengeProgress is derived from a challenge and its entries at read time.
type ChallengeProgress struct {
	DaysElapsed  int
	EntriesCount int
	Percent      int
}

// Progress computes elapsed days (capped at Duration) and the share of days
// that have an entry.
func (c *Challenge) Progress(now time.Time, entriesCount int) ChallengeProgress {
	p := ChallengeProgress{EntriesCount: entriesCount}
	if c.Duration <= 0 {
		return p
	}

	elapsed := int(now.Sub(c.StartDate).Hours()/24) + 1
	if now.Before(c.StartDate) {
		elapsed = 0
	}
	if elapsed > c.Duration {
		elapsed = c.Duration
	}
	p.DaysElapsed = elapsed

	pct := int(math.Round(float64(entriesCount) * 100 / float64(c.Duration)))
	if pct > 100 {
		pct = 100
	}
	p.Percent = pct
	return p
}
