package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("System Design"))
	assert.True(t, IsValidCategory("AI/ML"))
	assert.False(t, IsValidCategory("system design"))
	assert.False(t, IsValidCategory(""))
}

func TestTimeSpent_Minutes(t *testing.T) {
	assert.Equal(t, 45.0, TimeSpent{Amount: 45, Unit: UnitMinutes}.Minutes())
	assert.Equal(t, 120.0, TimeSpent{Amount: 2, Unit: UnitHours}.Minutes())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, ChallengePaused.Valid())
	assert.False(t, ChallengeStatus("done").Valid())
	assert.True(t, EntryArchived.Valid())
	assert.False(t, EntryStatus("hidden").Valid())
	assert.False(t, TimeUnit("days").Valid())
}

func TestEntry_InChallenge(t *testing.T) {
	assert.False(t, (&Entry{ChallengeID: "none"}).InChallenge())
	assert.False(t, (&Entry{}).InChallenge())
	assert.True(t, (&Entry{ChallengeID: "c1"}).InChallenge())
}

func TestChallenge_Progress(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &Challenge{StartDate: start, Duration: 10}

	tests := []struct {
		name    string
		now     time.Time
		entries int
		want    ChallengeProgress
	}{
		{"before start", start.Add(-time.Hour), 0, ChallengeProgress{}},
		{"first day", start.Add(2 * time.Hour), 1, ChallengeProgress{DaysElapsed: 1, EntriesCount: 1, Percent: 10}},
		{"mid", start.AddDate(0, 0, 4), 3, ChallengeProgress{DaysElapsed: 5, EntriesCount: 3, Percent: 30}},
		{"after end", start.AddDate(0, 0, 30), 12, ChallengeProgress{DaysElapsed: 10, EntriesCount: 12, Percent: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Progress(tt.now, tt.entries))
		})
	}

	assert.Equal(t, start.AddDate(0, 0, 10), c.EndDate())
}

func TestChallenge_ProgressRounds(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		duration, entries, want int
	}{
		{3, 1, 33},
		{3, 2, 67},
		{7, 3, 43},
		{30, 1, 3},
		{3, 4, 100},
	}
	for _, tt := range tests {
		c := &Challenge{StartDate: start, Duration: tt.duration}
		got := c.Progress(start.Add(time.Hour), tt.entries).Percent
		assert.Equal(t, tt.want, got, "%d of %d days", tt.entries, tt.duration)
	}
}
