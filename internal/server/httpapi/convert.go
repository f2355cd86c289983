package httpapi

import (
	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/server/services"
)

func toUser(u *models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

func toChallenge(v *services.ChallengeView) api.Challenge {
	return api.Challenge{
		ID:           v.ID,
		UserID:       v.UserID,
		Name:         v.Name,
		Category:     v.Category,
		Description:  v.Description,
		Duration:     v.Duration,
		StartDate:    v.StartDate,
		Status:       string(v.Status),
		DaysElapsed:  v.Progress.DaysElapsed,
		EntriesCount: v.Progress.EntriesCount,
		Progress:     v.Progress.Percent,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toEntry(e *models.Entry) api.Entry {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return api.Entry{
		ID:          e.ID,
		UserID:      e.UserID,
		Date:        e.Date,
		Topic:       e.Topic,
		Category:    e.Category,
		Content:     e.Content,
		KeyTakeaway: e.KeyTakeaway,
		Doubts:      e.Doubts,
		TimeSpent:   api.TimeSpent{Amount: e.TimeSpent.Amount, Unit: string(e.TimeSpent.Unit)},
		ChallengeID: e.ChallengeID,
		DayNumber:   e.DayNumber,
		Tags:        tags,
		Status:      string(e.Status),
		Views:       e.Views,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntries(in []*models.Entry) []api.Entry {
	out := make([]api.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, toEntry(e))
	}
	return out
}

func toStats(s *models.Stats) api.Stats {
	return api.Stats{
		CurrentStreak:       s.CurrentStreak,
		LongestStreak:       s.LongestStreak,
		TotalEntriesCreated: s.TotalEntriesCreated,
		TotalHoursLearned:   s.TotalHoursLearned,
		TopicsCount:         s.TopicsCount,
		LastEntryDate:       s.LastEntryDate,
	}
}

func challengeInput(in api.ChallengeInput) services.ChallengeInput {
	out := services.ChallengeInput{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Duration:    in.Duration,
		StartDate:   in.StartDate,
	}
	if in.Status != nil {
		st := models.ChallengeStatus(*in.Status)
		out.Status = &st
	}
	return out
}

func entryInput(in api.EntryInput) services.EntryInput {
	out := services.EntryInput{
		Date:        in.Date,
		Topic:       in.Topic,
		Category:    in.Category,
		Content:     in.Content,
		KeyTakeaway: in.KeyTakeaway,
		Doubts:      in.Doubts,
		ChallengeID: in.ChallengeID,
		DayNumber:   in.DayNumber,
		Tags:        in.Tags,
	}
	if in.TimeSpent != nil {
		out.TimeSpent = &models.TimeSpent{Amount: in.TimeSpent.Amount, Unit: models.TimeUnit(in.TimeSpent.Unit)}
	}
	if in.Status != nil {
		st := models.EntryStatus(*in.Status)
		out.Status = &st
	}
	return out
}
