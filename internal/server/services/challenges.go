package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/dbx"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/repomanager"
)

// ChallengeInput carries the fields supplied by the caller. Nil means
// "not supplied": Create falls back to defaults, Update keeps the stored value.
type ChallengeInput struct {
	Name        *string
	Category    *string
	Description *string
	Duration    *int
	StartDate   *time.Time
	Status      *models.ChallengeStatus
}

// ChallengeView is a challenge together with its derived progress.
type ChallengeView struct {
	*models.Challenge
	Progress models.ChallengeProgress
}

type ChallengeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewChallengeService(db *sql.DB, m repomanager.RepositoryManager) *ChallengeService {
	return &ChallengeService{db: db, repomanager: m, now: time.Now}
}

func (s *ChallengeService) List(ctx context.Context, userID string) ([]*ChallengeView, error) {
	list, err := s.repomanager.Challenges(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repomanager.Entries(s.db).CountPerChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]*ChallengeView, 0, len(list))
	for _, c := range list {
		result = append(result, &ChallengeView{Challenge: c, Progress: c.Progress(now, counts[c.ID])})
	}
	return result, nil
}

// Get returns an owned challenge. Absent and foreign ids both give
// common.ErrorNotFound.
func (s *ChallengeService) Get(ctx context.Context, userID, id string) (*ChallengeView, error) {
	c, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	n, err := s.repomanager.Entries(s.db).CountByChallenge(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &ChallengeView{Challenge: c, Progress: c.Progress(s.now(), n)}, nil
}

func (s *ChallengeService) get(ctx context.Context, userID, id string) (*models.Challenge, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Challenges(s.db).Get(ctx, userID, id)
}

// Entries lists the challenge's entries, highest day number first.
func (s *ChallengeService) Entries(ctx context.Context, userID, id string) ([]*models.Entry, error) {
	if _, err := s.get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.repomanager.Entries(s.db).ListByChallenge(ctx, userID, id)
}

func (s *ChallengeService) Create(ctx context.Context, userID string, in ChallengeInput) (*ChallengeView, error) {
	c := &models.Challenge{
		UserID:    userID,
		StartDate: s.now(),
		Status:    models.ChallengeActive,
	}
	applyChallengeInput(c, in)

	if err := validateChallenge(c); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Challenges(s.db).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error creating challenge: %w", err)
	}
	return &ChallengeView{Challenge: created, Progress: created.Progress(s.now(), 0)}, nil
}

// Update merges the supplied fields onto the stored challenge. Concurrent
// updates are last-write-wins.
func (s *ChallengeService) Update(ctx context.Context, userID, id string, in ChallengeInput) (*ChallengeView, error) {
	c, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applyChallengeInput(c, in)
	if err := validateChallenge(c); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Challenges(s.db).Update(ctx, c)
	if err != nil {
		return nil, err
	}

	n, err := s.repomanager.Entries(s.db).CountByChallenge(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &ChallengeView{Challenge: updated, Progress: updated.Progress(s.now(), n)}, nil
}

// Delete removes the challenge and every entry that references it in one
// transaction. It returns the number of entries removed.
func (s *ChallengeService) Delete(ctx context.Context, userID, id string) (int64, error) {
	if !validID(id) {
		return 0, common.ErrorNotFound
	}

	var removed int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Challenges(tx).Delete(ctx, userID, id); err != nil {
			return err
		}
		n, err := s.repomanager.Entries(tx).DeleteByChallenge(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("error deleting challenge entries: %w", err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// CompleteExpired closes every active challenge whose window has passed.
func (s *ChallengeService) CompleteExpired(ctx context.Context) (int64, error) {
	return s.repomanager.Challenges(s.db).CompleteExpired(ctx, s.now())
}

func applyChallengeInput(c *models.Challenge, in ChallengeInput) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		c.Category = *in.Category
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.StartDate != nil {
		c.StartDate = *in.StartDate
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
}

func validateChallenge(c *models.Challenge) error {
	switch {
	case c.Name == "":
		return common.NewValidationError("name", "is required")
	case c.Description == "":
		return common.NewValidationError("description", "is required")
	case !models.IsValidCategory(c.Category):
		return common.NewValidationError("category", fmt.Sprintf("%q is not a known category", c.Category))
	case c.Duration <= 0:
		return common.NewValidationError("duration", "must be a positive number of days")
	case c.StartDate.IsZero():
		return common.NewValidationError("startDate", "is required")
	case !c.Status.Valid():
		return common.NewValidationError("status", fmt.Sprintf("%q is not a known status", c.Status))
	}
	return nil
}
