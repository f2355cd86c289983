package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/dbx"
	"github.com/dmitrijs2005/devlog/internal/server/config"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/repomanager"
	"github.com/microcosm-cc/bluemonday"
)

// DayNumberPolicy selects how day numbers are allocated for new challenge entries.
type DayNumberPolicy string

const (
	// DayNumberLocking counts and inserts under a row lock on the challenge,
	// and rejects challenges the caller does not own.
	DayNumberLocking DayNumberPolicy = "locking"
	// DayNumberLegacy counts then inserts without a lock. Concurrent creates
	// can receive the same day number.
	DayNumberLegacy DayNumberPolicy = "legacy"
)

// EntryInput carries caller-supplied fields. Nil pointers (and a nil Tags
// slice) mean "not supplied".
type EntryInput struct {
	Date        *time.Time
	Topic       *string
	Category    *string
	Content     *string
	KeyTakeaway *string
	Doubts      *string
	TimeSpent   *models.TimeSpent
	ChallengeID *string
	DayNumber   *int
	Tags        []string
	Status      *models.EntryStatus
}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      DayNumberPolicy
	streaks     StreakCalculator
	sanitizer   *bluemonday.Policy
	now         func() time.Time
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *EntryService {
	policy := DayNumberPolicy(cfg.DayNumberPolicy)
	if policy != DayNumberLegacy {
		policy = DayNumberLocking
	}

	return &EntryService{
		db:          db,
		repomanager: m,
		policy:      policy,
		streaks:     NewStreakCalculator(cfg.StreakStrategy),
		sanitizer:   bluemonday.UGCPolicy(),
		now:         time.Now,
	}
}

// List returns the caller's entries, newest date first.
func (s *EntryService) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.repomanager.Entries(s.db).List(ctx, userID)
}

func (s *EntryService) Get(ctx context.Context, userID, id string) (*models.Entry, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Entries(s.db).Get(ctx, userID, id)
}

// Create validates and stores a new entry. When the entry belongs to a
// challenge and no day number was supplied, the next day number is allocated
// according to the configured policy.
func (s *EntryService) Create(ctx context.Context, userID string, in EntryInput) (*models.Entry, error) {
	e := &models.Entry{
		UserID:      userID,
		Date:        s.now(),
		ChallengeID: common.NoChallenge,
		TimeSpent:   models.TimeSpent{Unit: models.UnitMinutes},
		Tags:        []string{},
		Status:      models.EntryPublished,
	}
	s.applyEntryInput(e, in)

	if err := validateEntry(e); err != nil {
		return nil, err
	}

	autoNumber := e.InChallenge() && e.DayNumber == 0

	if !e.InChallenge() || s.policy == DayNumberLegacy {
		repo := s.repomanager.Entries(s.db)
		if autoNumber {
			n, err := repo.CountByChallenge(ctx, userID, e.ChallengeID)
			if err != nil {
				return nil, err
			}
			e.DayNumber = n + 1
		}
		created, err := repo.Create(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("error creating entry: %w", err)
		}
		return created, nil
	}

	if !validID(e.ChallengeID) {
		return nil, common.NewValidationError("challengeId", "unknown challenge")
	}

	var created *models.Entry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Challenges(tx).LockForUpdate(ctx, userID, e.ChallengeID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewValidationError("challengeId", "unknown challenge")
			}
			return err
		}

		repo := s.repomanager.Entries(tx)
		if autoNumber {
			n, err := repo.CountByChallenge(ctx, userID, e.ChallengeID)
			if err != nil {
				return err
			}
			e.DayNumber = n + 1
		}

		var err error
		created, err = repo.Create(ctx, e)
		if err != nil {
			return fmt.Errorf("error creating entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges the supplied fields onto the stored entry. Concurrent
// updates are last-write-wins.
//
// Moving an entry to another challenge goes through the same day-number
// allocation as Create; detaching it resets the day number unless one is
// supplied.
func (s *EntryService) Update(ctx context.Context, userID, id string, in EntryInput) (*models.Entry, error) {
	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prevChallenge := e.ChallengeID
	s.applyEntryInput(e, in)
	moved := e.ChallengeID != prevChallenge
	if moved && in.DayNumber == nil {
		e.DayNumber = 0
	}
	if err := validateEntry(e); err != nil {
		return nil, err
	}

	autoNumber := moved && e.InChallenge() && in.DayNumber == nil

	if !moved || !e.InChallenge() || s.policy == DayNumberLegacy {
		repo := s.repomanager.Entries(s.db)
		if autoNumber {
			n, err := repo.CountByChallenge(ctx, userID, e.ChallengeID)
			if err != nil {
				return nil, err
			}
			e.DayNumber = n + 1
		}
		return repo.Update(ctx, e)
	}

	if !validID(e.ChallengeID) {
		return nil, common.NewValidationError("challengeId", "unknown challenge")
	}

	var updated *models.Entry
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Challenges(tx).LockForUpdate(ctx, userID, e.ChallengeID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewValidationError("challengeId", "unknown challenge")
			}
			return err
		}

		repo := s.repomanager.Entries(tx)
		if autoNumber {
			n, err := repo.CountByChallenge(ctx, userID, e.ChallengeID)
			if err != nil {
				return err
			}
			e.DayNumber = n + 1
		}

		var err error
		updated, err = repo.Update(ctx, e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	return s.repomanager.Entries(s.db).Delete(ctx, userID, id)
}

// Stats aggregates over every entry the caller owns.
func (s *EntryService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computeStats(list, s.streaks), nil
}

func (s *EntryService) applyEntryInput(e *models.Entry, in EntryInput) {
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Topic != nil {
		e.Topic = strings.TrimSpace(*in.Topic)
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Content != nil {
		e.Content = strings.TrimSpace(s.sanitizer.Sanitize(*in.Content))
	}
	if in.KeyTakeaway != nil {
		e.KeyTakeaway = strings.TrimSpace(*in.KeyTakeaway)
	}
	if in.Doubts != nil {
		e.Doubts = *in.Doubts
	}
	if in.TimeSpent != nil {
		e.TimeSpent = *in.TimeSpent
	}
	if in.ChallengeID != nil {
		e.ChallengeID = strings.TrimSpace(*in.ChallengeID)
		if e.ChallengeID == "" {
			e.ChallengeID = common.NoChallenge
		}
	}
	if in.DayNumber != nil {
		e.DayNumber = *in.DayNumber
	}
	if in.Tags != nil {
		e.Tags = in.Tags
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
}

func validateEntry(e *models.Entry) error {
	switch {
	case e.Topic == "":
		return common.NewValidationError("topic", "is required")
	case e.Content == "":
		return common.NewValidationError("content", "is required")
	case e.KeyTakeaway == "":
		return common.NewValidationError("keyTakeaway", "is required")
	case !models.IsValidCategory(e.Category):
		return common.NewValidationError("category", fmt.Sprintf("%q is not a known category", e.Category))
	case e.TimeSpent.Amount < 0:
		return common.NewValidationError("timeSpent.amount", "must not be negative")
	case !e.TimeSpent.Unit.Valid():
		return common.NewValidationError("timeSpent.unit", "must be minutes or hours")
	case e.DayNumber < 0:
		return common.NewValidationError("dayNumber", "must be positive")
	case !e.Status.Valid():
		return common.NewValidationError("status", fmt.Sprintf("%q is not a known status", e.Status))
	case e.Date.IsZero():
		return common.NewValidationError("date", "is required")
	}
	return nil
}
