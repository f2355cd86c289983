package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/server/config"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/repomanager"
)

// Portfolio is the public view of a user: profile, stats and published entries.
type Portfolio struct {
	User    *models.User
	Stats   *models.Stats
	Entries []*models.Entry
}

// PortfolioService serves unauthenticated reads. Only published entries are
// ever visible through it, and stats are computed over those alone.
type PortfolioService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	streaks     StreakCalculator
}

func NewPortfolioService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *PortfolioService {
	return &PortfolioService{db: db, repomanager: m, streaks: NewStreakCalculator(cfg.StreakStrategy)}
}

func (s *PortfolioService) Get(ctx context.Context, userID string) (*Portfolio, error) {
	if !validID(userID) {
		return nil, common.ErrorNotFound
	}

	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	list, err := s.repomanager.Entries(s.db).ListPublished(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Portfolio{User: u, Stats: computeStats(list, s.streaks), Entries: list}, nil
}

// ViewEntry returns one published entry and counts the view.
func (s *PortfolioService) ViewEntry(ctx context.Context, userID, id string) (*models.Entry, error) {
	if !validID(userID) || !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Entries(s.db).IncrementViews(ctx, userID, id)
}
