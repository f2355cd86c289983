package entries

import (
	"context"

	"github.com/dmitrijs2005/devlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Entry) (*models.Entry, error)
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Get(ctx context.Context, userID, id string) (*models.Entry, error)
	Update(ctx context.Context, e *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, userID, id string) error

	ListByChallenge(ctx context.Context, userID, challengeID string) ([]*models.Entry, error)
	CountByChallenge(ctx context.Context, userID, challengeID string) (int, error)
	CountPerChallenge(ctx context.Context, userID string) (map[string]int, error)
	DeleteByChallenge(ctx context.Context, userID, challengeID string) (int64, error)

	ListPublished(ctx context.Context, userID string) ([]*models.Entry, error)
	// IncrementViews bumps the view counter of a published entry and returns it.
	IncrementViews(ctx context.Context, userID, id string) (*models.Entry, error)
}
