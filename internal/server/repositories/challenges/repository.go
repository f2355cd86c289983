package challenges

import (
	"context"
	"time"

	"github.com/dmitrijs2005/devlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Challenge) (*models.Challenge, error)
	List(ctx context.Context, userID string) ([]*models.Challenge, error)
	Get(ctx context.Context, userID, id string) (*models.Challenge, error)
	Update(ctx context.Context, c *models.Challenge) (*models.Challenge, error)
	Delete(ctx context.Context, userID, id string) error
	// LockForUpdate takes a row lock on the challenge for the rest of the
	// surrounding transaction.
	LockForUpdate(ctx context.Context, userID, id string) error
	// CompleteExpired marks active challenges whose window ended before now.
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}
