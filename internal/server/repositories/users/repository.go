package users

import (
	"context"

	"github.com/dmitrijs2005/devlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) (*models.User, error)
}
