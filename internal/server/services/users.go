package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/server/auth"
	"github.com/dmitrijs2005/devlog/internal/server/config"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/repomanager"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

// AvatarStore hands out upload URLs for profile pictures.
type AvatarStore interface {
	// PresignUpload returns a URL the client can PUT the image to and the
	// URL the image will be served from afterwards.
	PresignUpload(ctx context.Context, userID string) (uploadURL string, publicURL string, err error)
}

// AvatarUpload is the result of RequestAvatarUpload.
type AvatarUpload struct {
	UploadURL string
	User      *models.User
}

// UserService handles registration, login and token resolution.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	avatars               AvatarStore
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService. avatars may be nil, in which case
// avatar uploads are rejected.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, avatars AvatarStore) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		avatars:               avatars,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user with a bcrypt-hashed password and returns it with
// a fresh token. An existing email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	if email == "" {
		return nil, common.NewValidationError("email", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, common.NewValidationError("email", "is not a valid address")
	}
	if password == "" {
		return nil, common.NewValidationError("password", "is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(u)
}

// Login verifies the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	u, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil || !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(u)
}

// Authenticate resolves a bearer token to an existing user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	u, err := s.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// RequestAvatarUpload presigns an upload and points the user's avatar at
// the resulting object.
func (s *UserService) RequestAvatarUpload(ctx context.Context, userID string) (*AvatarUpload, error) {
	if s.avatars == nil {
		return nil, common.NewValidationError("avatar", "uploads are not configured")
	}

	uploadURL, publicURL, err := s.avatars.PresignUpload(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("presigning avatar upload: %w", err)
	}

	u, err := s.repomanager.Users(s.db).UpdateAvatar(ctx, userID, publicURL)
	if err != nil {
		return nil, err
	}

	return &AvatarUpload{UploadURL: uploadURL, User: u}, nil
}

func (s *UserService) issue(u *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{User: u, Token: token}, nil
}
