// Package httpapi exposes the DevLog services as a JSON REST API on gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/logging"
	"github.com/dmitrijs2005/devlog/internal/server/ai"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/dmitrijs2005/devlog/internal/server/services"
	"github.com/gin-gonic/gin"
)

type userSvc interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	RequestAvatarUpload(ctx context.Context, userID string) (*services.AvatarUpload, error)
}

type challengeSvc interface {
	List(ctx context.Context, userID string) ([]*services.ChallengeView, error)
	Get(ctx context.Context, userID, id string) (*services.ChallengeView, error)
	Entries(ctx context.Context, userID, id string) ([]*models.Entry, error)
	Create(ctx context.Context, userID string, in services.ChallengeInput) (*services.ChallengeView, error)
	Update(ctx context.Context, userID, id string, in services.ChallengeInput) (*services.ChallengeView, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

type entrySvc interface {
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Get(ctx context.Context, userID, id string) (*models.Entry, error)
	Create(ctx context.Context, userID string, in services.EntryInput) (*models.Entry, error)
	Update(ctx context.Context, userID, id string, in services.EntryInput) (*models.Entry, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (*models.Stats, error)
}

type portfolioSvc interface {
	Get(ctx context.Context, userID string) (*services.Portfolio, error)
	ViewEntry(ctx context.Context, userID, id string) (*models.Entry, error)
}

type assistant interface {
	Takeaway(ctx context.Context, content string) string
	Suggestions(ctx context.Context, topic, category string) []string
	DeepDive(ctx context.Context, topic string) *ai.DeepDive
}

// Services bundles the collaborators the handlers delegate to.
type Services struct {
	Users      userSvc
	Challenges challengeSvc
	Entries    entrySvc
	Portfolio  portfolioSvc
	AI         assistant
}

type HTTPServer struct {
	address    string
	users      userSvc
	challenges challengeSvc
	entries    entrySvc
	portfolio  portfolioSvc
	ai         assistant
	logger     logging.Logger
	production bool
	now        func() time.Time
}

// NewHTTPServer builds the server. In production mode error responses carry
// no detail field.
func NewHTTPServer(address string, l logging.Logger, production bool, svc Services) *HTTPServer {
	return &HTTPServer{
		address:    address,
		users:      svc.Users,
		challenges: svc.Challenges,
		entries:    svc.Entries,
		portfolio:  svc.Portfolio,
		ai:         svc.AI,
		logger:     l.With("module", "http_server"),
		production: production,
		now:        time.Now,
	}
}

// Router wires every route onto a fresh gin engine.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.recovery(), s.accessLog())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.Message{Message: "Not Found - " + c.Request.URL.Path})
	})

	root := r.Group(api.BasePath)

	authGroup := root.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.GET("/me", s.protect(), s.me)
		authGroup.POST("/avatar", s.protect(), s.avatar)
	}

	challenges := root.Group("/challenges", s.protect())
	{
		challenges.GET("", s.listChallenges)
		challenges.POST("", s.createChallenge)
		challenges.GET("/:id", s.getChallenge)
		challenges.PUT("/:id", s.updateChallenge)
		challenges.DELETE("/:id", s.deleteChallenge)
		challenges.GET("/:id/entries", s.challengeEntries)
	}

	entries := root.Group("/entries", s.protect())
	{
		entries.GET("", s.listEntries)
		entries.POST("", s.createEntry)
		entries.GET("/stats", s.stats)
		entries.GET("/export", s.exportEntries)
		entries.GET("/:id", s.getEntry)
		entries.PUT("/:id", s.updateEntry)
		entries.DELETE("/:id", s.deleteEntry)
	}

	aiGroup := root.Group("/ai", s.protect())
	{
		aiGroup.POST("/takeaway", s.takeaway)
		aiGroup.POST("/suggestions", s.suggestions)
		aiGroup.POST("/deep-dive", s.deepDive)
	}

	portfolio := root.Group("/portfolio")
	{
		portfolio.GET("/:userId", s.getPortfolio)
		portfolio.GET("/:userId/entries/:id", s.getPortfolioEntry)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
