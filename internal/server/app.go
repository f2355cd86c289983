// Package server initializes and runs the DevLog API server.
// It opens the database and applies migrations, wires the optional AI,
// cache and object storage collaborators, starts background jobs and
// serves the REST API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/devlog/internal/logging"
	"github.com/dmitrijs2005/devlog/internal/server/ai"
	"github.com/dmitrijs2005/devlog/internal/server/config"
	"github.com/dmitrijs2005/devlog/internal/server/httpapi"
	"github.com/dmitrijs2005/devlog/internal/server/jobs"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/devlog/internal/server/services"
	"github.com/dmitrijs2005/devlog/internal/server/storage"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	redis      *redis.Client
	httpServer *httpapi.HTTPServer
	scheduler  *jobs.Scheduler
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(logging.Options{Level: c.LogLevel, File: c.LogFile})

	if c.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	assistant := ai.NewAssistant(app.initGenerator(ctx), app.initCache(ctx), c.AICacheTTL, logger)

	us := services.NewUserService(db, m, c, avatarStore(c))
	cs := services.NewChallengeService(db, m)
	es := services.NewEntryService(db, m, c)
	ps := services.NewPortfolioService(db, m, c)

	app.httpServer = httpapi.NewHTTPServer(c.HTTPAddr, logger, c.IsProduction(), httpapi.Services{
		Users:      us,
		Challenges: cs,
		Entries:    es,
		Portfolio:  ps,
		AI:         assistant,
	})
	app.scheduler = jobs.New(cs, c.ChallengeSweepInterval, logger)

	return app, nil
}

// avatarStore returns nil when S3 is not configured; the user service then
// rejects avatar uploads.
func avatarStore(c *config.Config) services.AvatarStore {
	if !c.AvatarUploadsEnabled() {
		return nil
	}
	return storage.NewAvatarStorage(c)
}

// initGenerator returns nil when no API key is configured; every AI call
// then answers with its fallback.
func (app *App) initGenerator(ctx context.Context) ai.Generator {
	if app.config.GeminiAPIKey == "" {
		app.logger.Warn(ctx, "no AI API key configured, AI features will return fallbacks")
		return nil
	}

	g, err := ai.NewGemini(ctx, app.config.GeminiAPIKey, app.config.GeminiModel)
	if err != nil {
		app.logger.Warn(ctx, "AI client init failed", "err", err)
		return nil
	}
	return g
}

func (app *App) initCache(ctx context.Context) ai.Cache {
	if app.config.RedisAddr == "" {
		return ai.NopCache{}
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := app.redis.Ping(pingCtx).Err(); err != nil {
		app.logger.Warn(ctx, "redis unreachable, AI responses will not be cached until it recovers", "err", err)
	}

	return ai.NewRedisCache(app.redis)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.scheduler.Start(); err != nil {
		app.logger.Error(ctx, "scheduler start failed", "err", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.scheduler.Stop()
	app.close(ctx)

	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "err", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "err", err)
	}
}
