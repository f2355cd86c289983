package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/dmitrijs2005/devlog/internal/client/config"
	"github.com/dmitrijs2005/devlog/internal/client/session"
	"github.com/dmitrijs2005/devlog/internal/common"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// apiClient is the subset of client.HTTPClient the commands use.
type apiClient interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) (*client.Session, error)
	Login(ctx context.Context, email, password string) (*client.Session, error)
	Me(ctx context.Context, sess *client.Session) (*api.User, error)
	RequestAvatarUpload(ctx context.Context, sess *client.Session) (*api.AvatarUpload, error)
	UploadAvatar(ctx context.Context, uploadURL string, r io.Reader, size int64, contentType string) error

	ListChallenges(ctx context.Context, sess *client.Session) ([]api.Challenge, error)
	GetChallenge(ctx context.Context, sess *client.Session, id string) (*api.Challenge, error)
	ChallengeEntries(ctx context.Context, sess *client.Session, id string) ([]api.Entry, error)
	CreateChallenge(ctx context.Context, sess *client.Session, in api.ChallengeInput) (*api.Challenge, error)
	UpdateChallenge(ctx context.Context, sess *client.Session, id string, in api.ChallengeInput) (*api.Challenge, error)
	DeleteChallenge(ctx context.Context, sess *client.Session, id string) (int64, error)

	ListEntries(ctx context.Context, sess *client.Session) ([]api.Entry, error)
	GetEntry(ctx context.Context, sess *client.Session, id string) (*api.Entry, error)
	CreateEntry(ctx context.Context, sess *client.Session, in api.EntryInput) (*api.Entry, error)
	UpdateEntry(ctx context.Context, sess *client.Session, id string, in api.EntryInput) (*api.Entry, error)
	DeleteEntry(ctx context.Context, sess *client.Session, id string) error
	Stats(ctx context.Context, sess *client.Session) (*api.Stats, error)
	Export(ctx context.Context, sess *client.Session, format string, w io.Writer) error

	Takeaway(ctx context.Context, sess *client.Session, content string) (string, error)
	Suggestions(ctx context.Context, sess *client.Session, topic, category string) ([]string, error)
	DeepDive(ctx context.Context, sess *client.Session, topic string) (*api.DeepDiveResponse, error)

	Portfolio(ctx context.Context, userID string) (*api.Portfolio, error)
	PortfolioEntry(ctx context.Context, userID, id string) (*api.Entry, error)
}

type App struct {
	config  *config.Config
	api     apiClient
	store   session.Store
	session *client.Session
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		store:  session.NewKeyringStore(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

// restoreSession loads a saved session and checks it is still accepted.
// Rejected tokens are cleared so the user is asked to log in again.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.store.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Printf("could not read saved session: %v", err)
		}
		return
	}

	u, err := a.api.Me(ctx, s)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			_ = a.store.Clear()
			return
		}
		// server down or failing; the token may still be good
		a.session = s
		return
	}

	s.User = *u
	a.session = s
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
