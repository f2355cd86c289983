package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/dmitrijs2005/devlog/internal/client/config"
	"github.com/dmitrijs2005/devlog/internal/client/session"
)

// fakeAPI overrides the calls a test needs; anything else panics through
// the nil embedded interface.
type fakeAPI struct {
	apiClient

	pingErr error

	loginSess *client.Session
	loginErr  error
	regName   string
	regEmail  string
	regPass   string

	me    *api.User
	meErr error

	upload    *api.AvatarUpload
	uploaded  string
	uploadCT  string
	uploadErr error

	challenges []api.Challenge
	challenge  *api.Challenge
	created    *api.ChallengeInput
	updated    *api.ChallengeInput
	removed    int64
	deletedID  string

	entries      []api.Entry
	entry        *api.Entry
	entryIn      *api.EntryInput
	stats        *api.Stats
	exportFormat string
	exportBody   string

	takeawayIn string
	takeaway   string
	topic      string
	category   string
	ideas      []string
	deepDive   *api.DeepDiveResponse

	portfolioFor string
	portfolio    *api.Portfolio
	publicEntry  *api.Entry
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (*client.Session, error) {
	f.regName, f.regEmail, f.regPass = name, email, password
	return f.loginSess, f.loginErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*client.Session, error) {
	f.regEmail, f.regPass = email, password
	return f.loginSess, f.loginErr
}

func (f *fakeAPI) Me(context.Context, *client.Session) (*api.User, error) { return f.me, f.meErr }

func (f *fakeAPI) RequestAvatarUpload(context.Context, *client.Session) (*api.AvatarUpload, error) {
	return f.upload, nil
}

func (f *fakeAPI) UploadAvatar(_ context.Context, url string, r io.Reader, _ int64, ct string) error {
	f.uploaded, f.uploadCT = url, ct
	return f.uploadErr
}

func (f *fakeAPI) ListChallenges(context.Context, *client.Session) ([]api.Challenge, error) {
	return f.challenges, nil
}

func (f *fakeAPI) GetChallenge(context.Context, *client.Session, string) (*api.Challenge, error) {
	return f.challenge, nil
}

func (f *fakeAPI) ChallengeEntries(context.Context, *client.Session, string) ([]api.Entry, error) {
	return f.entries, nil
}

func (f *fakeAPI) CreateChallenge(_ context.Context, _ *client.Session, in api.ChallengeInput) (*api.Challenge, error) {
	f.created = &in
	return f.challenge, nil
}

func (f *fakeAPI) UpdateChallenge(_ context.Context, _ *client.Session, _ string, in api.ChallengeInput) (*api.Challenge, error) {
	f.updated = &in
	return f.challenge, nil
}

func (f *fakeAPI) DeleteChallenge(_ context.Context, _ *client.Session, id string) (int64, error) {
	f.deletedID = id
	return f.removed, nil
}

func (f *fakeAPI) ListEntries(context.Context, *client.Session) ([]api.Entry, error) {
	return f.entries, nil
}

func (f *fakeAPI) GetEntry(context.Context, *client.Session, string) (*api.Entry, error) {
	return f.entry, nil
}

func (f *fakeAPI) CreateEntry(_ context.Context, _ *client.Session, in api.EntryInput) (*api.Entry, error) {
	f.entryIn = &in
	return f.entry, nil
}

func (f *fakeAPI) UpdateEntry(_ context.Context, _ *client.Session, _ string, in api.EntryInput) (*api.Entry, error) {
	f.entryIn = &in
	return f.entry, nil
}

func (f *fakeAPI) DeleteEntry(_ context.Context, _ *client.Session, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeAPI) Stats(context.Context, *client.Session) (*api.Stats, error) { return f.stats, nil }

func (f *fakeAPI) Export(_ context.Context, _ *client.Session, format string, w io.Writer) error {
	f.exportFormat = format
	_, err := io.WriteString(w, f.exportBody)
	return err
}

func (f *fakeAPI) Takeaway(_ context.Context, _ *client.Session, content string) (string, error) {
	f.takeawayIn = content
	return f.takeaway, nil
}

func (f *fakeAPI) Suggestions(_ context.Context, _ *client.Session, topic, category string) ([]string, error) {
	f.topic, f.category = topic, category
	return f.ideas, nil
}

func (f *fakeAPI) DeepDive(_ context.Context, _ *client.Session, topic string) (*api.DeepDiveResponse, error) {
	f.topic = topic
	return f.deepDive, nil
}

func (f *fakeAPI) Portfolio(_ context.Context, userID string) (*api.Portfolio, error) {
	f.portfolioFor = userID
	return f.portfolio, nil
}

func (f *fakeAPI) PortfolioEntry(_ context.Context, userID, id string) (*api.Entry, error) {
	f.portfolioFor = userID
	return f.publicEntry, nil
}

type fakeStore struct {
	saved   *client.Session
	loadErr error
	saveErr error
	cleared bool
}

func (f *fakeStore) Load() (*client.Session, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.saved == nil {
		return nil, session.ErrNoSession
	}
	return f.saved, nil
}

func (f *fakeStore) Save(s *client.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = s
	return nil
}

func (f *fakeStore) Clear() error {
	f.cleared = true
	f.saved = nil
	return nil
}

func testSession() *client.Session {
	return &client.Session{Token: "tok", User: api.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}}
}

type testApp struct {
	*App
	buf   *bytes.Buffer
	store *fakeStore
}

func newTestApp(t *testing.T, f *fakeAPI) *testApp {
	t.Helper()
	buf := &bytes.Buffer{}
	store := &fakeStore{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := &App{
		config: cfg,
		api:    f,
		store:  store,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    buf,
	}
	return &testApp{App: a, buf: buf, store: store}
}

// stubAnswers feeds prompts from a queue; each getMultiline call also takes
// one answer. Unanswered prompts get "".
func stubAnswers(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	next := func(prompt string) string {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return ""
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}

	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		return next(prompt), nil
	}
	getMultiline = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		return next(prompt), nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
	return &prompts
}
