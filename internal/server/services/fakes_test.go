package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/dbx"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	challengesrepo "github.com/dmitrijs2005/devlog/internal/server/repositories/challenges"
	entriesrepo "github.com/dmitrijs2005/devlog/internal/server/repositories/entries"
	usersrepo "github.com/dmitrijs2005/devlog/internal/server/repositories/users"
	"github.com/google/uuid"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// memStore is a shared in-memory backing for the fake repositories.
type memStore struct {
	mu         sync.Mutex
	users      map[string]*models.User
	challenges map[string]*models.Challenge
	entries    map[string]*models.Entry

	locked  []string
	failOn  map[string]error
	created int

	// rowLocks emulate SELECT ... FOR UPDATE: a challenge row stays locked
	// by the holding transaction until its entry insert.
	rowLocks map[string]*sync.Mutex
	held     map[dbx.DBTX]string

	// beforeLock runs before a row lock is requested, afterCount after an
	// entry count is read; both run without mu held.
	beforeLock func(challengeID string)
	afterCount func(challengeID string)
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*models.User{},
		challenges: map[string]*models.Challenge{},
		entries:    map[string]*models.Entry{},
		failOn:     map[string]error{},
		rowLocks:   map[string]*sync.Mutex{},
		held:       map[dbx.DBTX]string{},
	}
}

func (m *memStore) fail(op string) error { return m.failOn[op] }

type fakeRepoManager struct{ s *memStore }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return &fakeUsers{f.s} }

func (f *fakeRepoManager) Challenges(tx dbx.DBTX) challengesrepo.Repository {
	return &fakeChallenges{s: f.s, tx: tx}
}

func (f *fakeRepoManager) Entries(tx dbx.DBTX) entriesrepo.Repository {
	return &fakeEntries{s: f.s, tx: tx}
}

type fakeUsers struct{ s *memStore }

func (r *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Avatar == "" {
		u.Avatar = models.DefaultAvatar
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsers) UpdateAvatar(_ context.Context, id, avatar string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Avatar = avatar
	cp := *u
	return &cp, nil
}

type fakeChallenges struct {
	s  *memStore
	tx dbx.DBTX
}

func (r *fakeChallenges) Create(_ context.Context, c *models.Challenge) (*models.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("challenges.Create"); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.s.created++
	c.CreatedAt = time.Unix(int64(r.s.created), 0)
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.s.challenges[c.ID] = &cp
	return c, nil
}

func (r *fakeChallenges) List(_ context.Context, userID string) ([]*models.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Challenge{}
	for _, c := range r.s.challenges {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeChallenges) Get(_ context.Context, userID, id string) (*models.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.challenges[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChallenges) Update(_ context.Context, c *models.Challenge) (*models.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.challenges[c.ID]
	if !ok || old.UserID != c.UserID {
		return nil, common.ErrorNotFound
	}
	cp := *c
	r.s.challenges[c.ID] = &cp
	return c, nil
}

func (r *fakeChallenges) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.challenges[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.challenges, id)
	return nil
}

func (r *fakeChallenges) LockForUpdate(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	c, ok := r.s.challenges[id]
	if !ok || c.UserID != userID {
		r.s.mu.Unlock()
		return common.ErrorNotFound
	}
	row, ok := r.s.rowLocks[id]
	if !ok {
		row = &sync.Mutex{}
		r.s.rowLocks[id] = row
	}
	hook := r.s.beforeLock
	r.s.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	row.Lock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locked = append(r.s.locked, id)
	r.s.held[r.tx] = id
	return nil
}

func (r *fakeChallenges) CompleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, c := range r.s.challenges {
		if c.Status == models.ChallengeActive && !c.EndDate().After(now) {
			c.Status = models.ChallengeCompleted
			n++
		}
	}
	return n, nil
}

type fakeEntries struct {
	s  *memStore
	tx dbx.DBTX
}

// release frees the row lock taken by this transaction, if any. Callers hold mu.
func (r *fakeEntries) release() {
	if id, ok := r.s.held[r.tx]; ok {
		delete(r.s.held, r.tx)
		r.s.rowLocks[id].Unlock()
	}
}

func (r *fakeEntries) put(e *models.Entry) {
	cp := *e
	cp.Tags = append([]string{}, e.Tags...)
	r.s.entries[e.ID] = &cp
}

func (r *fakeEntries) filter(keep func(*models.Entry) bool) []*models.Entry {
	out := []*models.Entry{}
	for _, e := range r.s.entries {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *fakeEntries) Create(_ context.Context, e *models.Entry) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("entries.Create"); err != nil {
		r.release()
		return nil, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.put(e)
	r.release()
	return e, nil
}

func (r *fakeEntries) List(_ context.Context, userID string) ([]*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("entries.List"); err != nil {
		return nil, err
	}
	return r.filter(func(e *models.Entry) bool { return e.UserID == userID }), nil
}

func (r *fakeEntries) Get(_ context.Context, userID, id string) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntries) Update(_ context.Context, e *models.Entry) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	defer r.release()
	old, ok := r.s.entries[e.ID]
	if !ok || old.UserID != e.UserID {
		return nil, common.ErrorNotFound
	}
	r.put(e)
	return e, nil
}

func (r *fakeEntries) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok || e.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.entries, id)
	return nil
}

func (r *fakeEntries) ListByChallenge(_ context.Context, userID, challengeID string) ([]*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.filter(func(e *models.Entry) bool { return e.UserID == userID && e.ChallengeID == challengeID })
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber > out[j].DayNumber })
	return out, nil
}

func (r *fakeEntries) CountByChallenge(_ context.Context, userID, challengeID string) (int, error) {
	r.s.mu.Lock()
	if err := r.s.fail("entries.CountByChallenge"); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	n := len(r.filter(func(e *models.Entry) bool { return e.UserID == userID && e.ChallengeID == challengeID }))
	hook := r.s.afterCount
	r.s.mu.Unlock()

	if hook != nil {
		hook(challengeID)
	}
	return n, nil
}

func (r *fakeEntries) CountPerChallenge(_ context.Context, userID string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, e := range r.s.entries {
		if e.UserID == userID && e.ChallengeID != common.NoChallenge {
			out[e.ChallengeID]++
		}
	}
	return out, nil
}

func (r *fakeEntries) DeleteByChallenge(_ context.Context, userID, challengeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("entries.DeleteByChallenge"); err != nil {
		return 0, err
	}
	var n int64
	for id, e := range r.s.entries {
		if e.UserID == userID && e.ChallengeID == challengeID {
			delete(r.s.entries, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeEntries) ListPublished(_ context.Context, userID string) ([]*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(e *models.Entry) bool { return e.UserID == userID && e.Status == models.EntryPublished }), nil
}

func (r *fakeEntries) IncrementViews(_ context.Context, userID, id string) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok || e.UserID != userID || e.Status != models.EntryPublished {
		return nil, common.ErrorNotFound
	}
	e.Views++
	cp := *e
	return &cp, nil
}
