package challenges

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var cols = []string{"id", "user_id", "name", "category", "description", "duration", "start_date", "status", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	q := `(?s)^INSERT\s+INTO\s+challenges\s*\(id,\s*user_id,\s*name,\s*category,\s*description,\s*duration,\s*start_date,\s*status\)`
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "u1", "100 days of Go", "Backend", "desc", 100, start, models.ChallengeActive).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	c, err := repo.Create(context.Background(), &models.Challenge{
		UserID: "u1", Name: "100 days of Go", Category: "Backend", Description: "desc",
		Duration: 100, StartDate: start, Status: models.ChallengeActive,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.True(t, c.CreatedAt.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OrderedAndScoped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `(?s)FROM\s+challenges\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`
	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("c2", "u1", "B", "Cloud", "d", 30, now, "active", now, now).
			AddRow("c1", "u1", "A", "DSA", "d", 10, now, "paused", now.Add(-time.Hour), now))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[0].ID)
	assert.Equal(t, models.ChallengePaused, got[1].Status)
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+challenges`).WithArgs("u1").WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+challenges\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("c1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "intruder", "c1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `(?s)^UPDATE\s+challenges\s+SET\s+name\s*=\s*\$3.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING`
	mock.ExpectQuery(q).
		WithArgs("c1", "u1", "New", "Cloud", "d", 5, now, models.ChallengeCompleted).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "u1", "New", "Cloud", "d", 5, now, "completed", now, now))

	got, err := repo.Update(context.Background(), &models.Challenge{
		ID: "c1", UserID: "u1", Name: "New", Category: "Cloud", Description: "d",
		Duration: 5, StartDate: now, Status: models.ChallengeCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `DELETE\s+FROM\s+challenges\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`
	mock.ExpectExec(q).WithArgs("c1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "u1", "c1"))

	mock.ExpectExec(q).WithArgs("c1", "u2").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "u2", "c1"), common.ErrorNotFound)

	mock.ExpectExec(q).WithArgs("c1", "u1").WillReturnError(errors.New("boom"))
	err := repo.Delete(context.Background(), "u1", "c1")
	assert.Regexp(t, regexp.MustCompile(`db error: .*boom`), err.Error())
}

func TestLockForUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id\s+FROM\s+challenges\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+FOR\s+UPDATE`
	mock.ExpectQuery(q).WithArgs("c1", "u1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))
	require.NoError(t, repo.LockForUpdate(context.Background(), "u1", "c1"))

	mock.ExpectQuery(q).WithArgs("c9", "u1").WillReturnError(sql.ErrNoRows)
	assert.ErrorIs(t, repo.LockForUpdate(context.Background(), "u1", "c9"), common.ErrorNotFound)
}

func TestCompleteExpired(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `(?s)^UPDATE\s+challenges\s+SET\s+status\s*=\s*'completed'.*WHERE\s+status\s*=\s*'active'`
	mock.ExpectExec(q).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.CompleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
