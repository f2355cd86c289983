package entries

import (
	"context"
	"database/sql"
	"errors"
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

var cols = []string{"id", "user_id", "date", "topic", "category", "content", "key_takeaway", "doubts",
	"time_spent_amount", "time_spent_unit", "challenge_id", "day_number", "tags", "status", "views",
	"created_at", "updated_at"}

func entryRow(rows *sqlmock.Rows, id string, date time.Time, challengeID string, day int, tags string, status string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "u1", date, "Goroutines", "Backend", "<p>x</p>", "channels", "",
		45.0, "minutes", challengeID, day, []byte(tags), status, 0, now, now)
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	q := `(?s)^INSERT\s+INTO\s+entries\s*\(id,\s*user_id,\s*date.*RETURNING\s+views,\s*created_at,\s*updated_at`
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "u1", date, "Goroutines", "Backend", "<p>x</p>", "channels", "",
			45.0, models.UnitMinutes, "c1", 3, []byte(`["go","concurrency"]`), models.EntryPublished).
		WillReturnRows(sqlmock.NewRows([]string{"views", "created_at", "updated_at"}).AddRow(0, now, now))

	e, err := repo.Create(context.Background(), &models.Entry{
		UserID: "u1", Date: date, Topic: "Goroutines", Category: "Backend", Content: "<p>x</p>",
		KeyTakeaway: "channels", TimeSpent: models.TimeSpent{Amount: 45, Unit: models.UnitMinutes},
		ChallengeID: "c1", DayNumber: 3, Tags: []string{"go", "concurrency"}, Status: models.EntryPublished,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NilTagsStoredAsEmptyArray(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+entries`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), []byte(`[]`), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"views", "created_at", "updated_at"}).AddRow(0, now, now))

	_, err := repo.Create(context.Background(), &models.Entry{UserID: "u1"})
	require.NoError(t, err)
}

func TestList_ScopedAndDecoded(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	d := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols)
	entryRow(rows, "e2", d, "none", 0, `["b","a"]`, "published")
	entryRow(rows, "e1", d.Add(-24*time.Hour), "c1", 1, `[]`, "draft")

	mock.ExpectQuery(`(?s)FROM\s+entries\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+date\s+DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"b", "a"}, got[0].Tags)
	assert.Equal(t, models.UnitMinutes, got[0].TimeSpent.Unit)
	assert.Equal(t, []string{}, got[1].Tags)
	assert.Equal(t, models.EntryDraft, got[1].Status)
}

func TestList_BadTags(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(cols)
	entryRow(rows, "e1", time.Now(), "none", 0, `{not json`, "published")
	mock.ExpectQuery(`FROM\s+entries`).WithArgs("u1").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "u1")
	assert.ErrorContains(t, err, "decoding tags")
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+entries\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("e1", "u2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u2", "e1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+entries\s+SET\s+date\s*=\s*\$3`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Entry{ID: "e1", UserID: "u2"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `DELETE\s+FROM\s+entries\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`
	mock.ExpectExec(q).WithArgs("e1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "u1", "e1"))

	mock.ExpectExec(q).WithArgs("e1", "u9").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "u9", "e1"), common.ErrorNotFound)
}

func TestCountByChallenge(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `SELECT\s+COUNT\(\*\)\s+FROM\s+entries\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+challenge_id\s*=\s*\$2`
	mock.ExpectQuery(q).WithArgs("u1", "c1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByChallenge(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mock.ExpectQuery(q).WithArgs("u1", "c1").WillReturnError(errors.New("boom"))
	_, err = repo.CountByChallenge(context.Background(), "u1", "c1")
	assert.ErrorContains(t, err, "db error")
}

func TestCountPerChallenge(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+challenge_id,\s*COUNT\(\*\).*GROUP\s+BY\s+challenge_id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"challenge_id", "count"}).AddRow("c1", 2).AddRow("c2", 5))

	got, err := repo.CountPerChallenge(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c1": 2, "c2": 5}, got)
}

func TestDeleteByChallenge(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+entries\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+challenge_id\s*=\s*\$2`).
		WithArgs("u1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByChallenge(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestListByChallenge_OrderedByDay(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(cols)
	entryRow(rows, "e3", time.Now(), "c1", 3, `[]`, "published")
	entryRow(rows, "e1", time.Now(), "c1", 1, `[]`, "published")
	mock.ExpectQuery(`(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+challenge_id\s*=\s*\$2\s+ORDER\s+BY\s+day_number\s+DESC`).
		WithArgs("u1", "c1").
		WillReturnRows(rows)

	got, err := repo.ListByChallenge(context.Background(), "u1", "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].DayNumber)
}

func TestListPublished(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(cols)
	entryRow(rows, "e1", time.Now(), "none", 0, `[]`, "published")
	mock.ExpectQuery(`(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+status\s*=\s*'published'`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.ListPublished(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestIncrementViews(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+entries\s+SET\s+views\s*=\s*views\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+AND\s+status\s*=\s*'published'`
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("e1", "u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("e1", "u1", now, "T", "Cloud", "c", "k", "", 2.0, "hours", "none", 0, []byte(`[]`), "published", 8, now, now))

	got, err := repo.IncrementViews(context.Background(), "u1", "e1")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Views)
	assert.Equal(t, models.UnitHours, got.TimeSpent.Unit)

	mock.ExpectQuery(q).WithArgs("e2", "u1").WillReturnError(sql.ErrNoRows)
	_, err = repo.IncrementViews(context.Background(), "u1", "e2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
