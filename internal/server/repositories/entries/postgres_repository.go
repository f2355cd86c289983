package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/dbx"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/google/uuid"
)

const entryColumns = `id, user_id, date, topic, category, content, key_takeaway, doubts, ` +
	`time_spent_amount, time_spent_unit, challenge_id, day_number, tags, status, views, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanEntry(row interface{ Scan(...any) error }) (*models.Entry, error) {
	e := &models.Entry{}
	var tags []byte
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Topic, &e.Category, &e.Content, &e.KeyTakeaway, &e.Doubts,
		&e.TimeSpent.Amount, &e.TimeSpent.Unit, &e.ChallengeID, &e.DayNumber, &tags, &e.Status, &e.Views,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	e.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &e.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}
	return e, nil
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	tags, err := encodeTags(e.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO entries (id, user_id, date, topic, category, content, key_takeaway, doubts,
		                      time_spent_amount, time_spent_unit, challenge_id, day_number, tags, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING views, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Date, e.Topic, e.Category, e.Content, e.KeyTakeaway, e.Doubts,
		e.TimeSpent.Amount, e.TimeSpent.Unit, e.ChallengeID, e.DayNumber, tags, e.Status,
	).Scan(&e.Views, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	query :=
		`SELECT ` + entryColumns + ` FROM entries
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`
	return r.queryEntries(ctx, query, userID)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND user_id = $2`
	return scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	tags, err := encodeTags(e.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE entries
		 SET date = $3, topic = $4, category = $5, content = $6, key_takeaway = $7, doubts = $8,
		     time_spent_amount = $9, time_spent_unit = $10, challenge_id = $11, day_number = $12,
		     tags = $13, status = $14, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + entryColumns

	return scanEntry(r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Date, e.Topic, e.Category, e.Content, e.KeyTakeaway, e.Doubts,
		e.TimeSpent.Amount, e.TimeSpent.Unit, e.ChallengeID, e.DayNumber, tags, e.Status))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByChallenge(ctx context.Context, userID, challengeID string) ([]*models.Entry, error) {
	query :=
		`SELECT ` + entryColumns + ` FROM entries
		 WHERE user_id = $1 AND challenge_id = $2
		 ORDER BY day_number DESC, date DESC`
	return r.queryEntries(ctx, query, userID, challengeID)
}

func (r *PostgresRepository) CountByChallenge(ctx context.Context, userID, challengeID string) (int, error) {
	query := `SELECT COUNT(*) FROM entries WHERE user_id = $1 AND challenge_id = $2`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID, challengeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountPerChallenge(ctx context.Context, userID string) (map[string]int, error) {
	query :=
		`SELECT challenge_id, COUNT(*) FROM entries
		 WHERE user_id = $1 AND challenge_id <> 'none'
		 GROUP BY challenge_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByChallenge(ctx context.Context, userID, challengeID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE user_id = $1 AND challenge_id = $2`, userID, challengeID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListPublished(ctx context.Context, userID string) ([]*models.Entry, error) {
	query :=
		`SELECT ` + entryColumns + ` FROM entries
		 WHERE user_id = $1 AND status = 'published'
		 ORDER BY date DESC, created_at DESC`
	return r.queryEntries(ctx, query, userID)
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, userID, id string) (*models.Entry, error) {
	query :=
		`UPDATE entries SET views = views + 1
		 WHERE id = $1 AND user_id = $2 AND status = 'published'
		 RETURNING ` + entryColumns
	return scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
}
