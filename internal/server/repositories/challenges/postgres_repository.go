package challenges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/dbx"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/google/uuid"
)

const challengeColumns = `id, user_id, name, category, description, duration, start_date, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanChallenge(row interface{ Scan(...any) error }) (*models.Challenge, error) {
	c := &models.Challenge{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Category, &c.Description,
		&c.Duration, &c.StartDate, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Challenge) (*models.Challenge, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO challenges (id, user_id, name, category, description, duration, start_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Category, c.Description, c.Duration, c.StartDate, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Challenge, error) {
	query :=
		`SELECT ` + challengeColumns + ` FROM challenges
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Challenge, 0)
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1 AND user_id = $2`
	return scanChallenge(r.db.QueryRowContext(ctx, query, id, userID))
}

// Update overwrites every mutable column of the owned challenge.
func (r *PostgresRepository) Update(ctx context.Context, c *models.Challenge) (*models.Challenge, error) {
	query :=
		`UPDATE challenges
		 SET name = $3, category = $4, description = $5, duration = $6, start_date = $7, status = $8, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + challengeColumns

	return scanChallenge(r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Category, c.Description, c.Duration, c.StartDate, c.Status))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *PostgresRepository) LockForUpdate(ctx context.Context, userID, id string) error {
	query := `SELECT id FROM challenges WHERE id = $1 AND user_id = $2 FOR UPDATE`

	var got string
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query :=
		`UPDATE challenges SET status = 'completed', updated_at = now()
		 WHERE status = 'active' AND start_date + duration * INTERVAL '1 day' <= $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
