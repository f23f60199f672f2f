package repository

import (
	"context"
	"errors"
	"time"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CooldownRepository struct {
	db *pgxpool.Pool
}

func NewCooldownRepository(db *pgxpool.Pool) *CooldownRepository {
	return &CooldownRepository{db: db}
}

// Get returns the stored gate for a user/category, or nil if none was set.
func (r *CooldownRepository) Get(ctx context.Context, userID int64, category string) (*domain.Cooldown, error) {
	var cd domain.Cooldown
	err := r.db.QueryRow(ctx,
		`SELECT user_id, category, next_available_at FROM cooldowns
		 WHERE user_id = $1 AND category = $2`,
		userID, category).Scan(&cd.UserID, &cd.Category, &cd.NextAvailableAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cd, nil
}

// GetWithTx reads the gate under the caller's transaction. Combined with the
// state row lock this makes cooldown check-then-set atomic per user.
func (r *CooldownRepository) GetWithTx(ctx context.Context, tx pgx.Tx, userID int64, category string) (*domain.Cooldown, error) {
	var cd domain.Cooldown
	err := tx.QueryRow(ctx,
		`SELECT user_id, category, next_available_at FROM cooldowns
		 WHERE user_id = $1 AND category = $2`,
		userID, category).Scan(&cd.UserID, &cd.Category, &cd.NextAvailableAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cd, nil
}

// SetWithTx upserts the next moment the action becomes available.
func (r *CooldownRepository) SetWithTx(ctx context.Context, tx pgx.Tx, userID int64, category string, nextAvailableAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO cooldowns (user_id, category, next_available_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, category)
		 DO UPDATE SET next_available_at = EXCLUDED.next_available_at`,
		userID, category, nextAvailableAt)
	return err
}

// ListByUser returns every stored gate for the user.
func (r *CooldownRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Cooldown, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, category, next_available_at FROM cooldowns
		 WHERE user_id = $1 ORDER BY category`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Cooldown
	for rows.Next() {
		var cd domain.Cooldown
		if err := rows.Scan(&cd.UserID, &cd.Category, &cd.NextAvailableAt); err != nil {
			return nil, err
		}
		res = append(res, &cd)
	}
	return res, rows.Err()
}
