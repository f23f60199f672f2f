package repository

import (
	"context"
	"errors"
	"time"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MiniGameRepository struct {
	db *pgxpool.Pool
}

func NewMiniGameRepository(db *pgxpool.Pool) *MiniGameRepository {
	return &MiniGameRepository{db: db}
}

func (r *MiniGameRepository) Create(ctx context.Context, res *domain.MiniGameResult) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO mini_game_results (user_id, game_type, score, reward_tokens, reward_pixels, reward_materials, reward_gems, reward_xp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, played_at`,
		res.UserID, res.GameType, res.Score,
		res.RewardTokens, res.RewardPixels, res.RewardMaterials, res.RewardGems, res.RewardXP,
	).Scan(&res.ID, &res.PlayedAt)
}

// CreateWithTx records a play inside an existing transaction.
func (r *MiniGameRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, res *domain.MiniGameResult) error {
	return tx.QueryRow(ctx,
		`INSERT INTO mini_game_results (user_id, game_type, score, reward_tokens, reward_pixels, reward_materials, reward_gems, reward_xp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, played_at`,
		res.UserID, res.GameType, res.Score,
		res.RewardTokens, res.RewardPixels, res.RewardMaterials, res.RewardGems, res.RewardXP,
	).Scan(&res.ID, &res.PlayedAt)
}

// LastPlayed returns when the user last played the game, or nil if never.
func (r *MiniGameRepository) LastPlayed(ctx context.Context, userID int64, gameType string) (*time.Time, error) {
	var t time.Time
	err := r.db.QueryRow(ctx,
		`SELECT played_at FROM mini_game_results
		 WHERE user_id = $1 AND game_type = $2
		 ORDER BY played_at DESC LIMIT 1`,
		userID, gameType).Scan(&t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// LastPlayedAll returns the latest play time per game type for the user.
func (r *MiniGameRepository) LastPlayedAll(ctx context.Context, userID int64) (map[string]time.Time, error) {
	rows, err := r.db.Query(ctx,
		`SELECT game_type, MAX(played_at) FROM mini_game_results
		 WHERE user_id = $1 GROUP BY game_type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]time.Time)
	for rows.Next() {
		var gt string
		var t time.Time
		if err := rows.Scan(&gt, &t); err != nil {
			return nil, err
		}
		res[gt] = t
	}
	return res, rows.Err()
}
