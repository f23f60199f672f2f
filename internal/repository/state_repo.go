package repository

import (
	"context"
	"errors"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StateRepository struct {
	db *pgxpool.Pool
}

func NewStateRepository(db *pgxpool.Pool) *StateRepository {
	return &StateRepository{db: db}
}

const stateColumns = `id, user_id, token_balance, pixels, materials, gems, energy,
	level, experience,
	mining_skill, art_skill, building_skill, trading_skill,
	mining_progress, art_progress, building_progress, trading_progress,
	buildings_owned, pixel_art_created, daily_streak, referral_count, tasks_completed,
	last_daily_claim, last_active, created_at`

func scanState(row pgx.Row) (*domain.GameState, error) {
	var s domain.GameState
	err := row.Scan(
		&s.ID, &s.UserID, &s.TokenBalance, &s.Pixels, &s.Materials, &s.Gems, &s.Energy,
		&s.Level, &s.Experience,
		&s.MiningSkill, &s.ArtSkill, &s.BuildingSkill, &s.TradingSkill,
		&s.MiningProgress, &s.ArtProgress, &s.BuildingProgress, &s.TradingProgress,
		&s.BuildingsOwned, &s.PixelArtCreated, &s.DailyStreak, &s.ReferralCount, &s.TasksCompleted,
		&s.LastDailyClaim, &s.LastActive, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StateRepository) GetByUserID(ctx context.Context, userID int64) (*domain.GameState, error) {
	return scanState(r.db.QueryRow(ctx,
		`SELECT `+stateColumns+` FROM game_states WHERE user_id = $1`, userID))
}

// GetForUpdate locks the state row inside the caller's transaction. This is
// the per-user serialization point: two concurrent actions on the same user
// queue up here instead of double-spending.
func (r *StateRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.GameState, error) {
	return scanState(tx.QueryRow(ctx,
		`SELECT `+stateColumns+` FROM game_states WHERE user_id = $1 FOR UPDATE`, userID))
}

const stateUpdateSQL = `UPDATE game_states SET
	token_balance = $2, pixels = $3, materials = $4, gems = $5, energy = $6,
	level = $7, experience = $8,
	mining_skill = $9, art_skill = $10, building_skill = $11, trading_skill = $12,
	mining_progress = $13, art_progress = $14, building_progress = $15, trading_progress = $16,
	buildings_owned = $17, pixel_art_created = $18, daily_streak = $19,
	referral_count = $20, tasks_completed = $21,
	last_daily_claim = $22, last_active = NOW()
	WHERE id = $1`

func stateUpdateArgs(s *domain.GameState) []any {
	return []any{
		s.ID,
		s.TokenBalance, s.Pixels, s.Materials, s.Gems, s.Energy,
		s.Level, s.Experience,
		s.MiningSkill, s.ArtSkill, s.BuildingSkill, s.TradingSkill,
		s.MiningProgress, s.ArtProgress, s.BuildingProgress, s.TradingProgress,
		s.BuildingsOwned, s.PixelArtCreated, s.DailyStreak,
		s.ReferralCount, s.TasksCompleted,
		s.LastDailyClaim,
	}
}

// Update persists the whole mutable snapshot.
func (r *StateRepository) Update(ctx context.Context, s *domain.GameState) error {
	_, err := r.db.Exec(ctx, stateUpdateSQL, stateUpdateArgs(s)...)
	return err
}

// UpdateWithTx persists the snapshot inside an existing transaction.
func (r *StateRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, s *domain.GameState) error {
	_, err := tx.Exec(ctx, stateUpdateSQL, stateUpdateArgs(s)...)
	return err
}

// CreditRewardWithTx applies a task/referral reward triple directly.
func (r *StateRepository) CreditRewardWithTx(ctx context.Context, tx pgx.Tx, userID int64, tokens float64, pixels, xp int) error {
	_, err := tx.Exec(ctx,
		`UPDATE game_states
		 SET token_balance = token_balance + $1,
		     pixels = pixels + $2,
		     experience = experience + $3,
		     last_active = NOW()
		 WHERE user_id = $4`,
		tokens, pixels, xp, userID)
	return err
}
