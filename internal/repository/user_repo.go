package repository

import (
	"context"
	"errors"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, tg_id, COALESCE(username, ''), COALESCE(first_name, ''),
	wallet_address, referral_code, referred_by, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.TgID,
		&u.Username,
		&u.FirstName,
		&u.WalletAddress,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByTgID(ctx context.Context, tgID int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE tg_id = $1`, tgID))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByReferralCode resolves a referral code to its owner.
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code))
}

// Create inserts a user together with their initial game state.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO users (tg_id, username, first_name, referred_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.TgID, u.Username, u.FirstName, u.ReferredBy,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO game_states (user_id) VALUES ($1)`, u.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetWalletAddress stores the payout address.
func (r *UserRepository) SetWalletAddress(ctx context.Context, userID int64, address string) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET wallet_address = $1 WHERE id = $2`, address, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetReferralCode sets the code once; it is immutable afterwards.
// Returns ErrNotFound when the user already has one or the code collides.
func (r *UserRepository) SetReferralCode(ctx context.Context, userID int64, code string) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET referral_code = $1
		 WHERE id = $2 AND referral_code IS NULL`,
		code, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LeaderboardEntry is one row of the token balance leaderboard.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Username     string  `json:"username"`
	Level        int     `json:"level"`
	TokenBalance float64 `json:"token_balance"`
}

// TopByBalance returns users ordered by token balance desc.
func (r *UserRepository) TopByBalance(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(u.username, ''), gs.level, gs.token_balance
		FROM users u
		JOIN game_states gs ON gs.user_id = u.id
		ORDER BY gs.token_balance DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Level, &e.TokenBalance); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		res = append(res, e)
	}
	return res, rows.Err()
}

// RankByBalance returns the user's 1-based leaderboard position.
func (r *UserRepository) RankByBalance(ctx context.Context, userID int64) (int, error) {
	var rank int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) + 1
		FROM game_states
		WHERE token_balance > (SELECT token_balance FROM game_states WHERE user_id = $1)`,
		userID).Scan(&rank)
	return rank, err
}

// AirdropRow is one exported row of users with a payout address set.
type AirdropRow struct {
	Username      string
	TgID          int64
	WalletAddress string
	TokenBalance  float64
	LastActive    string
}

// AirdropList returns every user who set a wallet address, richest first.
func (r *UserRepository) AirdropList(ctx context.Context) ([]AirdropRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(u.username, ''), u.tg_id, u.wallet_address, gs.token_balance,
		       to_char(gs.last_active, 'YYYY-MM-DD HH24:MI:SS')
		FROM users u
		JOIN game_states gs ON gs.user_id = u.id
		WHERE u.wallet_address IS NOT NULL
		ORDER BY gs.token_balance DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []AirdropRow
	for rows.Next() {
		var row AirdropRow
		if err := rows.Scan(&row.Username, &row.TgID, &row.WalletAddress, &row.TokenBalance, &row.LastActive); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// CountReferred counts users referred by the given user.
func (r *UserRepository) CountReferred(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE referred_by = $1`, userID).Scan(&n)
	return n, err
}
