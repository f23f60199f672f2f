package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pixel_plaza/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService provides operator statistics and exports.
type AdminService struct {
	db    *pgxpool.Pool
	users *repository.UserRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:    db,
		users: repository.NewUserRepository(db),
	}
}

// Stats represents platform statistics.
type Stats struct {
	TotalUsers       int64   `json:"total_users"`
	ActiveUsersToday int64   `json:"active_users_today"`
	ActiveUsersWeek  int64   `json:"active_users_week"`
	TotalTokens      float64 `json:"total_tokens"` // tokens in circulation
	TotalPixels      int64   `json:"total_pixels"`
	TotalGems        int64   `json:"total_gems"`
	TotalBuildings   int64   `json:"total_buildings"`
	ArtworksCreated  int64   `json:"artworks_created"`
	GamesPlayedToday int64   `json:"games_played_today"`
	ActiveEvents     int64   `json:"active_events"`
	WalletsSet       int64   `json:"wallets_set"`
	NewUsersToday    int64   `json:"new_users_today"`
}

// GetStats returns platform statistics.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekAgo := today.Add(-7 * 24 * time.Hour)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM game_states WHERE last_active >= $1
	`, today).Scan(&stats.ActiveUsersToday)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM game_states WHERE last_active >= $1
	`, weekAgo).Scan(&stats.ActiveUsersWeek)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(token_balance), 0), COALESCE(SUM(pixels), 0), COALESCE(SUM(gems), 0),
		       COALESCE(SUM(pixel_art_created), 0)
		FROM game_states
	`).Scan(&stats.TotalTokens, &stats.TotalPixels, &stats.TotalGems, &stats.ArtworksCreated)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM buildings`).Scan(&stats.TotalBuildings)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM mini_game_results WHERE played_at >= $1
	`, today).Scan(&stats.GamesPlayedToday)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM game_events
		WHERE is_active AND start_time <= NOW() AND end_time > NOW()
	`).Scan(&stats.ActiveEvents)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE wallet_address IS NOT NULL
	`).Scan(&stats.WalletsSet)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE created_at >= $1
	`, today).Scan(&stats.NewUsersToday)

	return stats, nil
}

// Leaderboard returns the top users by token balance.
func (s *AdminService) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.users.TopByBalance(ctx, limit)
}

// AirdropCSV exports users with a wallet address set, for the token
// distribution snapshot.
func (s *AdminService) AirdropCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.users.AirdropList(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"username", "tg_id", "wallet_address", "token_balance", "last_active"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.Username,
			strconv.FormatInt(r.TgID, 10),
			r.WalletAddress,
			fmt.Sprintf("%.2f", r.TokenBalance),
			r.LastActive,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetAllUserTgIDs returns every Telegram ID, for bot broadcasts.
func (s *AdminService) GetAllUserTgIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.Query(ctx, `SELECT tg_id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserInfo represents user information for operator lookups.
type UserInfo struct {
	ID           int64     `json:"id"`
	TgID         int64     `json:"tg_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	Level        int       `json:"level"`
	TokenBalance float64   `json:"token_balance"`
	Pixels       int       `json:"pixels"`
	Gems         int       `json:"gems"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetUser finds a user by internal ID, Telegram ID or username.
func (s *AdminService) GetUser(ctx context.Context, identifier string) (*UserInfo, error) {
	identifier = strings.TrimPrefix(identifier, "@")

	var u UserInfo
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.tg_id, COALESCE(u.username, ''), COALESCE(u.first_name, ''),
		       gs.level, gs.token_balance, gs.pixels, gs.gems, u.created_at
		FROM users u
		JOIN game_states gs ON gs.user_id = u.id
		WHERE u.id::text = $1 OR u.tg_id::text = $1 OR LOWER(u.username) = LOWER($1)
	`, identifier).Scan(&u.ID, &u.TgID, &u.Username, &u.FirstName,
		&u.Level, &u.TokenBalance, &u.Pixels, &u.Gems, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GrantTokens credits tokens to a user outside the normal economy, with an
// audit record.
func (s *AdminService) GrantTokens(ctx context.Context, userID int64, amount float64, reason string) (float64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var newBalance float64
	err = tx.QueryRow(ctx, `
		UPDATE game_states SET token_balance = token_balance + $1
		WHERE user_id = $2 RETURNING token_balance
	`, amount, userID).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (user_id, type, amount, description)
		VALUES ($1, 'admin_grant', $2, $3)
	`, userID, amount, reason)
	if err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}
