package repository

import (
	"context"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, description, event_type,
	mining_multiplier, art_multiplier, building_multiplier, market_fee_multiplier,
	affects_tokens, affects_pixels, affects_materials, affects_gems,
	start_time, end_time, is_active`

func scanEvents(rows pgx.Rows) ([]*domain.GameEvent, error) {
	defer rows.Close()

	var res []*domain.GameEvent
	for rows.Next() {
		var e domain.GameEvent
		err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.EventType,
			&e.MiningMultiplier, &e.ArtMultiplier, &e.BuildingMultiplier, &e.MarketFeeMultiplier,
			&e.AffectsTokens, &e.AffectsPixels, &e.AffectsMaterials, &e.AffectsGems,
			&e.StartTime, &e.EndTime, &e.IsActive,
		)
		if err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}

// GetActive returns events that are flagged active AND inside their window.
// The window predicate makes expiry effective at read time, before the
// sweeper flips the flag.
func (r *EventRepository) GetActive(ctx context.Context) ([]*domain.GameEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM game_events
		 WHERE is_active AND start_time <= NOW() AND end_time > NOW()
		 ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// CountActive counts events inside their window, for the concurrency cap.
func (r *EventRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM game_events
		 WHERE is_active AND start_time <= NOW() AND end_time > NOW()`).Scan(&n)
	return n, err
}

func (r *EventRepository) Create(ctx context.Context, e *domain.GameEvent) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO game_events (name, description, event_type,
		     mining_multiplier, art_multiplier, building_multiplier, market_fee_multiplier,
		     affects_tokens, affects_pixels, affects_materials, affects_gems,
		     start_time, end_time, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
		 RETURNING id`,
		e.Name, e.Description, e.EventType,
		e.MiningMultiplier, e.ArtMultiplier, e.BuildingMultiplier, e.MarketFeeMultiplier,
		e.AffectsTokens, e.AffectsPixels, e.AffectsMaterials, e.AffectsGems,
		e.StartTime, e.EndTime,
	).Scan(&e.ID)
}

// DeactivateExpired flips the active flag on events past their end time.
func (r *EventRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE game_events SET is_active = FALSE WHERE is_active AND end_time <= NOW()`)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// Deactivate ends one event early, for admin use.
func (r *EventRepository) Deactivate(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE game_events SET is_active = FALSE, end_time = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// History lists recent events regardless of state, newest first.
func (r *EventRepository) History(ctx context.Context, limit int) ([]*domain.GameEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM game_events
		 ORDER BY start_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}
