package repository

import (
	"context"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MarketRepository struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

const historyColumns = `id, resource_type, avg_price, volume,
	price_change_24h, highest_price, lowest_price, timestamp`

func scanHistory(rows pgx.Rows) ([]*domain.MarketHistory, error) {
	var res []*domain.MarketHistory
	for rows.Next() {
		var h domain.MarketHistory
		err := rows.Scan(&h.ID, &h.ResourceType, &h.AvgPrice, &h.Volume,
			&h.PriceChange24h, &h.HighestPrice, &h.LowestPrice, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		res = append(res, &h)
	}
	return res, rows.Err()
}

// LatestPrices returns the most recent snapshot for every resource.
func (r *MarketRepository) LatestPrices(ctx context.Context) ([]*domain.MarketHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (resource_type) `+historyColumns+`
		 FROM market_history
		 ORDER BY resource_type, timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

// PriceHistory returns recent snapshots for a resource, oldest first.
func (r *MarketRepository) PriceHistory(ctx context.Context, resourceType string, limit int) ([]*domain.MarketHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM (
		     SELECT `+historyColumns+`
		     FROM market_history
		     WHERE resource_type = $1
		     ORDER BY timestamp DESC
		     LIMIT $2
		 ) recent ORDER BY timestamp`, resourceType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

// RecordSnapshot appends a price snapshot for the resource.
func (r *MarketRepository) RecordSnapshot(ctx context.Context, h *domain.MarketHistory) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO market_history
		     (resource_type, avg_price, volume, price_change_24h, highest_price, lowest_price)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, timestamp`,
		h.ResourceType, h.AvgPrice, h.Volume,
		h.PriceChange24h, h.HighestPrice, h.LowestPrice,
	).Scan(&h.ID, &h.CreatedAt)
}

// OpenOrders lists a user's live orders, newest first. Matching is not
// implemented; orders exist for the future trading release.
func (r *MarketRepository) OpenOrders(ctx context.Context, gameStateID int64, limit int) ([]*domain.MarketOrder, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, game_state_id, order_type, resource_type, quantity, price_per_unit,
		        filled_quantity, is_active, is_cancelled, created_at, completed_at
		 FROM market_orders
		 WHERE game_state_id = $1 AND is_active AND NOT is_cancelled
		 ORDER BY created_at DESC
		 LIMIT $2`, gameStateID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.MarketOrder
	for rows.Next() {
		var o domain.MarketOrder
		err := rows.Scan(&o.ID, &o.GameStateID, &o.OrderType, &o.ResourceType,
			&o.Quantity, &o.PricePerUnit, &o.FilledQuantity,
			&o.IsActive, &o.IsCancelled, &o.CreatedAt, &o.CompletedAt)
		if err != nil {
			return nil, err
		}
		res = append(res, &o)
	}
	return res, rows.Err()
}
