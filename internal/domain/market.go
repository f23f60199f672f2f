package domain

import "time"

// MarketOrder is a resource buy/sell order. Order matching is not part of the
// reward engine; orders are stored for a future trading release.
type MarketOrder struct {
	ID             int64      `db:"id" json:"id"`
	GameStateID    int64      `db:"game_state_id" json:"-"`
	OrderType      string     `db:"order_type" json:"order_type"` // buy or sell
	ResourceType   string     `db:"resource_type" json:"resource_type"`
	Quantity       int        `db:"quantity" json:"quantity"`
	PricePerUnit   float64    `db:"price_per_unit" json:"price_per_unit"`
	FilledQuantity int        `db:"filled_quantity" json:"filled_quantity"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	IsCancelled    bool       `db:"is_cancelled" json:"is_cancelled"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// MarketHistory is an aggregated price snapshot per resource.
type MarketHistory struct {
	ID             int64     `db:"id" json:"id"`
	ResourceType   string    `db:"resource_type" json:"resource_type"`
	AvgPrice       float64   `db:"avg_price" json:"avg_price"`
	Volume         int       `db:"volume" json:"volume"`
	PriceChange24h float64   `db:"price_change_24h" json:"price_change_24h"`
	HighestPrice   float64   `db:"highest_price" json:"highest_price"`
	LowestPrice    float64   `db:"lowest_price" json:"lowest_price"`
	CreatedAt      time.Time `db:"timestamp" json:"timestamp"`
}
