package domain

import "time"

// Building is a production unit owned by a game state.
type Building struct {
	ID             int64     `db:"id" json:"id"`
	GameStateID    int64     `db:"game_state_id" json:"-"`
	BuildingType   string    `db:"building_type" json:"building_type"`
	Level          int       `db:"level" json:"level"`
	ProductionRate float64   `db:"production_rate" json:"production_rate"`
	Produces       string    `db:"produces" json:"produces"`
	// Efficiency is frozen at purchase time and captures events active then.
	Efficiency     float64   `db:"efficiency" json:"efficiency"`
	LastCollection time.Time `db:"last_collection" json:"last_collection"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
