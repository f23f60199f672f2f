package domain

import "time"

// EventType - kind of global time-boxed modifier.
type EventType string

const (
	EventSeasonal EventType = "seasonal"
	EventSpecial  EventType = "special"
	EventCrisis   EventType = "crisis"
	EventBoom     EventType = "boom"
)

// Activity names used for event multiplier lookups.
type Activity string

const (
	ActivityMining   Activity = "mining"
	ActivityArt      Activity = "art"
	ActivityBuilding Activity = "building"
	ActivityMarket   Activity = "market"
)

// GameEvent is a global modifier scaling rewards within [StartTime, EndTime).
// Expiry is implicit: "active" is a read-time predicate over the window.
type GameEvent struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	EventType   EventType `db:"event_type" json:"event_type"`

	MiningMultiplier    float64 `db:"mining_multiplier" json:"mining_multiplier"`
	ArtMultiplier       float64 `db:"art_multiplier" json:"art_multiplier"`
	BuildingMultiplier  float64 `db:"building_multiplier" json:"building_multiplier"`
	MarketFeeMultiplier float64 `db:"market_fee_multiplier" json:"market_fee_multiplier"`

	AffectsTokens    bool `db:"affects_tokens" json:"affects_tokens"`
	AffectsPixels    bool `db:"affects_pixels" json:"affects_pixels"`
	AffectsMaterials bool `db:"affects_materials" json:"affects_materials"`
	AffectsGems      bool `db:"affects_gems" json:"affects_gems"`

	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

// ActiveAt reports whether the event window covers the given instant.
func (e *GameEvent) ActiveAt(now time.Time) bool {
	return e.IsActive && !now.Before(e.StartTime) && now.Before(e.EndTime)
}

// MultiplierFor returns the event's multiplier for an activity.
func (e *GameEvent) MultiplierFor(a Activity) float64 {
	switch a {
	case ActivityMining:
		return e.MiningMultiplier
	case ActivityArt:
		return e.ArtMultiplier
	case ActivityBuilding:
		return e.BuildingMultiplier
	case ActivityMarket:
		return e.MarketFeeMultiplier
	}
	return 1.0
}
