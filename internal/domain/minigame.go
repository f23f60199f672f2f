package domain

import "time"

// Mini-game types.
const (
	GamePixelMatch       = "pixel_match"
	GameTokenPuzzle      = "token_puzzle"
	GameResourceRush     = "resource_rush"
	GameGemHunter        = "gem_hunter"
	GamePatternPredictor = "pattern_predictor"
)

// MiniGameTypes lists all playable mini-games in display order.
var MiniGameTypes = []string{
	GamePixelMatch,
	GameTokenPuzzle,
	GameResourceRush,
	GameGemHunter,
	GamePatternPredictor,
}

// MiniGameResult is an append-only record of one play, also used as the
// per-game-type cooldown clock.
type MiniGameResult struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	GameType        string    `db:"game_type" json:"game_type"`
	Score           float64   `db:"score" json:"score"`
	RewardTokens    float64   `db:"reward_tokens" json:"reward_tokens"`
	RewardPixels    int       `db:"reward_pixels" json:"reward_pixels"`
	RewardMaterials int       `db:"reward_materials" json:"reward_materials"`
	RewardGems      int       `db:"reward_gems" json:"reward_gems"`
	RewardXP        int       `db:"reward_xp" json:"reward_xp"`
	PlayedAt        time.Time `db:"played_at" json:"played_at"`
}
