package domain

import "time"

// Skill identifies a per-activity progression track.
type Skill string

const (
	SkillMining   Skill = "mining"
	SkillArt      Skill = "art"
	SkillBuilding Skill = "building"
	SkillTrading  Skill = "trading"
)

// GameState is the mutable economic snapshot of one user. One row per user.
type GameState struct {
	ID     int64 `db:"id" json:"-"`
	UserID int64 `db:"user_id" json:"-"`

	TokenBalance float64 `db:"token_balance" json:"token_balance"`
	Pixels       int     `db:"pixels" json:"pixels"`
	Materials    int     `db:"materials" json:"materials"`
	Gems         int     `db:"gems" json:"gems"`
	Energy       int     `db:"energy" json:"energy"`

	Level      int `db:"level" json:"level"`
	Experience int `db:"experience" json:"experience"`

	MiningSkill   int `db:"mining_skill" json:"mining_skill"`
	ArtSkill      int `db:"art_skill" json:"art_skill"`
	BuildingSkill int `db:"building_skill" json:"building_skill"`
	TradingSkill  int `db:"trading_skill" json:"trading_skill"`

	// Cumulative progress toward the next level of each skill.
	MiningProgress   int `db:"mining_progress" json:"-"`
	ArtProgress      int `db:"art_progress" json:"-"`
	BuildingProgress int `db:"building_progress" json:"-"`
	TradingProgress  int `db:"trading_progress" json:"-"`

	BuildingsOwned  int `db:"buildings_owned" json:"buildings_owned"`
	PixelArtCreated int `db:"pixel_art_created" json:"pixel_art_created"`
	DailyStreak     int `db:"daily_streak" json:"daily_streak"`
	ReferralCount   int `db:"referral_count" json:"referral_count"`
	TasksCompleted  int `db:"tasks_completed" json:"tasks_completed"`

	LastDailyClaim *time.Time `db:"last_daily_claim" json:"last_daily_claim,omitempty"`
	LastActive     time.Time  `db:"last_active" json:"last_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// SkillLevel returns the current level of the given skill.
func (g *GameState) SkillLevel(s Skill) int {
	switch s {
	case SkillMining:
		return g.MiningSkill
	case SkillArt:
		return g.ArtSkill
	case SkillBuilding:
		return g.BuildingSkill
	case SkillTrading:
		return g.TradingSkill
	}
	return 1
}

// SkillProgress returns the stored cumulative progress of the given skill.
func (g *GameState) SkillProgress(s Skill) int {
	switch s {
	case SkillMining:
		return g.MiningProgress
	case SkillArt:
		return g.ArtProgress
	case SkillBuilding:
		return g.BuildingProgress
	case SkillTrading:
		return g.TradingProgress
	}
	return 0
}

// SetSkill stores a skill level and its remaining progress.
func (g *GameState) SetSkill(s Skill, level, progress int) {
	switch s {
	case SkillMining:
		g.MiningSkill, g.MiningProgress = level, progress
	case SkillArt:
		g.ArtSkill, g.ArtProgress = level, progress
	case SkillBuilding:
		g.BuildingSkill, g.BuildingProgress = level, progress
	case SkillTrading:
		g.TradingSkill, g.TradingProgress = level, progress
	}
}

// Clone returns a copy of the state, used to report the unmutated snapshot
// when an action fails its preconditions.
func (g *GameState) Clone() *GameState {
	cp := *g
	if g.LastDailyClaim != nil {
		t := *g.LastDailyClaim
		cp.LastDailyClaim = &t
	}
	return &cp
}
