package game

import (
	"fmt"
	"math"
	"time"

	"pixel_plaza/internal/domain"
)

// Result is the typed outcome of one engine action. Fields beyond Success,
// Message and GameState are action-specific and omitted when zero.
type Result struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	GameState *domain.GameState `json:"game_state,omitempty"`

	Reward       float64 `json:"reward,omitempty"`
	Streak       int     `json:"streak,omitempty"`
	EnergyAdded  int     `json:"energy_added,omitempty"`
	EnergyUsed   int     `json:"energy_used,omitempty"`
	PixelsFound  int     `json:"pixels_found,omitempty"`
	PixelsUsed   int     `json:"pixels_used,omitempty"`
	Materials    int     `json:"materials_found,omitempty"`
	Gems         int     `json:"gems_found,omitempty"`
	XPGained     int     `json:"xp_gained,omitempty"`
	LevelUp      bool    `json:"level_up,omitempty"`
	SkillUp      bool    `json:"skill_up,omitempty"`
	Quality      string  `json:"quality,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
	BuildingType string  `json:"building_type,omitempty"`
	Income       float64 `json:"income,omitempty"`

	// Draft of the audit transaction the caller appends on success.
	TxType        string  `json:"-"`
	TxAmount      float64 `json:"-"`
	TxDescription string  `json:"-"`
}

// Fail builds a validation-failure result carrying the unmutated snapshot.
func Fail(st *domain.GameState, format string, args ...any) *Result {
	return &Result{
		Success:   false,
		Message:   fmt.Sprintf(format, args...),
		GameState: st,
	}
}

// FormatRemaining renders a cooldown remainder as "3h 41m".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// Round2 rounds token amounts to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
