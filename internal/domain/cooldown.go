package domain

import "time"

// Cooldown categories gated through the cooldowns table.
const (
	CooldownDaily    = "daily"
	CooldownCollect  = "collect"
	CooldownMiniGame = "minigame:" // prefix, followed by the game type
)

// Cooldown stores the explicit gate for a rate-limited action category,
// decoupled from the audit log.
type Cooldown struct {
	UserID          int64     `db:"user_id" json:"user_id"`
	Category        string    `db:"category" json:"category"`
	NextAvailableAt time.Time `db:"next_available_at" json:"next_available_at"`
}

// Remaining returns the time left before the gate opens, or 0 if open.
func (c *Cooldown) Remaining(now time.Time) time.Duration {
	if c == nil || !now.Before(c.NextAvailableAt) {
		return 0
	}
	return c.NextAvailableAt.Sub(now)
}
