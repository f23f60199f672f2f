package domain

import "time"

// Transaction categories used by the engine.
const (
	TxDaily          = "daily_reward"
	TxMining         = "mining"
	TxPixelArt       = "pixel_art"
	TxBuildingBuy    = "building_purchase"
	TxBuildingIncome = "building_income"
	TxMiniGame       = "mini_game"
	TxTaskReward     = "task_reward"
	TxReferralBonus  = "referral_bonus"
)

// Transaction is an immutable audit record of a balance change.
type Transaction struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Type        string    `db:"type" json:"type"`
	Amount      float64   `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
