package domain

import "time"

type User struct {
	ID            int64      `db:"id" json:"id"`
	TgID          int64      `db:"tg_id" json:"tg_id"`
	Username      string     `db:"username" json:"username"`
	FirstName     string     `db:"first_name" json:"first_name"`
	WalletAddress *string    `db:"wallet_address" json:"wallet_address,omitempty"`
	ReferralCode  *string    `db:"referral_code" json:"referral_code,omitempty"`
	ReferredBy    *int64     `db:"referred_by" json:"referred_by,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
