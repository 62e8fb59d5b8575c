package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile is the central progression record: XP plus the two
// currencies. Balances are plain coins, DonationBalance is the premium
// currency used for donation-only shop items. Rows are created lazily
// the first time a user touches the engine.
type UserProfile struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"` // identity from the gateway

	XP              int64 `json:"xp" gorm:"not null;default:0"`
	Balance         int64 `json:"balance" gorm:"not null;default:0"`
	DonationBalance int64 `json:"donation_balance" gorm:"not null;default:0"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
