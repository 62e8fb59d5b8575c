package models

import "time"

// UserDailyRoulette gates the free daily spin: one spin per 24h,
// measured from LastSpin. Created lazily on the first spin attempt.
type UserDailyRoulette struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	LastSpin *time.Time `json:"last_spin,omitempty"`

	Timestamps
}
