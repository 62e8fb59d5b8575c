package models

import "time"

// UserStreak tracks consecutive-day activity. MaxStreak never drops
// below CurrentStreak; LastActive is nil until the first qualifying
// action.
type UserStreak struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	CurrentStreak int        `json:"current_streak" gorm:"not null;default:0"`
	MaxStreak     int        `json:"max_streak" gorm:"not null;default:0"`
	LastActive    *time.Time `json:"last_active,omitempty"`

	Timestamps
}
