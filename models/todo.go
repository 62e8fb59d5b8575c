package models

import "time"

// Todo is a user task. Difficulty 1..3 drives the reward table.
// Dream steps are regular todos flagged with IsDreamStep and linked
// to their dream.
type Todo struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:varchar(2048)" json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Difficulty  int        `gorm:"not null;default:1" json:"difficulty"` // 1..3

	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	IsFailed    bool       `gorm:"not null;default:false" json:"is_failed"`
	ExecutedAt  *time.Time `json:"executed_at,omitempty"`

	IsDreamStep bool    `gorm:"not null;default:false" json:"is_dream_step"`
	DreamID     *string `gorm:"type:uuid;index" json:"dream_id,omitempty"`

	Timestamps
}
