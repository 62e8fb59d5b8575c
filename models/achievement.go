package models

import "time"

// Achievement is an admin-managed catalog entry. Condition maps
// metric names to required thresholds; every metric must be present
// in the trigger payload with a value >= the threshold for the
// achievement to unlock.
type Achievement struct {
	ID          string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"` // e.g. "STREAK_7", "FIRST_PURCHASE"
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	// Stored as trigger_name: "trigger" is an SQL keyword.
	Trigger   string           `gorm:"column:trigger_name;type:varchar(32);index;not null" json:"trigger"`
	Condition map[string]int64 `gorm:"serializer:json;type:jsonb" json:"condition"`

	RewardXP      int64    `json:"reward_xp" gorm:"not null;default:0"`
	RewardCoins   int64    `json:"reward_coins" gorm:"not null;default:0"`
	RewardItemIDs []string `gorm:"serializer:json;type:jsonb" json:"reward_item_ids,omitempty"`

	OneTime bool `gorm:"not null;default:true" json:"one_time"`

	Timestamps
}

// UserAchievement marks an achievement as earned. Earning is
// idempotent via the (user, achievement) unique index; claiming the
// reward flips IsClaimed separately.
type UserAchievement struct {
	ID            string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID        string `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`

	IsClaimed bool      `gorm:"not null;default:false" json:"is_claimed"`
	EarnedAt  time.Time `json:"earned_at" gorm:"autoCreateTime"`

	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}
