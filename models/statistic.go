package models

// Statistic holds the monotonically increasing per-user activity
// counters that feed achievement triggers. Created lazily alongside
// the profile.
type Statistic struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	TasksCompleted  int64 `json:"tasks_completed" gorm:"not null;default:0"`
	TasksFailed     int64 `json:"tasks_failed" gorm:"not null;default:0"`
	ItemsBought     int64 `json:"items_bought" gorm:"not null;default:0"`
	ItemsEquipped   int64 `json:"items_equipped" gorm:"not null;default:0"`
	DreamsCompleted int64 `json:"dreams_completed" gorm:"not null;default:0"`

	Timestamps
}
