package models

import "time"

type DreamCategory string

const (
	DreamCategoryCar    DreamCategory = "CAR"
	DreamCategoryTravel DreamCategory = "TRAVEL"
	DreamCategoryHome   DreamCategory = "HOME"
	DreamCategoryOther  DreamCategory = "OTHER"
)

// Dream is a long-term goal broken down into step todos. A dream is
// achieved when its last remaining step is executed; it then goes
// inactive and counts toward the dreams_completed statistic.
type Dream struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_dream_user_title" json:"user_id"`

	Title       string        `gorm:"not null;uniqueIndex:idx_dream_user_title" json:"title"`
	Slug        string        `gorm:"index;not null" json:"slug"`
	Description string        `gorm:"type:varchar(2048)" json:"description,omitempty"`
	Category    DreamCategory `gorm:"type:varchar(16);default:'OTHER'" json:"category"`
	Price       int64         `gorm:"not null;default:0" json:"price"`

	IsPrivate bool `gorm:"not null;default:false" json:"is_private"`
	IsActive  bool `gorm:"not null;default:true" json:"is_active"`

	Images []DreamImage `gorm:"foreignKey:DreamID" json:"images,omitempty"`

	Timestamps
}

type DreamImage struct {
	ID      string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	DreamID string `gorm:"type:uuid;not null;index" json:"dream_id"`

	ImageURL  string `gorm:"type:text;not null" json:"image_url"` // R2 CDN URL
	IsPreview bool   `gorm:"not null;default:false" json:"is_preview"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// DreamLike is a toggleable like; the (user, dream) pair is unique.
type DreamLike struct {
	ID      string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_dream_like" json:"user_id"`
	DreamID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_dream_like" json:"dream_id"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
