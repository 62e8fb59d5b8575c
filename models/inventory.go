package models

import "time"

// UserInventory is one ownership record. The (user, item) pair is
// unique: owning the same catalog item twice is forbidden. IsEquipped
// is only meaningful for equippable item types; boosts never set it.
type UserInventory struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_inventory_user_item" json:"user_id"`
	ItemID string `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_user_item" json:"item_id"`

	IsEquipped bool `gorm:"not null;default:false" json:"is_equipped"`

	Item ShopItem `gorm:"foreignKey:ItemID" json:"item"`

	Timestamps
}

// UserBoost is an activated boost. Active means now < ExpiresAt;
// expired rows are swept by the scheduler but are also filtered out on
// read, so a stale row is harmless.
type UserBoost struct {
	ID     string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemID string `gorm:"type:uuid;not null" json:"item_id"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	Item ShopItem `gorm:"foreignKey:ItemID" json:"item"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
