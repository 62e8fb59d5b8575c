package models

type ItemType string

const (
	ItemTypeAvatar     ItemType = "avatar"
	ItemTypeBackground ItemType = "background"
	ItemTypeIcon       ItemType = "icon"
	ItemTypeBoost      ItemType = "boost"
)

type ItemRarity string

const (
	RarityCommon    ItemRarity = "common"
	RarityRare      ItemRarity = "rare"
	RarityEpic      ItemRarity = "epic"
	RarityLegendary ItemRarity = "legendary"
)

type BoostType string

const (
	BoostTypeXP    BoostType = "xp"
	BoostTypeMoney BoostType = "money"
)

// ShopItem is the catalog entry for every purchasable cosmetic. It is
// a tagged variant over Type: the Boost* fields are only populated
// when Type == ItemTypeBoost, everything else shares the common
// columns. Avatar/background/icon items are equippable (one per type
// per user); boosts activate into UserBoost rows instead.
type ShopItem struct {
	ID          string     `gorm:"primaryKey;type:uuid;not null" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Rarity      ItemRarity `gorm:"type:varchar(16);default:'common'" json:"rarity"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `gorm:"type:text" json:"image_url,omitempty"` // R2 CDN URL
	Price       int64      `gorm:"not null" json:"price"`

	IsDonationOnly bool `gorm:"not null;default:false" json:"is_donation_only"`
	IsActive       bool `gorm:"not null;default:true" json:"is_active"`

	Type ItemType `gorm:"type:varchar(20);index;not null" json:"type"`

	// Boost-only payload.
	BoostType       *BoostType `gorm:"type:varchar(20)" json:"boost_type,omitempty"`
	Multiplier      *float64   `json:"multiplier,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`

	Timestamps
}

// IsBoost reports whether the boost payload is expected to be set.
func (i *ShopItem) IsBoost() bool {
	return i.Type == ItemTypeBoost
}
