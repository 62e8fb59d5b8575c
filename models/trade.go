package models

type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "pending"
	TradeStatusAccepted TradeStatus = "accepted"
	TradeStatusRejected TradeStatus = "rejected"
)

// TradeOffer is one side of a trade: coins, inventory entry IDs or
// both. At least one of the two must be non-empty.
type TradeOffer struct {
	Coins   int64    `json:"coins,omitempty"`
	ItemIDs []string `json:"item_ids,omitempty"`
}

// IsEmpty reports whether the offer carries nothing of value.
func (o TradeOffer) IsEmpty() bool {
	return o.Coins <= 0 && len(o.ItemIDs) == 0
}

// Trade is a two-party negotiation. Accepted and rejected are
// terminal; the exchange itself happens atomically on accept.
type Trade struct {
	ID          string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	RequesterID string `gorm:"type:uuid;not null;index" json:"requester_id"`
	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient_id"`

	RequesterOffer TradeOffer `gorm:"serializer:json;type:jsonb" json:"requester_offer"`
	RecipientOffer TradeOffer `gorm:"serializer:json;type:jsonb" json:"recipient_offer"`

	Status TradeStatus `gorm:"type:varchar(16);index;default:'pending'" json:"status"`

	Timestamps
}
