package models

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
	FriendStatusRejected FriendStatus = "rejected"
)

// FriendRelation is a directed friend request; accepted relations are
// treated as symmetric when listing friends.
type FriendRelation struct {
	ID          string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	RequesterID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_friend_pair" json:"requester_id"`
	RecipientID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_friend_pair" json:"recipient_id"`

	Status FriendStatus `gorm:"type:varchar(16);default:'pending'" json:"status"`

	Timestamps
}
