package services

import "errors"

// Domain-rule violations. Handlers translate these into user-facing
// responses; none of them leaves partial state behind.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrItemUnavailable      = errors.New("item is not available")
	ErrAlreadyOwned         = errors.New("item already owned")
	ErrItemNotOwned         = errors.New("item not owned")
	ErrBoostAlreadyActive   = errors.New("boost already active")
	ErrSpinNotAvailable     = errors.New("not allowed to spin yet")
	ErrTradeNotPending      = errors.New("trade is not pending")
	ErrRequestNotPending    = errors.New("friend request is not pending")
	ErrNotAuthorized        = errors.New("not authorized for this action")
	ErrInvalidOffer         = errors.New("invalid trade offer")
	ErrSelfTrade            = errors.New("cannot trade with yourself")
	ErrSelfFriendRequest    = errors.New("cannot befriend yourself")
	ErrFriendRequestExists  = errors.New("friend request already exists")
	ErrTaskAlreadyCompleted = errors.New("task is already completed")
	ErrInvalidDifficulty    = errors.New("difficulty must be between 1 and 3")
)

// Configuration errors indicate a broken deployment, not a bad
// request. They propagate as 500s.
var (
	ErrUnknownTrigger    = errors.New("unknown achievement trigger")
	ErrUnknownRewardType = errors.New("unknown roulette reward type")
	ErrRewardItemMissing = errors.New("roulette reward item missing from catalog")
)
