package services

import (
	"log"
	"sort"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TradeService runs the two-party offer/accept/reject state machine.
// Accepted and rejected are terminal.
type TradeService struct {
	DB *gorm.DB
}

func NewTradeService(db *gorm.DB) *TradeService {
	return &TradeService{DB: db}
}

// CreateTrade validates both offers and opens a pending trade.
// Each side must offer coins, items or both; the offered inventory
// entries must belong to the offering party and the two item sets
// must be disjoint.
func (s *TradeService) CreateTrade(requesterID, recipientID string, requesterOffer, recipientOffer models.TradeOffer) (*models.Trade, error) {
	if requesterID == recipientID {
		return nil, ErrSelfTrade
	}
	if err := validateOffer(requesterOffer); err != nil {
		return nil, err
	}
	if err := validateOffer(recipientOffer); err != nil {
		return nil, err
	}
	offered := make(map[string]bool, len(requesterOffer.ItemIDs))
	for _, id := range requesterOffer.ItemIDs {
		offered[id] = true
	}
	for _, id := range recipientOffer.ItemIDs {
		if offered[id] {
			return nil, ErrInvalidOffer
		}
	}

	var trade *models.Trade
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, requesterID, requesterOffer.ItemIDs); err != nil {
			return err
		}
		if err := verifyOwnership(tx, recipientID, recipientOffer.ItemIDs); err != nil {
			return err
		}

		trade = &models.Trade{
			ID:             uuid.NewString(),
			RequesterID:    requesterID,
			RecipientID:    recipientID,
			RequesterOffer: requesterOffer,
			RecipientOffer: recipientOffer,
			Status:         models.TradeStatusPending,
		}
		return tx.Create(trade).Error
	})
	if err != nil {
		return nil, err
	}
	return trade, nil
}

func validateOffer(offer models.TradeOffer) error {
	if offer.Coins < 0 {
		return ErrInvalidOffer
	}
	if offer.IsEmpty() {
		return ErrInvalidOffer
	}
	seen := make(map[string]bool, len(offer.ItemIDs))
	for _, id := range offer.ItemIDs {
		if seen[id] {
			return ErrInvalidOffer
		}
		seen[id] = true
	}
	return nil
}

// verifyOwnership checks that every inventory entry id belongs to the
// given user. Re-run inside the accept transaction because ownership
// can change between creation and acceptance.
func verifyOwnership(tx *gorm.DB, userID string, entryIDs []string) error {
	if len(entryIDs) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&models.UserInventory{}).
		Where("id IN ? AND user_id = ?", entryIDs, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(entryIDs)) {
		return ErrItemNotOwned
	}
	return nil
}

// AcceptTrade performs the exchange. Only the recipient may accept,
// only from pending. Both profiles are locked in deterministic
// user-id order so two concurrent trades between the same pair cannot
// deadlock. Ownership and funds are re-validated under the locks;
// any failure leaves the trade pending and both ledgers untouched.
func (s *TradeService) AcceptTrade(tradeID, actorID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trade models.Trade
		if err := forUpdate(tx).First(&trade, "id = ?", tradeID).Error; err != nil {
			return err
		}
		if trade.Status != models.TradeStatusPending {
			return ErrTradeNotPending
		}
		if actorID != trade.RecipientID {
			return ErrNotAuthorized
		}

		// Lower user id locks first.
		ids := []string{trade.RequesterID, trade.RecipientID}
		sort.Strings(ids)
		profiles := make(map[string]*models.UserProfile, 2)
		for _, id := range ids {
			profile, err := LockProfile(tx, id)
			if err != nil {
				return err
			}
			profiles[id] = profile
		}
		requester := profiles[trade.RequesterID]
		recipient := profiles[trade.RecipientID]

		if err := verifyOwnership(tx, trade.RequesterID, trade.RequesterOffer.ItemIDs); err != nil {
			return err
		}
		if err := verifyOwnership(tx, trade.RecipientID, trade.RecipientOffer.ItemIDs); err != nil {
			return err
		}

		// Each party must be able to pay what they are giving.
		if requester.Balance < trade.RequesterOffer.Coins {
			return ErrInsufficientFunds
		}
		if recipient.Balance < trade.RecipientOffer.Coins {
			return ErrInsufficientFunds
		}

		requester.Balance += trade.RecipientOffer.Coins - trade.RequesterOffer.Coins
		recipient.Balance += trade.RequesterOffer.Coins - trade.RecipientOffer.Coins
		if err := tx.Save(requester).Error; err != nil {
			return err
		}
		if err := tx.Save(recipient).Error; err != nil {
			return err
		}

		if err := transferItems(tx, trade.RequesterOffer.ItemIDs, trade.RecipientID); err != nil {
			return err
		}
		if err := transferItems(tx, trade.RecipientOffer.ItemIDs, trade.RequesterID); err != nil {
			return err
		}

		trade.Status = models.TradeStatusAccepted
		if err := tx.Save(&trade).Error; err != nil {
			return err
		}
		log.Printf("🤝 Trade accepted: %s (%s ↔ %s)", trade.ID, trade.RequesterID, trade.RecipientID)
		return nil
	})
}

// transferItems reassigns inventory entries to the receiving party.
// The old entry is removed and a fresh one created, so the equip
// state never travels with the item. A receiver who already owns one
// of the items fails the whole trade.
func transferItems(tx *gorm.DB, entryIDs []string, toUserID string) error {
	for _, entryID := range entryIDs {
		var entry models.UserInventory
		if err := tx.First(&entry, "id = ?", entryID).Error; err != nil {
			return err
		}

		var owned int64
		if err := tx.Model(&models.UserInventory{}).
			Where("user_id = ? AND item_id = ?", toUserID, entry.ItemID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwned
		}

		// Hard delete: the (user, item) unique index must be free for
		// a future trade back.
		if err := tx.Unscoped().Delete(&entry).Error; err != nil {
			return err
		}
		replacement := models.UserInventory{
			ID:     uuid.NewString(),
			UserID: toUserID,
			ItemID: entry.ItemID,
		}
		if err := tx.Create(&replacement).Error; err != nil {
			return err
		}
	}
	return nil
}

// RejectTrade closes a pending trade with no ledger effects. Either
// party may reject — the requester rejecting their own trade is a
// cancel.
func (s *TradeService) RejectTrade(tradeID, actorID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trade models.Trade
		if err := forUpdate(tx).First(&trade, "id = ?", tradeID).Error; err != nil {
			return err
		}
		if trade.Status != models.TradeStatusPending {
			return ErrTradeNotPending
		}
		if actorID != trade.RequesterID && actorID != trade.RecipientID {
			return ErrNotAuthorized
		}
		trade.Status = models.TradeStatusRejected
		return tx.Save(&trade).Error
	})
}

// ListTrades returns every trade the user participates in, newest
// first.
func (s *TradeService) ListTrades(userID string) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.DB.Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&trades).Error
	return trades, err
}
