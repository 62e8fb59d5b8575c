package services

import (
	"errors"
	"testing"

	"lifequest-system/models"

	"github.com/google/uuid"
)

func TestCreateTradeValidation(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()

	coins := models.TradeOffer{Coins: 10}

	if _, err := s.CreateTrade(alice, alice, coins, coins); !errors.Is(err, ErrSelfTrade) {
		t.Errorf("self trade err = %v, want ErrSelfTrade", err)
	}
	if _, err := s.CreateTrade(alice, bob, models.TradeOffer{}, coins); !errors.Is(err, ErrInvalidOffer) {
		t.Errorf("empty offer err = %v, want ErrInvalidOffer", err)
	}
	if _, err := s.CreateTrade(alice, bob, models.TradeOffer{Coins: -5}, coins); !errors.Is(err, ErrInvalidOffer) {
		t.Errorf("negative coins err = %v, want ErrInvalidOffer", err)
	}

	entryID := uuid.NewString()
	dup := models.TradeOffer{ItemIDs: []string{entryID, entryID}}
	if _, err := s.CreateTrade(alice, bob, dup, coins); !errors.Is(err, ErrInvalidOffer) {
		t.Errorf("duplicate item err = %v, want ErrInvalidOffer", err)
	}
}

func TestCreateTradeRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()

	item := seedItem(t, db, "traded-avatar", models.ItemTypeAvatar, 10)
	entry := seedInventory(t, db, bob, item.ID) // bob owns it, not alice

	_, err := s.CreateTrade(alice, bob,
		models.TradeOffer{ItemIDs: []string{entry.ID}},
		models.TradeOffer{Coins: 10})
	if !errors.Is(err, ErrItemNotOwned) {
		t.Fatalf("err = %v, want ErrItemNotOwned", err)
	}
}

func TestAcceptTradeConservesCoinsAndMovesItems(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()
	seedProfile(t, db, alice, 0, 100, 0)
	seedProfile(t, db, bob, 0, 100, 0)

	item := seedItem(t, db, "swap-avatar", models.ItemTypeAvatar, 10)
	entry := seedInventory(t, db, alice, item.ID)
	// Equip it so we can verify equip state does not travel.
	if err := db.Model(entry).Update("is_equipped", true).Error; err != nil {
		t.Fatalf("equip: %v", err)
	}

	trade, err := s.CreateTrade(alice, bob,
		models.TradeOffer{ItemIDs: []string{entry.ID}},
		models.TradeOffer{Coins: 30})
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if err := s.AcceptTrade(trade.ID, bob); err != nil {
		t.Fatalf("AcceptTrade: %v", err)
	}

	aliceProfile := getProfile(t, db, alice)
	bobProfile := getProfile(t, db, bob)
	if aliceProfile.Balance != 130 {
		t.Errorf("alice balance = %d, want 130", aliceProfile.Balance)
	}
	if bobProfile.Balance != 70 {
		t.Errorf("bob balance = %d, want 70", bobProfile.Balance)
	}
	if total := aliceProfile.Balance + bobProfile.Balance; total != 200 {
		t.Errorf("coin total = %d, want 200 (conserved)", total)
	}

	var moved models.UserInventory
	if err := db.Where("user_id = ? AND item_id = ?", bob, item.ID).First(&moved).Error; err != nil {
		t.Fatalf("item did not reach bob: %v", err)
	}
	if moved.IsEquipped {
		t.Error("equip state travelled with the item")
	}
	var aliceOwns int64
	db.Model(&models.UserInventory{}).Where("user_id = ? AND item_id = ?", alice, item.ID).Count(&aliceOwns)
	if aliceOwns != 0 {
		t.Error("alice still owns the traded item")
	}
}

func TestAcceptTradeOnlyRecipient(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()
	seedProfile(t, db, alice, 0, 100, 0)
	seedProfile(t, db, bob, 0, 100, 0)

	trade, err := s.CreateTrade(alice, bob,
		models.TradeOffer{Coins: 10}, models.TradeOffer{Coins: 20})
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if err := s.AcceptTrade(trade.ID, alice); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("requester accept err = %v, want ErrNotAuthorized", err)
	}
	if err := s.AcceptTrade(trade.ID, uuid.NewString()); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("stranger accept err = %v, want ErrNotAuthorized", err)
	}
}

func TestAcceptTradeInsufficientFundsLeavesTradePending(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()
	seedProfile(t, db, alice, 0, 5, 0) // cannot cover the 10 she offers
	seedProfile(t, db, bob, 0, 100, 0)

	trade, err := s.CreateTrade(alice, bob,
		models.TradeOffer{Coins: 10}, models.TradeOffer{Coins: 20})
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if err := s.AcceptTrade(trade.ID, bob); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	var reloaded models.Trade
	if err := db.First(&reloaded, "id = ?", trade.ID).Error; err != nil {
		t.Fatalf("reload trade: %v", err)
	}
	if reloaded.Status != models.TradeStatusPending {
		t.Errorf("status = %s, want pending", reloaded.Status)
	}
	if getProfile(t, db, alice).Balance != 5 || getProfile(t, db, bob).Balance != 100 {
		t.Error("failed accept touched a balance")
	}
}

func TestAcceptTradeRevalidatesOwnership(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()
	seedProfile(t, db, alice, 0, 100, 0)
	seedProfile(t, db, bob, 0, 100, 0)

	item := seedItem(t, db, "vanishing-avatar", models.ItemTypeAvatar, 10)
	entry := seedInventory(t, db, alice, item.ID)

	trade, err := s.CreateTrade(alice, bob,
		models.TradeOffer{ItemIDs: []string{entry.ID}},
		models.TradeOffer{Coins: 10})
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	// The item leaves alice's inventory before acceptance.
	if err := db.Unscoped().Delete(entry).Error; err != nil {
		t.Fatalf("remove entry: %v", err)
	}

	if err := s.AcceptTrade(trade.ID, bob); !errors.Is(err, ErrItemNotOwned) {
		t.Fatalf("err = %v, want ErrItemNotOwned", err)
	}
}

func TestRejectTradeEitherParty(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()

	for _, actor := range []string{alice, bob} {
		trade, err := s.CreateTrade(alice, bob,
			models.TradeOffer{Coins: 10}, models.TradeOffer{Coins: 20})
		if err != nil {
			t.Fatalf("CreateTrade: %v", err)
		}
		if err := s.RejectTrade(trade.ID, actor); err != nil {
			t.Fatalf("RejectTrade by %s: %v", actor, err)
		}
		var reloaded models.Trade
		db.First(&reloaded, "id = ?", trade.ID)
		if reloaded.Status != models.TradeStatusRejected {
			t.Errorf("status = %s, want rejected", reloaded.Status)
		}
	}
}

func TestTradeTerminalStatesAreFinal(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob := uuid.NewString(), uuid.NewString()
	seedProfile(t, db, alice, 0, 100, 0)
	seedProfile(t, db, bob, 0, 100, 0)

	trade, err := s.CreateTrade(alice, bob,
		models.TradeOffer{Coins: 10}, models.TradeOffer{Coins: 20})
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}
	if err := s.RejectTrade(trade.ID, bob); err != nil {
		t.Fatalf("RejectTrade: %v", err)
	}

	if err := s.AcceptTrade(trade.ID, bob); !errors.Is(err, ErrTradeNotPending) {
		t.Errorf("accept after reject err = %v, want ErrTradeNotPending", err)
	}
	if err := s.RejectTrade(trade.ID, alice); !errors.Is(err, ErrTradeNotPending) {
		t.Errorf("double reject err = %v, want ErrTradeNotPending", err)
	}
}

func TestListTradesBothDirections(t *testing.T) {
	db := newTestDB(t)
	s := NewTradeService(db)
	alice, bob, carol := uuid.NewString(), uuid.NewString(), uuid.NewString()

	if _, err := s.CreateTrade(alice, bob, models.TradeOffer{Coins: 1}, models.TradeOffer{Coins: 1}); err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}
	if _, err := s.CreateTrade(carol, alice, models.TradeOffer{Coins: 1}, models.TradeOffer{Coins: 1}); err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	trades, err := s.ListTrades(alice)
	if err != nil {
		t.Fatalf("ListTrades: %v", err)
	}
	if len(trades) != 2 {
		t.Errorf("trade count = %d, want 2", len(trades))
	}
}
