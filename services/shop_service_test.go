package services

import (
	"errors"
	"testing"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newShopService(db *gorm.DB) *ShopService {
	achievements := NewAchievementService(db)
	return NewShopService(db, NewProgressService(db, achievements), achievements)
}

func TestBuyItemDebitsAndGrantsOwnership(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()
	seedProfile(t, db, userID, 0, 100, 0)
	item := seedItem(t, db, "red-avatar", models.ItemTypeAvatar, 40)

	if err := s.BuyItem(userID, item.ID); err != nil {
		t.Fatalf("BuyItem: %v", err)
	}

	if got := getProfile(t, db, userID); got.Balance != 60 {
		t.Errorf("balance = %d, want 60", got.Balance)
	}
	entries, err := s.ListInventory(userID)
	if err != nil {
		t.Fatalf("ListInventory: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemID != item.ID {
		t.Errorf("inventory = %+v, want one entry for %s", entries, item.ID)
	}

	stat := &models.Statistic{}
	if err := db.Where("user_id = ?", userID).First(stat).Error; err != nil {
		t.Fatalf("get statistic: %v", err)
	}
	if stat.ItemsBought != 1 {
		t.Errorf("items_bought = %d, want 1", stat.ItemsBought)
	}
}

func TestBuyItemInsufficientFundsRollsBack(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()
	seedProfile(t, db, userID, 0, 10, 0)
	item := seedItem(t, db, "pricey-avatar", models.ItemTypeAvatar, 40)

	err := s.BuyItem(userID, item.ID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	if got := getProfile(t, db, userID); got.Balance != 10 {
		t.Errorf("balance = %d, want 10 (unchanged)", got.Balance)
	}
	var owned int64
	db.Model(&models.UserInventory{}).Where("user_id = ?", userID).Count(&owned)
	if owned != 0 {
		t.Errorf("inventory count = %d, want 0", owned)
	}
}

func TestBuyItemDonationOnlyUsesPremiumBalance(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()
	seedProfile(t, db, userID, 0, 100, 50)

	item := seedItem(t, db, "premium-bg", models.ItemTypeBackground, 30)
	if err := db.Model(item).Update("is_donation_only", true).Error; err != nil {
		t.Fatalf("mark donation only: %v", err)
	}

	if err := s.BuyItem(userID, item.ID); err != nil {
		t.Fatalf("BuyItem: %v", err)
	}
	got := getProfile(t, db, userID)
	if got.Balance != 100 {
		t.Errorf("coin balance = %d, want 100 (untouched)", got.Balance)
	}
	if got.DonationBalance != 20 {
		t.Errorf("donation balance = %d, want 20", got.DonationBalance)
	}
}

func TestBuyItemDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()
	seedProfile(t, db, userID, 0, 200, 0)
	item := seedItem(t, db, "blue-avatar", models.ItemTypeAvatar, 40)

	if err := s.BuyItem(userID, item.ID); err != nil {
		t.Fatalf("first BuyItem: %v", err)
	}
	err := s.BuyItem(userID, item.ID)
	if !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("err = %v, want ErrAlreadyOwned", err)
	}
	if got := getProfile(t, db, userID); got.Balance != 160 {
		t.Errorf("balance = %d, want 160 (charged once)", got.Balance)
	}
}

func TestBuyItemInactiveRejected(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()
	seedProfile(t, db, userID, 0, 200, 0)

	item := seedItem(t, db, "retired-avatar", models.ItemTypeAvatar, 40)
	if err := db.Model(item).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if err := s.BuyItem(userID, item.ID); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("err = %v, want ErrItemUnavailable", err)
	}
}

func TestApplyItemEquipExclusivityPerType(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()

	first := seedItem(t, db, "avatar-one", models.ItemTypeAvatar, 10)
	second := seedItem(t, db, "avatar-two", models.ItemTypeAvatar, 10)
	background := seedItem(t, db, "bg-one", models.ItemTypeBackground, 10)

	firstEntry := seedInventory(t, db, userID, first.ID)
	secondEntry := seedInventory(t, db, userID, second.ID)
	bgEntry := seedInventory(t, db, userID, background.ID)

	for _, entry := range []*models.UserInventory{firstEntry, bgEntry, secondEntry} {
		if _, err := s.ApplyItem(userID, entry.ID); err != nil {
			t.Fatalf("ApplyItem(%s): %v", entry.ID, err)
		}
	}

	var equipped []models.UserInventory
	if err := db.Where("user_id = ? AND is_equipped = ?", userID, true).Find(&equipped).Error; err != nil {
		t.Fatalf("query equipped: %v", err)
	}
	equippedItems := map[string]bool{}
	for _, e := range equipped {
		equippedItems[e.ItemID] = true
	}
	if len(equipped) != 2 || !equippedItems[second.ID] || !equippedItems[background.ID] {
		t.Errorf("equipped = %v, want exactly {avatar-two, bg-one}", equippedItems)
	}
}

func TestApplyItemNotOwned(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)

	_, err := s.ApplyItem(uuid.NewString(), uuid.NewString())
	if !errors.Is(err, ErrItemNotOwned) {
		t.Fatalf("err = %v, want ErrItemNotOwned", err)
	}
}

func TestApplyBoostActivatesTimer(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()

	item := seedBoostItem(t, db, "xp-double", models.BoostTypeXP, 2.0, 60)
	entry := seedInventory(t, db, userID, item.ID)

	if _, err := s.ApplyItem(userID, entry.ID); err != nil {
		t.Fatalf("ApplyItem: %v", err)
	}

	multipliers, err := ActiveMultipliers(db, userID)
	if err != nil {
		t.Fatalf("ActiveMultipliers: %v", err)
	}
	if got := multipliers[models.BoostTypeXP]; got != 2.0 {
		t.Errorf("multiplier = %v, want 2.0", got)
	}

	// Boost activation must not flip the equip flag.
	var after models.UserInventory
	if err := db.First(&after, "id = ?", entry.ID).Error; err != nil {
		t.Fatalf("reload entry: %v", err)
	}
	if after.IsEquipped {
		t.Error("boost activation set is_equipped")
	}
}

func TestApplyBoostAlreadyActiveRejected(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()

	item := seedBoostItem(t, db, "xp-double", models.BoostTypeXP, 2.0, 60)
	entry := seedInventory(t, db, userID, item.ID)

	if _, err := s.ApplyItem(userID, entry.ID); err != nil {
		t.Fatalf("first activation: %v", err)
	}
	if _, err := s.ApplyItem(userID, entry.ID); !errors.Is(err, ErrBoostAlreadyActive) {
		t.Fatalf("err = %v, want ErrBoostAlreadyActive", err)
	}
}

func TestBuyItemFiresTotalPurchasesTrigger(t *testing.T) {
	db := newTestDB(t)
	s := newShopService(db)
	userID := uuid.NewString()
	seedProfile(t, db, userID, 0, 1000, 0)

	a := seedAchievement(t, db, TriggerTotalPurchases, map[string]int64{"total_purchases": 2}, 0, 0, nil)

	first := seedItem(t, db, "item-one", models.ItemTypeIcon, 10)
	second := seedItem(t, db, "item-two", models.ItemTypeIcon, 10)

	if err := s.BuyItem(userID, first.ID); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	if got := countEarned(t, db, userID, a.ID); got != 0 {
		t.Errorf("earned after one purchase: count = %d, want 0", got)
	}

	if err := s.BuyItem(userID, second.ID); err != nil {
		t.Fatalf("second buy: %v", err)
	}
	if got := countEarned(t, db, userID, a.ID); got != 1 {
		t.Errorf("earned after two purchases: count = %d, want 1", got)
	}
}
