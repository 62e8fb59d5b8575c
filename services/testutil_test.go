package services

import (
	"fmt"
	"testing"

	"lifequest-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database and migrates the full
// schema. Each test gets its own database; shared cache keeps it alive
// across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Statistic{},
		&models.UserStreak{},
		&models.ShopItem{},
		&models.UserInventory{},
		&models.UserBoost{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Trade{},
		&models.UserDailyRoulette{},
		&models.Todo{},
		&models.Dream{},
		&models.DreamImage{},
		&models.DreamLike{},
		&models.FriendRelation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedProfile creates a profile with the given balances.
func seedProfile(t *testing.T, db *gorm.DB, userID string, xp, balance, donation int64) *models.UserProfile {
	t.Helper()
	profile := models.UserProfile{
		ID:              uuid.NewString(),
		UserID:          userID,
		XP:              xp,
		Balance:         balance,
		DonationBalance: donation,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return &profile
}

// seedItem creates an active catalog item.
func seedItem(t *testing.T, db *gorm.DB, name string, itemType models.ItemType, price int64) *models.ShopItem {
	t.Helper()
	item := models.ShopItem{
		ID:       uuid.NewString(),
		Name:     name,
		Slug:     name,
		Type:     itemType,
		Price:    price,
		IsActive: true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return &item
}

// seedBoostItem creates an active boost catalog item.
func seedBoostItem(t *testing.T, db *gorm.DB, name string, boostType models.BoostType, multiplier float64, minutes int) *models.ShopItem {
	t.Helper()
	item := models.ShopItem{
		ID:              uuid.NewString(),
		Name:            name,
		Slug:            name,
		Type:            models.ItemTypeBoost,
		Price:           50,
		IsActive:        true,
		BoostType:       &boostType,
		Multiplier:      &multiplier,
		DurationMinutes: &minutes,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed boost item: %v", err)
	}
	return &item
}

// seedInventory gives the user ownership of an item.
func seedInventory(t *testing.T, db *gorm.DB, userID, itemID string) *models.UserInventory {
	t.Helper()
	entry := models.UserInventory{
		ID:     uuid.NewString(),
		UserID: userID,
		ItemID: itemID,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return &entry
}

func getProfile(t *testing.T, db *gorm.DB, userID string) *models.UserProfile {
	t.Helper()
	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		t.Fatalf("get profile: %v", err)
	}
	return &profile
}
