package services

import (
	"errors"
	"log"
	"time"

	"lifequest-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ShopService owns the catalog, purchases and the equip/apply
// semantics of the inventory.
type ShopService struct {
	DB           *gorm.DB
	Progress     *ProgressService
	Achievements *AchievementService
}

func NewShopService(db *gorm.DB, progress *ProgressService, achievements *AchievementService) *ShopService {
	return &ShopService{DB: db, Progress: progress, Achievements: achievements}
}

// CreateItem adds a catalog entry (admin). The slug is derived from
// the name.
func (s *ShopService) CreateItem(item *models.ShopItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Slug = slug.Make(item.Name)
	return s.DB.Create(item).Error
}

// ListItems returns the active catalog, optionally filtered by type.
func (s *ShopService) ListItems(itemType string) ([]models.ShopItem, error) {
	query := s.DB.Where("is_active = ?", true)
	if itemType != "" {
		query = query.Where("type = ?", itemType)
	}
	var items []models.ShopItem
	err := query.Order("price ASC").Find(&items).Error
	return items, err
}

// BuyItem debits the correct balance and creates the ownership
// record in one transaction. Donation-only items charge the premium
// balance, everything else the coin balance. The purchase bumps the
// items_bought statistic and re-checks the total_purchases trigger
// with the user's new inventory count.
func (s *ShopService) BuyItem(userID, itemID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.ShopItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}
		if !item.IsActive {
			return ErrItemUnavailable
		}

		var owned int64
		if err := tx.Model(&models.UserInventory{}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwned
		}

		profile, err := LockProfile(tx, userID)
		if err != nil {
			return err
		}
		if item.IsDonationOnly {
			err = DebitDonationBalance(tx, profile, item.Price)
		} else {
			err = DebitBalance(tx, profile, item.Price)
		}
		if err != nil {
			return err
		}

		entry := models.UserInventory{
			ID:     uuid.NewString(),
			UserID: userID,
			ItemID: item.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if _, err := s.Progress.UpdateStat(tx, userID, StatItemsBought); err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.UserInventory{}).
			Where("user_id = ?", userID).
			Count(&total).Error; err != nil {
			return err
		}
		return s.Achievements.CheckAchievements(tx, userID, TriggerTotalPurchases,
			map[string]int64{"total_purchases": total})
	})
}

// ListInventory returns the user's ownership records with items
// preloaded.
func (s *ShopService) ListInventory(userID string) ([]models.UserInventory, error) {
	var entries []models.UserInventory
	err := s.DB.Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// ApplyItem applies an owned inventory entry to the user. Equippable
// types (avatar, background, icon) enforce the single-equip
// invariant: everything of that type is unequipped before the target
// is equipped. Boosts activate a timed UserBoost instead and never
// touch the equip flag.
func (s *ShopService) ApplyItem(userID, entryID string) (*models.ShopItem, error) {
	var applied *models.ShopItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.UserInventory
		err := tx.Preload("Item").
			Where("id = ? AND user_id = ?", entryID, userID).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotOwned
		}
		if err != nil {
			return err
		}
		applied = &entry.Item

		if entry.Item.IsBoost() {
			return s.activateBoost(tx, userID, &entry.Item)
		}

		var typeIDs []string
		if err := tx.Model(&models.ShopItem{}).
			Where("type = ?", entry.Item.Type).
			Pluck("id", &typeIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.UserInventory{}).
			Where("user_id = ? AND item_id IN ?", userID, typeIDs).
			Update("is_equipped", false).Error; err != nil {
			return err
		}

		entry.IsEquipped = true
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		_, err = s.Progress.UpdateStat(tx, userID, StatItemsEquipped)
		return err
	})
	return applied, err
}

// activateBoost starts the boost timer. Re-activating an identical
// boost that has not expired yet is rejected; the duration does not
// extend and the multiplier does not stack.
func (s *ShopService) activateBoost(tx *gorm.DB, userID string, item *models.ShopItem) error {
	var active int64
	if err := tx.Model(&models.UserBoost{}).
		Where("user_id = ? AND item_id = ? AND expires_at > ?", userID, item.ID, time.Now()).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return ErrBoostAlreadyActive
	}

	minutes := 0
	if item.DurationMinutes != nil {
		minutes = *item.DurationMinutes
	}
	boost := models.UserBoost{
		ID:        uuid.NewString(),
		UserID:    userID,
		ItemID:    item.ID,
		ExpiresAt: time.Now().Add(time.Duration(minutes) * time.Minute),
	}
	if err := tx.Create(&boost).Error; err != nil {
		return err
	}
	log.Printf("⚡ Boost activated: %s → %s until %s", item.Slug, userID, boost.ExpiresAt.Format(time.RFC3339))
	return nil
}
