package services

import (
	"errors"
	"fmt"
	"log"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trigger names consumed by the achievement engine. Anything else is
// a programming error on the emitting side.
const (
	TriggerStreakUpdated  = "streak_updated"
	TriggerTaskCompleted  = "task_completed"
	TriggerTaskFailed     = "task_failed"
	TriggerDreamCompleted = "dream_completed"
	TriggerItemBought     = "item_bought"
	TriggerItemEquipped   = "item_equipped"
	TriggerTotalPurchases = "total_purchases"
)

var validTriggers = map[string]bool{
	TriggerStreakUpdated:  true,
	TriggerTaskCompleted:  true,
	TriggerTaskFailed:     true,
	TriggerDreamCompleted: true,
	TriggerItemBought:     true,
	TriggerItemEquipped:   true,
	TriggerTotalPurchases: true,
}

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// CheckAchievements evaluates every achievement bound to trigger
// against the payload and marks newly satisfied ones as earned.
// Earning is idempotent per (user, achievement) and grants nothing by
// itself — rewards move on claim. Runs on the caller's transaction so
// the unlock commits or rolls back with the action that caused it.
func (s *AchievementService) CheckAchievements(tx *gorm.DB, userID, trigger string, payload map[string]int64) error {
	if !validTriggers[trigger] {
		return fmt.Errorf("%w: %q", ErrUnknownTrigger, trigger)
	}

	var achievements []models.Achievement
	if err := tx.Where("trigger_name = ?", trigger).Find(&achievements).Error; err != nil {
		return err
	}

	for _, a := range achievements {
		var count int64
		if err := tx.Model(&models.UserAchievement{}).
			Where("user_id = ? AND achievement_id = ?", userID, a.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue // already earned
		}
		if !meetsCondition(a.Condition, payload) {
			continue
		}

		earned := models.UserAchievement{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: a.ID,
		}
		if err := tx.Create(&earned).Error; err != nil {
			return err
		}
		log.Printf("🏆 Achievement earned: %s → %s", a.Code, userID)
	}
	return nil
}

// meetsCondition requires every condition metric to be present in the
// payload with a value >= its threshold. A missing metric fails the
// condition, it is not an error.
func meetsCondition(condition, payload map[string]int64) bool {
	for metric, required := range condition {
		actual, ok := payload[metric]
		if !ok || actual < required {
			return false
		}
	}
	return true
}

// ClaimAchievement pays out an earned achievement: XP and coins to
// the profile, reward items into the inventory, claim flag set — all
// in one transaction. Claiming something not earned, or already
// claimed, is a silent no-op so the endpoint stays idempotent.
func (s *AchievementService) ClaimAchievement(userID, achievementID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var earned models.UserAchievement
		err := tx.Where("user_id = ? AND achievement_id = ? AND is_claimed = ?", userID, achievementID, false).
			First(&earned).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var achievement models.Achievement
		if err := tx.First(&achievement, "id = ?", achievementID).Error; err != nil {
			return err
		}

		profile, err := LockProfile(tx, userID)
		if err != nil {
			return err
		}
		if err := CreditProfile(tx, profile, achievement.RewardXP, achievement.RewardCoins); err != nil {
			return err
		}

		for _, itemID := range achievement.RewardItemIDs {
			var owned int64
			if err := tx.Model(&models.UserInventory{}).
				Where("user_id = ? AND item_id = ?", userID, itemID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned > 0 {
				continue // reward item already in inventory, skip
			}
			entry := models.UserInventory{
				ID:     uuid.NewString(),
				UserID: userID,
				ItemID: itemID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		earned.IsClaimed = true
		return tx.Save(&earned).Error
	})
}
