package services

import (
	"errors"
	"fmt"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statistic keys and the achievement trigger each one fans out to.
const (
	StatTasksCompleted  = "tasks_completed"
	StatTasksFailed     = "tasks_failed"
	StatItemsBought     = "items_bought"
	StatItemsEquipped   = "items_equipped"
	StatDreamsCompleted = "dreams_completed"
)

var statTriggers = map[string]string{
	StatTasksCompleted:  TriggerTaskCompleted,
	StatTasksFailed:     TriggerTaskFailed,
	StatItemsBought:     TriggerItemBought,
	StatItemsEquipped:   TriggerItemEquipped,
	StatDreamsCompleted: TriggerDreamCompleted,
}

// ProgressService bumps per-user activity counters and forwards the
// new values to the achievement engine.
type ProgressService struct {
	DB           *gorm.DB
	Achievements *AchievementService
}

func NewProgressService(db *gorm.DB, achievements *AchievementService) *ProgressService {
	return &ProgressService{DB: db, Achievements: achievements}
}

func getOrCreateStatistic(tx *gorm.DB, userID string) (*models.Statistic, error) {
	var stat models.Statistic
	err := tx.Where("user_id = ?", userID).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stat = models.Statistic{ID: uuid.NewString(), UserID: userID}
		if err := tx.Create(&stat).Error; err != nil {
			return nil, err
		}
		return &stat, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// UpdateStat increments one counter and checks achievements with the
// new value as payload. Runs on the caller's transaction.
func (s *ProgressService) UpdateStat(tx *gorm.DB, userID, key string) (int64, error) {
	trigger, ok := statTriggers[key]
	if !ok {
		return 0, fmt.Errorf("unknown statistic key %q", key)
	}

	stat, err := getOrCreateStatistic(tx, userID)
	if err != nil {
		return 0, err
	}

	var value int64
	switch key {
	case StatTasksCompleted:
		stat.TasksCompleted++
		value = stat.TasksCompleted
	case StatTasksFailed:
		stat.TasksFailed++
		value = stat.TasksFailed
	case StatItemsBought:
		stat.ItemsBought++
		value = stat.ItemsBought
	case StatItemsEquipped:
		stat.ItemsEquipped++
		value = stat.ItemsEquipped
	case StatDreamsCompleted:
		stat.DreamsCompleted++
		value = stat.DreamsCompleted
	}

	if err := tx.Save(stat).Error; err != nil {
		return 0, err
	}

	if err := s.Achievements.CheckAchievements(tx, userID, trigger, map[string]int64{key: value}); err != nil {
		return 0, err
	}
	return value, nil
}

// GetStatistic returns the user's counters, creating the row when the
// user has no activity yet.
func (s *ProgressService) GetStatistic(userID string) (*models.Statistic, error) {
	var stat *models.Statistic
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stat, err = getOrCreateStatistic(tx, userID)
		return err
	})
	return stat, err
}
