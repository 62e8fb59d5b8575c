package services

import (
	"errors"
	"log"
	"time"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakBonus is the one-off reward paid when the streak counter hits
// a milestone.
type StreakBonus struct {
	XP    int64
	Coins int64
}

// StreakMilestones maps streak day counts to bonuses. Passed into the
// service explicitly so tests can swap in alternate tables.
type StreakMilestones map[int]StreakBonus

var DefaultStreakMilestones = StreakMilestones{
	7:   {XP: 100, Coins: 100},
	30:  {XP: 200, Coins: 200},
	100: {XP: 500, Coins: 1000},
	365: {XP: 1000, Coins: 2000},
}

// StreakService runs the per-user daily-activity state machine.
type StreakService struct {
	DB           *gorm.DB
	Milestones   StreakMilestones
	Achievements *AchievementService
}

func NewStreakService(db *gorm.DB, milestones StreakMilestones, achievements *AchievementService) *StreakService {
	return &StreakService{DB: db, Milestones: milestones, Achievements: achievements}
}

func getOrCreateStreak(tx *gorm.DB, userID string) (*models.UserStreak, error) {
	var streak models.UserStreak
	err := tx.Where("user_id = ?", userID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = models.UserStreak{ID: uuid.NewString(), UserID: userID}
		if err := tx.Create(&streak).Error; err != nil {
			return nil, err
		}
		return &streak, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IncreaseStreak advances the streak for one qualifying action today.
// First-ever activity starts the streak at 1; a gap of two or more
// days resets it to 0; exactly one day increments it; a second action
// on the same day is a no-op. Milestone bonuses are paid every time
// the counter passes through a configured value, and the result is
// always reported to the achievement engine. Runs on the caller's
// transaction so streak, bonus and profile move as one unit.
func (s *StreakService) IncreaseStreak(tx *gorm.DB, userID string) error {
	streak, err := getOrCreateStreak(tx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := dateOf(now)
	yesterday := today.AddDate(0, 0, -1)

	switch {
	case streak.LastActive == nil:
		streak.CurrentStreak = 1
		if streak.MaxStreak < 1 {
			streak.MaxStreak = 1
		}
		streak.LastActive = &now
	case dateOf(*streak.LastActive).Before(yesterday):
		// Gap of 2+ days: the streak is broken.
		streak.CurrentStreak = 0
		streak.LastActive = &now
	case dateOf(*streak.LastActive).Equal(yesterday):
		streak.CurrentStreak++
		if streak.CurrentStreak > streak.MaxStreak {
			streak.MaxStreak = streak.CurrentStreak
		}
		streak.LastActive = &now
	default:
		// Already credited today.
	}

	if err := tx.Save(streak).Error; err != nil {
		return err
	}

	if bonus, ok := s.Milestones[streak.CurrentStreak]; ok {
		profile, err := LockProfile(tx, userID)
		if err != nil {
			return err
		}
		if err := CreditProfile(tx, profile, bonus.XP, bonus.Coins); err != nil {
			return err
		}
		log.Printf("🔥 Streak milestone %d reached: %s (+%d xp, +%d coins)",
			streak.CurrentStreak, userID, bonus.XP, bonus.Coins)
	}

	return s.Achievements.CheckAchievements(tx, userID, TriggerStreakUpdated,
		map[string]int64{"streak": int64(streak.CurrentStreak)})
}

// GetStreak returns the user's streak, creating it on first access.
func (s *StreakService) GetStreak(userID string) (*models.UserStreak, error) {
	var streak *models.UserStreak
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		streak, err = getOrCreateStreak(tx, userID)
		return err
	})
	return streak, err
}
