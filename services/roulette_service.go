package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RouletteRewardCoins = "coins"
	RouletteRewardItem  = "item"

	spinCooldown = 24 * time.Hour
)

// RouletteReward is one slot on the wheel. Weights are relative, not
// normalized; item rewards reference catalog entries by slug. The
// weight is hidden from API responses.
type RouletteReward struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Amount   int64   `json:"amount,omitempty"`
	ItemSlug string  `json:"item_slug,omitempty"`
	Weight   float64 `json:"-"`
}

// DefaultDailyRewards is the production wheel.
var DefaultDailyRewards = []RouletteReward{
	{Name: "15 coins", Type: RouletteRewardCoins, Amount: 15, Weight: 100},
	{Name: "50 coins", Type: RouletteRewardCoins, Amount: 50, Weight: 50},
	{Name: "100 coins", Type: RouletteRewardCoins, Amount: 100, Weight: 10},
	{Name: "200 coins", Type: RouletteRewardCoins, Amount: 200, Weight: 5},
	{Name: "500 coins", Type: RouletteRewardCoins, Amount: 500, Weight: 3},
	{Name: "1000 coins", Type: RouletteRewardCoins, Amount: 1000, Weight: 1},
	{Name: "⭐ Wishful Star: Icon", Type: RouletteRewardItem, ItemSlug: "wishful-star-icon", Weight: 0.5},
}

// RouletteService draws one weighted reward per user per 24 hours.
type RouletteService struct {
	DB      *gorm.DB
	Rewards []RouletteReward
}

func NewRouletteService(db *gorm.DB, rewards []RouletteReward) *RouletteService {
	return &RouletteService{DB: db, Rewards: rewards}
}

// RewardsList exposes the wheel without weights.
func (s *RouletteService) RewardsList() []RouletteReward {
	return s.Rewards
}

// spinWheel draws one reward with probability weight/total.
func (s *RouletteService) spinWheel() RouletteReward {
	total := 0.0
	for _, r := range s.Rewards {
		total += r.Weight
	}
	roll := rand.Float64() * total
	for _, r := range s.Rewards {
		roll -= r.Weight
		if roll < 0 {
			return r
		}
	}
	return s.Rewards[len(s.Rewards)-1] // float rounding fallback
}

func getOrCreateDailyRoulette(tx *gorm.DB, userID string) (*models.UserDailyRoulette, error) {
	var state models.UserDailyRoulette
	err := forUpdate(tx).Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = models.UserDailyRoulette{ID: uuid.NewString(), UserID: userID}
		if err := tx.Create(&state).Error; err != nil {
			return nil, err
		}
		return &state, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Spin draws and pays out one reward, advancing the cooldown in the
// same transaction. A reward referencing an unknown catalog item or
// carrying an unknown type means a broken wheel configuration and
// aborts the spin without consuming it.
func (s *RouletteService) Spin(userID string) (*RouletteReward, error) {
	var won RouletteReward
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := getOrCreateDailyRoulette(tx, userID)
		if err != nil {
			return err
		}
		now := time.Now()
		if state.LastSpin != nil && now.Sub(*state.LastSpin) < spinCooldown {
			return ErrSpinNotAvailable
		}

		won = s.spinWheel()
		switch won.Type {
		case RouletteRewardCoins:
			profile, err := LockProfile(tx, userID)
			if err != nil {
				return err
			}
			if err := CreditProfile(tx, profile, 0, won.Amount); err != nil {
				return err
			}
		case RouletteRewardItem:
			var item models.ShopItem
			err := tx.Where("slug = ?", won.ItemSlug).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %q", ErrRewardItemMissing, won.ItemSlug)
			}
			if err != nil {
				return err
			}
			var owned int64
			if err := tx.Model(&models.UserInventory{}).
				Where("user_id = ? AND item_id = ?", userID, item.ID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned == 0 {
				entry := models.UserInventory{
					ID:     uuid.NewString(),
					UserID: userID,
					ItemID: item.ID,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownRewardType, won.Type)
		}

		state.LastSpin = &now
		return tx.Save(state).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🎰 Roulette: %s won %q", userID, won.Name)
	return &won, nil
}
