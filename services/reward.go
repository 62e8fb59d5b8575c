package services

import (
	"time"

	"lifequest-system/models"

	"gorm.io/gorm"
)

// Base reward tables keyed by task difficulty (1..3).
var (
	xpByDifficulty = map[int]int64{
		1: 10,
		2: 15,
		3: 25,
	}
	coinsByDifficulty = map[int]int64{
		1: 5,
		2: 10,
		3: 20,
	}
)

// ActiveMultipliers collects the user's unexpired boosts into one
// multiplier per boost type. When several boosts of the same type are
// active the most recently activated one wins — multipliers override,
// they do not stack.
func ActiveMultipliers(tx *gorm.DB, userID string) (map[models.BoostType]float64, error) {
	var boosts []models.UserBoost
	err := tx.Preload("Item").
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at ASC").
		Find(&boosts).Error
	if err != nil {
		return nil, err
	}

	multipliers := make(map[models.BoostType]float64)
	for _, b := range boosts {
		if b.Item.BoostType == nil || b.Item.Multiplier == nil {
			continue // malformed catalog entry, skip rather than zero the reward
		}
		multipliers[*b.Item.BoostType] = *b.Item.Multiplier
	}
	return multipliers, nil
}

// CalculateRewards maps difficulty to (xp, coins) and applies the
// active boost multipliers: "xp" boosts scale XP, "money" boosts scale
// coins. Results are floored to whole units.
func CalculateRewards(difficulty int, multipliers map[models.BoostType]float64) (int64, int64) {
	xp := float64(xpByDifficulty[difficulty])
	coins := float64(coinsByDifficulty[difficulty])

	if m, ok := multipliers[models.BoostTypeXP]; ok {
		xp *= m
	}
	if m, ok := multipliers[models.BoostTypeMoney]; ok {
		coins *= m
	}
	return int64(xp), int64(coins)
}
