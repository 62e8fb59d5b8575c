package services

import (
	"testing"
	"time"

	"lifequest-system/models"

	"github.com/google/uuid"
)

func TestCalculateRewardsBase(t *testing.T) {
	cases := []struct {
		difficulty int
		xp, coins  int64
	}{
		{1, 10, 5},
		{2, 15, 10},
		{3, 25, 20},
	}
	for _, c := range cases {
		xp, coins := CalculateRewards(c.difficulty, nil)
		if xp != c.xp || coins != c.coins {
			t.Errorf("CalculateRewards(%d) = (%d, %d), want (%d, %d)",
				c.difficulty, xp, coins, c.xp, c.coins)
		}
	}
}

func TestCalculateRewardsWithBoosts(t *testing.T) {
	multipliers := map[models.BoostType]float64{
		models.BoostTypeXP: 2.0,
	}
	xp, coins := CalculateRewards(2, multipliers)
	if xp != 30 {
		t.Errorf("boosted xp = %d, want 30", xp)
	}
	if coins != 10 {
		t.Errorf("coins should be unaffected by xp boost, got %d", coins)
	}

	multipliers[models.BoostTypeMoney] = 1.5
	_, coins = CalculateRewards(2, multipliers)
	if coins != 15 {
		t.Errorf("money-boosted coins = %d, want 15", coins)
	}
}

func TestCalculateRewardsFloorsFractions(t *testing.T) {
	multipliers := map[models.BoostType]float64{
		models.BoostTypeMoney: 1.5,
	}
	// 5 * 1.5 = 7.5 → 7
	_, coins := CalculateRewards(1, multipliers)
	if coins != 7 {
		t.Errorf("coins = %d, want 7 (floored)", coins)
	}
}

func TestActiveMultipliersLatestWins(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.NewString()

	weak := seedBoostItem(t, db, "xp-boost-weak", models.BoostTypeXP, 1.5, 60)
	strong := seedBoostItem(t, db, "xp-boost-strong", models.BoostTypeXP, 3.0, 60)

	now := time.Now()
	for i, item := range []*models.ShopItem{weak, strong} {
		boost := models.UserBoost{
			ID:        uuid.NewString(),
			UserID:    userID,
			ItemID:    item.ID,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := db.Create(&boost).Error; err != nil {
			t.Fatalf("create boost: %v", err)
		}
	}

	multipliers, err := ActiveMultipliers(db, userID)
	if err != nil {
		t.Fatalf("ActiveMultipliers: %v", err)
	}
	if got := multipliers[models.BoostTypeXP]; got != 3.0 {
		t.Errorf("multiplier = %v, want 3.0 (most recent activation wins)", got)
	}
}

func TestActiveMultipliersIgnoresExpired(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.NewString()

	item := seedBoostItem(t, db, "xp-boost", models.BoostTypeXP, 2.0, 60)
	boost := models.UserBoost{
		ID:        uuid.NewString(),
		UserID:    userID,
		ItemID:    item.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&boost).Error; err != nil {
		t.Fatalf("create boost: %v", err)
	}

	multipliers, err := ActiveMultipliers(db, userID)
	if err != nil {
		t.Fatalf("ActiveMultipliers: %v", err)
	}
	if len(multipliers) != 0 {
		t.Errorf("expected no active multipliers, got %v", multipliers)
	}
}
