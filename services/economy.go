package services

import (
	"errors"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row lock on dialects that support it. SQLite (used
// by the test suite) serializes writers on its own and rejects the
// FOR UPDATE syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LockProfile fetches the user's profile FOR UPDATE inside the
// caller's transaction, creating it on first touch. Every balance or
// XP mutation must go through a profile obtained here so concurrent
// operations on the same user serialize on the row lock.
func LockProfile(tx *gorm.DB, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := forUpdate(tx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{ID: uuid.NewString(), UserID: userID}
		if err := tx.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreditProfile adds XP and/or coins to an already-locked profile.
func CreditProfile(tx *gorm.DB, profile *models.UserProfile, xp, coins int64) error {
	profile.XP += xp
	profile.Balance += coins
	return tx.Save(profile).Error
}

// DebitBalance withdraws coins from the regular balance. The check
// happens before any mutation: on ErrInsufficientFunds the profile is
// untouched.
func DebitBalance(tx *gorm.DB, profile *models.UserProfile, amount int64) error {
	if profile.Balance < amount {
		return ErrInsufficientFunds
	}
	profile.Balance -= amount
	return tx.Save(profile).Error
}

// DebitDonationBalance withdraws from the premium currency balance.
func DebitDonationBalance(tx *gorm.DB, profile *models.UserProfile, amount int64) error {
	if profile.DonationBalance < amount {
		return ErrInsufficientFunds
	}
	profile.DonationBalance -= amount
	return tx.Save(profile).Error
}
