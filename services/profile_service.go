package services

import (
	"lifequest-system/models"

	"gorm.io/gorm"
)

// ProfileService reads the central progression record. Mutations go
// through the economy helpers inside the owning operations; this
// service only serves the profile surface.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// ProfileView is the profile plus its computed level.
type ProfileView struct {
	models.UserProfile
	Level int `json:"level"`
}

// GetProfile returns the user's profile, creating it on first access.
func (s *ProfileService) GetProfile(userID string) (*ProfileView, error) {
	var profile *models.UserProfile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		profile, err = LockProfile(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ProfileView{UserProfile: *profile, Level: GetLevelByXP(profile.XP)}, nil
}

// GetProfileByID looks up another user's profile by row id; no
// lazy creation here, unknown ids are a not-found.
func (s *ProfileService) GetProfileByID(profileID string) (*ProfileView, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	return &ProfileView{UserProfile: profile, Level: GetLevelByXP(profile.XP)}, nil
}
