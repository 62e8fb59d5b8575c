package services

import (
	"context"
	"errors"
	"log"

	"lifequest-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// DreamService owns dreams, their step todos and likes. Dream
// completion itself happens in TodoService when the last step is
// executed.
type DreamService struct {
	DB *gorm.DB
	AI *AIClient
}

func NewDreamService(db *gorm.DB, ai *AIClient) *DreamService {
	return &DreamService{DB: db, AI: ai}
}

// CreateDream stores a new dream; titles are unique per user.
func (s *DreamService) CreateDream(dream *models.Dream) error {
	if dream.ID == "" {
		dream.ID = uuid.NewString()
	}
	dream.Slug = slug.Make(dream.Title)
	if dream.Category == "" {
		dream.Category = models.DreamCategoryOther
	}
	dream.IsActive = true
	return s.DB.Create(dream).Error
}

// UpdateDream edits the owner's dream. The slug follows the title.
func (s *DreamService) UpdateDream(userID, dreamID string, title, description string, category models.DreamCategory, price int64, isPrivate bool) (*models.Dream, error) {
	var dream models.Dream
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", dreamID, userID).First(&dream).Error; err != nil {
			return err
		}
		dream.Title = title
		dream.Slug = slug.Make(title)
		dream.Description = description
		if category != "" {
			dream.Category = category
		}
		dream.Price = price
		dream.IsPrivate = isPrivate
		return tx.Save(&dream).Error
	})
	if err != nil {
		return nil, err
	}
	return &dream, nil
}

// DeleteDream removes the owner's dream together with its step todos
// and likes.
func (s *DreamService) DeleteDream(userID, dreamID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var dream models.Dream
		if err := tx.Where("id = ? AND user_id = ?", dreamID, userID).First(&dream).Error; err != nil {
			return err
		}
		if err := tx.Where("dream_id = ?", dreamID).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dream_id = ?", dreamID).Delete(&models.DreamLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dream_id = ?", dreamID).Delete(&models.DreamImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dream).Error
	})
}

// GetDream fetches a dream with images; private dreams are only
// visible to their owner.
func (s *DreamService) GetDream(viewerID, dreamID string) (*models.Dream, error) {
	var dream models.Dream
	if err := s.DB.Preload("Images").First(&dream, "id = ?", dreamID).Error; err != nil {
		return nil, err
	}
	if dream.IsPrivate && dream.UserID != viewerID {
		return nil, ErrNotAuthorized
	}
	return &dream, nil
}

// ListDreams returns the user's own dreams.
func (s *DreamService) ListDreams(userID string) ([]models.Dream, error) {
	var dreams []models.Dream
	err := s.DB.Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dreams).Error
	return dreams, err
}

// ToggleLike adds or removes the viewer's like. Liking twice is a
// toggle, never an error.
func (s *DreamService) ToggleLike(userID, dreamID string) (bool, error) {
	liked := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var like models.DreamLike
		err := tx.Where("user_id = ? AND dream_id = ?", userID, dreamID).First(&like).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			like = models.DreamLike{ID: uuid.NewString(), UserID: userID, DreamID: dreamID}
			liked = true
			return tx.Create(&like).Error
		}
		if err != nil {
			return err
		}
		return tx.Delete(&like).Error
	})
	return liked, err
}

// CountLikes returns the dream's like total.
func (s *DreamService) CountLikes(dreamID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.DreamLike{}).Where("dream_id = ?", dreamID).Count(&count).Error
	return count, err
}

// Progress returns the completed/total step ratio as a percentage,
// 0 when the dream has no steps yet.
func (s *DreamService) Progress(dreamID string) (float64, error) {
	var total, completed int64
	if err := s.DB.Model(&models.Todo{}).
		Where("dream_id = ? AND is_dream_step = ?", dreamID, true).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := s.DB.Model(&models.Todo{}).
		Where("dream_id = ? AND is_dream_step = ? AND is_completed = ?", dreamID, true, true).
		Count(&completed).Error; err != nil {
		return 0, err
	}
	return float64(completed) / float64(total) * 100, nil
}

// GenerateSteps asks the AI collaborator to break the dream into step
// suggestions. Best effort: an empty suggestion list is a valid
// outcome, never part of any consistency guarantee.
func (s *DreamService) GenerateSteps(ctx context.Context, userID, dreamID string) ([]DreamStep, error) {
	dream, err := s.GetDream(userID, dreamID)
	if err != nil {
		return nil, err
	}
	if dream.UserID != userID {
		return nil, ErrNotAuthorized
	}
	steps, err := s.AI.GenerateDreamSteps(ctx, dream.Title)
	if err != nil {
		log.Printf("[DreamAI] step generation failed for %s: %v", dreamID, err)
		return nil, err
	}
	return steps, nil
}

// CreateSteps persists accepted step suggestions as dream-step todos
// in one transaction.
func (s *DreamService) CreateSteps(userID, dreamID string, steps []DreamStep) error {
	var dream models.Dream
	if err := s.DB.First(&dream, "id = ? AND user_id = ?", dreamID, userID).Error; err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			difficulty := step.Difficulty
			if difficulty < 1 || difficulty > 3 {
				difficulty = 1
			}
			todo := models.Todo{
				ID:          uuid.NewString(),
				UserID:      userID,
				Title:       step.Text,
				Difficulty:  difficulty,
				IsDreamStep: true,
				DreamID:     &dream.ID,
			}
			if err := tx.Create(&todo).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
