package services

import (
	"log"
	"time"

	"lifequest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoService owns tasks and the reward flow that fires when one is
// executed.
type TodoService struct {
	DB       *gorm.DB
	Streaks  *StreakService
	Progress *ProgressService
}

func NewTodoService(db *gorm.DB, streaks *StreakService, progress *ProgressService) *TodoService {
	return &TodoService{DB: db, Streaks: streaks, Progress: progress}
}

// CreateTodo validates and stores a new task.
func (s *TodoService) CreateTodo(todo *models.Todo) error {
	if todo.Difficulty < 1 || todo.Difficulty > 3 {
		return ErrInvalidDifficulty
	}
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	return s.DB.Create(todo).Error
}

// ListTodos returns the user's tasks filtered by completion state.
func (s *TodoService) ListTodos(userID string, completed bool) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.DB.Where("user_id = ? AND is_completed = ?", userID, completed).
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

// GetTodo fetches one of the user's tasks.
func (s *TodoService) GetTodo(userID, todoID string) (*models.Todo, error) {
	var todo models.Todo
	err := s.DB.Where("id = ? AND user_id = ?", todoID, userID).First(&todo).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo edits a not-yet-completed task. Completed tasks are
// frozen; rewriting their difficulty after the payout would falsify
// the ledger.
func (s *TodoService) UpdateTodo(userID, todoID string, title, description string, deadline *time.Time, difficulty int) (*models.Todo, error) {
	if difficulty < 1 || difficulty > 3 {
		return nil, ErrInvalidDifficulty
	}
	var todo models.Todo
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", todoID, userID).First(&todo).Error; err != nil {
			return err
		}
		if todo.IsCompleted {
			return ErrTaskAlreadyCompleted
		}
		todo.Title = title
		todo.Description = description
		todo.Deadline = deadline
		todo.Difficulty = difficulty
		return tx.Save(&todo).Error
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo removes one of the user's tasks.
func (s *TodoService) DeleteTodo(userID, todoID string) error {
	return s.DB.Where("id = ? AND user_id = ?", todoID, userID).Delete(&models.Todo{}).Error
}

// ExecuteTask completes a task and pays its rewards: streak advance,
// boosted XP/coin credit, completion flags and the task_completed
// statistic move as one transaction. Returns the rewards actually
// granted. Executing a dream step that was the last one remaining
// also completes the dream.
func (s *TodoService) ExecuteTask(userID, todoID string) (int64, int64, error) {
	var xp, coins int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.Where("id = ? AND user_id = ?", todoID, userID).First(&todo).Error; err != nil {
			return err
		}
		if todo.IsCompleted {
			return ErrTaskAlreadyCompleted
		}

		if err := s.Streaks.IncreaseStreak(tx, userID); err != nil {
			return err
		}

		multipliers, err := ActiveMultipliers(tx, userID)
		if err != nil {
			return err
		}
		xp, coins = CalculateRewards(todo.Difficulty, multipliers)

		profile, err := LockProfile(tx, userID)
		if err != nil {
			return err
		}
		if err := CreditProfile(tx, profile, xp, coins); err != nil {
			return err
		}

		now := time.Now()
		todo.IsCompleted = true
		todo.ExecutedAt = &now
		todo.Deadline = nil
		if err := tx.Save(&todo).Error; err != nil {
			return err
		}

		if _, err := s.Progress.UpdateStat(tx, userID, StatTasksCompleted); err != nil {
			return err
		}

		if todo.IsDreamStep && todo.DreamID != nil {
			if err := s.completeDreamIfDone(tx, userID, *todo.DreamID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	log.Printf("✅ Task executed: %s → +%d xp, +%d coins (%s)", todoID, xp, coins, userID)
	return xp, coins, nil
}

// completeDreamIfDone flips the dream inactive once all of its steps
// are completed and counts it toward dreams_completed.
func (s *TodoService) completeDreamIfDone(tx *gorm.DB, userID, dreamID string) error {
	var remaining int64
	if err := tx.Model(&models.Todo{}).
		Where("dream_id = ? AND is_dream_step = ? AND is_completed = ?", dreamID, true, false).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}

	var dream models.Dream
	if err := tx.First(&dream, "id = ?", dreamID).Error; err != nil {
		return err
	}
	if !dream.IsActive {
		return nil // already achieved
	}
	dream.IsActive = false
	if err := tx.Save(&dream).Error; err != nil {
		return err
	}
	_, err := s.Progress.UpdateStat(tx, userID, StatDreamsCompleted)
	if err == nil {
		log.Printf("🌠 Dream achieved: %s (%s)", dream.Title, userID)
	}
	return err
}

// FailOverdueTodos marks every task past its deadline as failed and
// fires the task_failed trigger for each. Called by the background
// sweeper; one transaction per task so a single bad row cannot stall
// the sweep.
func (s *TodoService) FailOverdueTodos() (int, error) {
	var overdue []models.Todo
	err := s.DB.Where("deadline < ? AND is_completed = ? AND is_failed = ?",
		dateOf(time.Now()), false, false).
		Find(&overdue).Error
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, todo := range overdue {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Todo{}).
				Where("id = ?", todo.ID).
				Update("is_failed", true).Error; err != nil {
				return err
			}
			_, err := s.Progress.UpdateStat(tx, todo.UserID, StatTasksFailed)
			return err
		})
		if err != nil {
			log.Printf("[OverdueSweep] failed to fail todo %s: %v", todo.ID, err)
			continue
		}
		failed++
	}
	return failed, nil
}
