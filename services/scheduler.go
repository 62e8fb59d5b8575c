// services/scheduler.go
package services

import (
	"log"
	"time"

	"lifequest-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartBoostSweeper purges long-expired boost rows. Active-boost
// reads already filter on expires_at, so the sweep is pure hygiene
// and can run coarse-grained.
func (s *ShopService) StartBoostSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-24 * time.Hour)
			res := s.DB.Where("expires_at < ?", cutoff).Delete(&models.UserBoost{})
			if res.Error != nil {
				log.Printf("[BoostSweeper] DB error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 Purged %d expired boosts", res.RowsAffected)
			}
		}),
	)
}
