// services/scheduler.go
package services

import (
	"log"
	"time"

	"wellness-game-system/models"

	"github.com/go-co-op/gocron/v2"
)

func (s *CatalogService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: publish scheduled assets
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var assets []models.Asset
			now := time.Now()
			err := s.DB.Where("status = ? AND publish_at <= ?", models.AssetStatusScheduled, now).
				Find(&assets).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, a := range assets {
				a.Status = models.AssetStatusPublished
				a.PublishAt = nil
				if err := s.DB.Save(&a).Error; err != nil {
					log.Printf("[Scheduler] Failed to publish asset %s: %v", a.ID, err)
				} else {
					log.Printf("✅ Auto-published asset: %s", a.Name)
				}
			}
		}),
	)
}
