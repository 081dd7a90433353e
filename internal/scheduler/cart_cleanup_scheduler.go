package scheduler

import (
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// staleCartAge is how long an untouched cart line survives before the
// nightly purge removes it.
const staleCartAge = 30 * 24 * time.Hour

// CartCleanupScheduler purges abandoned cart lines nightly. Cart rows carry
// no prices, so dropping them loses nothing but the stored configuration.
type CartCleanupScheduler struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:     cron.New(),
		cartRepo: cartRepo,
	}
}

// Start schedules the purge for 03:00 every day.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled cart cleanup", nil)

		removed, err := s.cartRepo.DeleteStale(time.Now().Add(-staleCartAge))
		if err != nil {
			logger.Error("Failed to purge stale cart items", err)
			return
		}

		logger.Info("Cart cleanup finished", map[string]interface{}{
			"removed": removed,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started (daily at 3:00 AM)", nil)
	return nil
}

func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
