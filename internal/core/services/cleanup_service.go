package services

import (
	"context"
	"log"

	"campus-assetdesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService purges expired refresh tokens on a nightly schedule
type CleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(refreshTokenRepo repositories.RefreshTokenRepository) *CleanupService {
	return &CleanupService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the purge job (03:00 daily)
func (s *CleanupService) Start() {
	_, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)
	if err != nil {
		log.Printf("Failed to schedule token cleanup: %v", err)
		return
	}
	s.cron.Start()
	log.Println("Token cleanup scheduled (daily at 03:00)")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.cron.Stop()
}

func (s *CleanupService) purgeExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("Token cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Token cleanup removed %d expired refresh tokens", deleted)
	}
}
