package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// StatsService provides the tenant dashboard counters.
type StatsService interface {
	GetStats(ctx context.Context, tenantID uuid.UUID) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	now       func() time.Time
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo, now: time.Now}
}

func (s *statsService) GetStats(ctx context.Context, tenantID uuid.UUID) (*domain.Stats, error) {
	return s.statsRepo.GetTenantStats(ctx, tenantID, domain.MonthStart(s.now()))
}
