package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
	"github.com/dukapro/dukapro/internal/port"
)

// DashboardService exposes the read-only daily aggregates.
type DashboardService struct {
	repo   port.StatsRepository
	logger *zap.Logger
}

func NewDashboardService(repo port.StatsRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx, userID)
	if err != nil {
		s.logger.Error("failed to compute dashboard stats", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return stats, nil
}
