package services

import (
	"context"
	"encoding/json"
	"time"

	"maintenance-system/internal/repositories"
	"maintenance-system/internal/schedule"
	"maintenance-system/pkg/constants"

	"go.uber.org/zap"
)

// DashboardStatsDTO is the cached landing-page payload. ByState carries the
// raw lifecycle breakdown next to the aggregated column counters.
type DashboardStatsDTO struct {
	Open           int            `json:"open"`
	Overdue        int            `json:"overdue"`
	Cancelled      int            `json:"cancelled"`
	ByState        map[string]int `json:"by_state"`
	EquipmentTotal int            `json:"equipment_total"`
	EquipmentDown  int            `json:"equipment_down"`
	Scrapped       int            `json:"scrapped"`
}

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*DashboardStatsDTO, error)
	InvalidateStats(ctx context.Context)
}

type DashboardService struct {
	maintenanceRepository repositories.MaintenanceRepositoryInterface
	dashboardRepository   repositories.DashboardRepositoryInterface
	cache                 repositories.CacheRepositoryInterface
	cacheTTL              time.Duration
	logger                *zap.Logger
}

func NewDashboardService(
	maintenanceRepository repositories.MaintenanceRepositoryInterface,
	dashboardRepository repositories.DashboardRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		maintenanceRepository: maintenanceRepository,
		dashboardRepository:   dashboardRepository,
		cache:                 cache,
		cacheTTL:              cacheTTL,
		logger:                logger,
	}
}

func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStatsDTO, error) {
	if cached, err := s.cache.Get(ctx, constants.CacheKeyDashboardStats); err == nil && cached != "" {
		var stats DashboardStatsDTO
		unmarshalErr := json.Unmarshal([]byte(cached), &stats)
		if unmarshalErr == nil {
			return &stats, nil
		}
		s.logger.Warn("discarding unreadable cached dashboard stats", zap.Error(unmarshalErr))
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, constants.CacheKeyDashboardStats, payload, s.cacheTTL); err != nil {
			// The cache is an accelerator only; serving fresh numbers is fine.
			s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
		}
	}
	return stats, nil
}

// InvalidateStats drops the cached counters after a write so the next read
// recomputes them.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if err := s.cache.Del(ctx, constants.CacheKeyDashboardStats); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats cache", zap.Error(err))
	}
}

func (s *DashboardService) computeStats(ctx context.Context) (*DashboardStatsDTO, error) {
	requests, err := s.maintenanceRepository.GetRequests(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.dashboardRepository.GetEquipmentCounts(ctx)
	if err != nil {
		return nil, err
	}

	byState, err := s.dashboardRepository.GetRequestCountsByState(ctx)
	if err != nil {
		return nil, err
	}

	projected := schedule.ProjectToDashboard(requests, equipment.Total, time.Now())
	return &DashboardStatsDTO{
		Open:           projected.Open,
		Overdue:        projected.Overdue,
		Cancelled:      projected.Cancelled,
		ByState:        byState,
		EquipmentTotal: projected.EquipmentTotal,
		EquipmentDown:  equipment.Down,
		Scrapped:       equipment.Scrapped,
	}, nil
}
