package service

import (
	"context"

	"booth-pos-backend/internal/cache"
	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/repository"
	"booth-pos-backend/pkg/logger"

	"go.uber.org/zap"
)

type StatsService interface {
	// GetEventStats 活動儀表盤，Redis 快取 + worker 失效
	GetEventStats(ctx context.Context, eventID int) (*model.EventStats, error)
	GetSalesSummary(ctx context.Context, eventID int, filter model.SalesSummaryFilter) ([]model.ProductSalesDetail, error)
}

type StatsServiceImpl struct {
	repository repository.StatsRepository
	eventRepo  repository.EventRepository
	statsCache cache.EventStatsCache
}

func NewStatsService(
	statsRepository repository.StatsRepository,
	eventRepository repository.EventRepository,
	statsCache cache.EventStatsCache,
) StatsService {
	return &StatsServiceImpl{
		repository: statsRepository,
		eventRepo:  eventRepository,
		statsCache: statsCache,
	}
}

func (s *StatsServiceImpl) GetEventStats(ctx context.Context, eventID int) (*model.EventStats, error) {
	cached, err := s.statsCache.Get(ctx, eventID)
	if err != nil {
		// Cache trouble degrades to a direct read.
		logger.WithComponent("stats_service").Warn("stats cache read failed",
			zap.Int("event_id", eventID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary, err := s.repository.Summary(ctx, eventID)
	if err != nil {
		return nil, err
	}

	details, err := s.repository.ProductSales(ctx, eventID, model.SalesSummaryFilter{})
	if err != nil {
		return nil, err
	}

	stats := &model.EventStats{
		EventInfo:      *event,
		Summary:        summary,
		ProductDetails: details,
	}

	if err := s.statsCache.Set(ctx, eventID, stats); err != nil {
		logger.WithComponent("stats_service").Warn("stats cache write failed",
			zap.Int("event_id", eventID), zap.Error(err))
	}

	return stats, nil
}

func (s *StatsServiceImpl) GetSalesSummary(ctx context.Context, eventID int, filter model.SalesSummaryFilter) ([]model.ProductSalesDetail, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repository.ProductSales(ctx, eventID, filter)
}
