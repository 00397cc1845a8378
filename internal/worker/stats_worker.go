package worker

import (
	"context"

	"booth-pos-backend/internal/cache"
	"booth-pos-backend/internal/queue"
	"booth-pos-backend/pkg/logger"

	"go.uber.org/zap"
)

// StatsWorker drops the cached dashboard of an event whenever one of its
// orders is created or cancelled, so the next stats read recomputes.
type StatsWorker interface {
	Start(ctx context.Context) error
}

type StatsWorkerImpl struct {
	statsCache cache.EventStatsCache
	queue      queue.OrderEventQueue
}

func NewStatsWorker(statsCache cache.EventStatsCache, eventQueue queue.OrderEventQueue) StatsWorker {
	return &StatsWorkerImpl{
		statsCache: statsCache,
		queue:      eventQueue,
	}
}

func (w *StatsWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("stats_worker")
		for msg := range msgs {
			err := w.statsCache.Invalidate(ctx, msg.Data.EventID)
			if err != nil {
				log.Warn("invalidate stats failed",
					zap.Int("event_id", msg.Data.EventID),
					zap.String("type", msg.Data.Type),
					zap.Error(err))
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}
