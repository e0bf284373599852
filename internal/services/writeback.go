package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/studytrack/backend/internal/infrastructure/writeback"
	"github.com/studytrack/backend/storage"
)

// StoreHealth abstracts the connection monitor functionality.
type StoreHealth interface {
	IsOnline() bool
}

// WritebackConfig controls how frequently pending writes are replayed.
type WritebackConfig struct {
	Interval   time.Duration
	MaxRetries int
}

// Writeback replays queued persistence writes against the gateway on a
// schedule, while the store is healthy.
type Writeback struct {
	queue   *writeback.Queue
	gateway *storage.Gateway
	monitor StoreHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     WritebackConfig
}

func NewWriteback(queue *writeback.Queue, gateway *storage.Gateway, monitor StoreHealth, logger *zap.Logger, cfg WritebackConfig) *Writeback {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	wb := &Writeback{
		queue:   queue,
		gateway: gateway,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = wb.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := wb.Drain(ctx); err != nil {
			wb.logger.Error("writeback drain failed", zap.Error(err))
		}
	})

	return wb
}

// Start launches the cron scheduler.
func (wb *Writeback) Start() {
	if wb == nil || wb.cron == nil {
		return
	}
	wb.cron.Start()
	wb.logger.Info("writeback service started")
}

// Stop gracefully stops the scheduler.
func (wb *Writeback) Stop(ctx context.Context) {
	if wb == nil || wb.cron == nil {
		return
	}
	stopCtx := wb.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	wb.logger.Info("writeback service stopped")
}

// Drain replays pending writes synchronously.
func (wb *Writeback) Drain(ctx context.Context) error {
	if wb == nil || wb.queue == nil {
		return nil
	}
	if wb.monitor != nil && !wb.monitor.IsOnline() {
		wb.logger.Debug("skipping writeback drain (store offline)")
		return nil
	}

	items, err := wb.queue.Pending()
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := wb.gateway.SetRaw(ctx, item.Key, item.Payload); err != nil {
			wb.logger.Error("failed to replay pending write",
				zap.String("key", item.Key),
				zap.Int("retries", item.Retries),
				zap.Error(err))

			if item.Retries+1 >= wb.cfg.MaxRetries {
				wb.logger.Warn("dropping pending write (max retries reached)", zap.String("key", item.Key))
				_ = wb.queue.Remove(item)
				continue
			}
			if err := wb.queue.Bump(item); err != nil {
				wb.logger.Error("failed to bump pending write", zap.Error(err))
			}
			continue
		}

		if err := wb.queue.Remove(item); err != nil {
			wb.logger.Warn("failed to acknowledge replayed write", zap.Error(err))
		}
		wb.logger.Info("pending write replayed", zap.String("key", item.Key))
	}
	return nil
}

// Enqueue stores a failed write for later replay.
func (wb *Writeback) Enqueue(key string, payload []byte) error {
	if wb == nil || wb.queue == nil {
		return fmt.Errorf("writeback queue not configured")
	}
	return wb.queue.Enqueue(key, payload)
}

// Size returns the pending-write backlog length.
func (wb *Writeback) Size() int {
	if wb == nil || wb.queue == nil {
		return 0
	}
	size, err := wb.queue.Size()
	if err != nil {
		return 0
	}
	return size
}
