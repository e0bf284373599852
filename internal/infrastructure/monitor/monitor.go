// Package monitor tracks the health of the persistence store and the
// write-behind backlog.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/backend/internal/infrastructure/kvstore"
	"github.com/studytrack/backend/internal/infrastructure/writeback"
)

const probeKey = "_health"

// Status is a point-in-time health snapshot.
type Status struct {
	Store       bool      `json:"store"`
	PendingSize int       `json:"pending_writes"`
	LastCheck   time.Time `json:"last_check"`
}

// Monitor periodically probes the store and counts pending writes. It gates
// the write-behind drain: draining against a dead store just burns retries.
type Monitor struct {
	store kvstore.Store
	queue *writeback.Queue

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(store kvstore.Store, queue *writeback.Queue, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		queue:    queue,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Store:     m.checkStore(),
		LastCheck: time.Now(),
	}
	if m.queue != nil {
		if size, err := m.queue.Size(); err == nil {
			status.PendingSize = size
		}
	}

	m.mu.Lock()
	previous := m.status.Store
	m.status = status
	m.mu.Unlock()

	if previous && !status.Store {
		m.logger.Warn("persistence store went offline")
	}
	if !previous && status.Store {
		m.logger.Info("persistence store is online")
	}
}

func (m *Monitor) checkStore() bool {
	if m.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := m.store.Get(ctx, probeKey)
	return err == nil || errors.Is(err, kvstore.ErrKeyNotFound)
}
