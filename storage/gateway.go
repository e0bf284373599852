// Package storage implements the persistence gateway: named JSON documents
// over a pluggable key-value backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/internal/infrastructure/kvstore"
)

// Well-known document keys.
const (
	KeyTasks    = "tasks"
	KeySubjects = "subjects"
	KeySessions = "studyTime"
	KeyStreak   = "streak"
	KeyProfile  = "profile"
)

// Change notifies a subscriber that the value under Key was replaced.
// The new value is not carried: subscribers re-read through the gateway.
type Change struct {
	Key string
}

// Gateway serializes values to JSON and stores them by name. Reads fall back
// to a caller-supplied default on missing or malformed payloads and never
// fail; writes surface STORAGE_WRITE errors for the caller to log and queue.
type Gateway struct {
	store  kvstore.Store
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[int]chan Change
	next int

	stop chan struct{}
}

func NewGateway(store kvstore.Store, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		store:  store,
		logger: logger,
		subs:   make(map[string]map[int]chan Change),
		stop:   make(chan struct{}),
	}
	if notifier, ok := store.(kvstore.Notifier); ok {
		go g.forward(notifier.Notifications())
	}
	return g
}

// Get reads the document under key into T. The default is returned when the
// key is absent or the stored payload does not decode; neither case is an
// error to the caller.
func Get[T any](ctx context.Context, g *Gateway, key string, defaultValue T) T {
	raw, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			g.logger.Warn("storage read failed, using default",
				zap.String("key", key), zap.Error(err))
		}
		return defaultValue
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		g.logger.Warn("stored payload is malformed, using default",
			zap.String("key", key), zap.Error(err))
		return defaultValue
	}
	return value
}

// Set serializes value and stores it under key, then notifies in-process
// subscribers. The in-memory state stays authoritative on failure; callers
// log and hand the write to the write-behind queue.
func Set[T any](ctx context.Context, g *Gateway, key string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "encode "+key, err)
	}
	if err := g.store.Set(ctx, key, payload); err != nil {
		return domain.WrapError(domain.ErrCodeStorageWrite, "store "+key, err)
	}
	g.notify(key)
	return nil
}

// SetRaw stores an already-encoded payload. Used by the write-behind queue
// when replaying failed writes.
func (g *Gateway) SetRaw(ctx context.Context, key string, payload []byte) error {
	if err := g.store.Set(ctx, key, payload); err != nil {
		return domain.WrapError(domain.ErrCodeStorageWrite, "store "+key, err)
	}
	g.notify(key)
	return nil
}

// Subscribe registers for change notifications on key. The returned cancel
// function must be called to release the subscription. Notifications are
// at-most-eventual: there is no ordering guarantee across processes.
func (g *Gateway) Subscribe(key string) (<-chan Change, func()) {
	ch := make(chan Change, 4)

	g.mu.Lock()
	id := g.next
	g.next++
	if g.subs[key] == nil {
		g.subs[key] = make(map[int]chan Change)
	}
	g.subs[key][id] = ch
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		if set, ok := g.subs[key]; ok {
			delete(set, id)
		}
		g.mu.Unlock()
	}
	return ch, cancel
}

func (g *Gateway) Close() {
	close(g.stop)
}

func (g *Gateway) notify(key string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, ch := range g.subs[key] {
		select {
		case ch <- Change{Key: key}:
		default:
			// Slow subscriber: it will catch up on its next read.
		}
	}
}

func (g *Gateway) forward(external <-chan string) {
	for {
		select {
		case key, ok := <-external:
			if !ok {
				return
			}
			g.notify(key)
		case <-g.stop:
			return
		}
	}
}
