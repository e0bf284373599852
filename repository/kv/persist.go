// Package kv implements the repositories over the persistence gateway.
//
// Each repository loads its collection once at construction, mutates it in
// memory under a lock, and mirrors every mutation to the gateway. A failed
// mirror write is logged and handed to the write queue; it never fails the
// user operation.
package kv

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/storage"
)

// persist mirrors value to the gateway under key, queueing the payload for
// retry when the store is unavailable.
func persist(ctx context.Context, gw *storage.Gateway, queue repository.WriteQueue, logger *zap.Logger, key string, value any) {
	if err := storage.Set(ctx, gw, key, value); err == nil {
		return
	} else if queue == nil {
		logger.Error("persistence write failed, change kept in memory only",
			zap.String("key", key), zap.Error(err))
		return
	} else {
		payload, mErr := json.Marshal(value)
		if mErr != nil {
			logger.Error("failed to encode payload for retry queue",
				zap.String("key", key), zap.Error(mErr))
			return
		}
		if qErr := queue.Enqueue(key, payload); qErr != nil {
			logger.Error("failed to queue persistence write",
				zap.String("key", key), zap.Error(qErr))
			return
		}
		logger.Warn("persistence write queued for retry",
			zap.String("key", key), zap.Error(err))
	}
}
