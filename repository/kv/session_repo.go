package kv

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/storage"
)

type sessionRepository struct {
	gw     *storage.Gateway
	queue  repository.WriteQueue
	logger *zap.Logger

	mu       sync.RWMutex
	sessions []domain.StudySession
}

// NewSessionRepository loads the session log and returns the repository.
func NewSessionRepository(ctx context.Context, gw *storage.Gateway, queue repository.WriteQueue, logger *zap.Logger) repository.SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionRepository{
		gw:       gw,
		queue:    queue,
		logger:   logger,
		sessions: storage.Get(ctx, gw, storage.KeySessions, []domain.StudySession{}),
	}
}

func (r *sessionRepository) List(_ context.Context) []domain.StudySession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StudySession, len(r.sessions))
	copy(out, r.sessions)
	return out
}

func (r *sessionRepository) Append(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	created := *session
	created.ID = uuid.NewString()
	if created.Date.IsZero() {
		created.Date = time.Now()
	}

	r.mu.Lock()
	r.sessions = append(r.sessions, created)
	r.persistLocked(ctx)
	r.mu.Unlock()

	return &created, nil
}

func (r *sessionRepository) Clear(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := len(r.sessions)
	if removed == 0 {
		return 0
	}
	r.sessions = []domain.StudySession{}
	r.persistLocked(ctx)
	return removed
}

func (r *sessionRepository) persistLocked(ctx context.Context) {
	snapshot := make([]domain.StudySession, len(r.sessions))
	copy(snapshot, r.sessions)
	persist(ctx, r.gw, r.queue, r.logger, storage.KeySessions, snapshot)
}
