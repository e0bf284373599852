package kv

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/storage"
)

type streakRepository struct {
	gw     *storage.Gateway
	queue  repository.WriteQueue
	logger *zap.Logger

	mu     sync.RWMutex
	streak domain.StudyStreak
}

// NewStreakRepository loads the streak singleton. A fresh install starts at
// zero with today as the reference date, matching a streak that has never
// been advanced.
func NewStreakRepository(ctx context.Context, gw *storage.Gateway, queue repository.WriteQueue, logger *zap.Logger) repository.StreakRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &streakRepository{
		gw:     gw,
		queue:  queue,
		logger: logger,
		streak: storage.Get(ctx, gw, storage.KeyStreak, domain.StudyStreak{LastStudyDate: time.Now()}),
	}
}

func (r *streakRepository) Get(_ context.Context) domain.StudyStreak {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.streak
}

func (r *streakRepository) Save(ctx context.Context, streak domain.StudyStreak) {
	r.mu.Lock()
	r.streak = streak
	persist(ctx, r.gw, r.queue, r.logger, storage.KeyStreak, streak)
	r.mu.Unlock()
}

type profileRepository struct {
	gw     *storage.Gateway
	queue  repository.WriteQueue
	logger *zap.Logger

	mu      sync.RWMutex
	profile domain.StudentProfile
}

// NewProfileRepository loads the profile singleton.
func NewProfileRepository(ctx context.Context, gw *storage.Gateway, queue repository.WriteQueue, logger *zap.Logger) repository.ProfileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileRepository{
		gw:      gw,
		queue:   queue,
		logger:  logger,
		profile: storage.Get(ctx, gw, storage.KeyProfile, domain.DefaultProfile()),
	}
}

func (r *profileRepository) Get(_ context.Context) domain.StudentProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile
}

func (r *profileRepository) Save(ctx context.Context, profile domain.StudentProfile) {
	r.mu.Lock()
	r.profile = profile
	persist(ctx, r.gw, r.queue, r.logger, storage.KeyProfile, profile)
	r.mu.Unlock()
}
