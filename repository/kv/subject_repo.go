package kv

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/storage"
)

type subjectRepository struct {
	gw     *storage.Gateway
	queue  repository.WriteQueue
	logger *zap.Logger

	mu       sync.RWMutex
	subjects []domain.Subject
}

// NewSubjectRepository loads the subject collection and returns the repository.
func NewSubjectRepository(ctx context.Context, gw *storage.Gateway, queue repository.WriteQueue, logger *zap.Logger) repository.SubjectRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &subjectRepository{
		gw:       gw,
		queue:    queue,
		logger:   logger,
		subjects: storage.Get(ctx, gw, storage.KeySubjects, []domain.Subject{}),
	}
}

func (r *subjectRepository) List(_ context.Context) []domain.Subject {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Subject, len(r.subjects))
	copy(out, r.subjects)
	return out
}

func (r *subjectRepository) GetByID(_ context.Context, id string) (*domain.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			subject := r.subjects[i]
			return &subject, nil
		}
	}
	return nil, domain.ErrSubjectNotFound
}

func (r *subjectRepository) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	created := *subject
	created.ID = uuid.NewString()

	r.mu.Lock()
	r.subjects = append(r.subjects, created)
	r.persistLocked(ctx)
	r.mu.Unlock()

	return &created, nil
}

func (r *subjectRepository) Update(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subjects {
		if r.subjects[i].ID != subject.ID {
			continue
		}
		// Renaming a subject deliberately leaves historical sessions on the
		// old name.
		r.subjects[i].Name = subject.Name
		r.subjects[i].Description = subject.Description
		r.subjects[i].Color = subject.Color
		r.subjects[i].GoalHoursPerWeek = subject.GoalHoursPerWeek
		updated := r.subjects[i]
		r.persistLocked(ctx)
		return &updated, nil
	}
	return nil, domain.ErrSubjectNotFound
}

func (r *subjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			r.subjects = append(r.subjects[:i], r.subjects[i+1:]...)
			r.persistLocked(ctx)
			return nil
		}
	}
	return domain.ErrSubjectNotFound
}

func (r *subjectRepository) persistLocked(ctx context.Context) {
	snapshot := make([]domain.Subject, len(r.subjects))
	copy(snapshot, r.subjects)
	persist(ctx, r.gw, r.queue, r.logger, storage.KeySubjects, snapshot)
}
