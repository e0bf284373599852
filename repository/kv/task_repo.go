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

type taskRepository struct {
	gw     *storage.Gateway
	queue  repository.WriteQueue
	logger *zap.Logger

	mu    sync.RWMutex
	tasks []domain.Task
}

// NewTaskRepository loads the task collection and returns the repository.
func NewTaskRepository(ctx context.Context, gw *storage.Gateway, queue repository.WriteQueue, logger *zap.Logger) repository.TaskRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &taskRepository{
		gw:     gw,
		queue:  queue,
		logger: logger,
		tasks:  storage.Get(ctx, gw, storage.KeyTasks, []domain.Task{}),
	}
}

func (r *taskRepository) List(_ context.Context) []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *taskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			task := r.tasks[i]
			return &task, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created := *task
	created.ID = uuid.NewString()
	created.Completed = false
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}

	r.mu.Lock()
	r.tasks = append(r.tasks, created)
	r.persistLocked(ctx)
	r.mu.Unlock()

	return &created, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID != task.ID {
			continue
		}
		// ID, Completed and CreatedAt are not editable.
		r.tasks[i].Title = task.Title
		r.tasks[i].Description = task.Description
		r.tasks[i].Priority = task.Priority
		r.tasks[i].DueDate = task.DueDate
		updated := r.tasks[i]
		r.persistLocked(ctx)
		return &updated, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			r.persistLocked(ctx)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *taskRepository) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Completed = !r.tasks[i].Completed
			toggled := r.tasks[i]
			r.persistLocked(ctx)
			return &toggled, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) ClearCompleted(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.tasks[:0]
	removed := 0
	for _, task := range r.tasks {
		if task.Completed {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	if removed > 0 {
		r.tasks = kept
		r.persistLocked(ctx)
	}
	return removed
}

func (r *taskRepository) persistLocked(ctx context.Context) {
	snapshot := make([]domain.Task, len(r.tasks))
	copy(snapshot, r.tasks)
	persist(ctx, r.gw, r.queue, r.logger, storage.KeyTasks, snapshot)
}
