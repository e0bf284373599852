package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/stats"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListTasks returns the collection filtered and sorted for display.
func (uc *UseCase) ListTasks(ctx context.Context, filter stats.TaskFilter, sortKey stats.TaskSort) []domain.Task {
	tasks := stats.FilterTasks(uc.tasks.List(ctx), filter)
	if sortKey != "" {
		tasks = stats.SortTasks(tasks, sortKey)
	}
	return tasks
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("task created", zap.String("task_id", created.ID))
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return uc.tasks.Update(ctx, task)
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}

// ToggleTask flips a task's completion state.
func (uc *UseCase) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.Toggle(ctx, id)
}

// ClearCompleted removes all completed tasks and reports how many went.
func (uc *UseCase) ClearCompleted(ctx context.Context) int {
	removed := uc.tasks.ClearCompleted(ctx)
	if removed > 0 {
		uc.logger.Info("completed tasks cleared", zap.Int("count", removed))
	}
	return removed
}

// Overview summarizes the collection for the task dashboard.
type Overview struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Active         int     `json:"active"`
	HighPriority   int     `json:"high_priority"`
	CompletionRate float64 `json:"completion_rate"`
}

func (uc *UseCase) Overview(ctx context.Context) Overview {
	tasks := uc.tasks.List(ctx)
	active := stats.FilterTasks(tasks, stats.FilterActive)

	high := 0
	for _, t := range active {
		if t.Priority == domain.PriorityHigh {
			high++
		}
	}
	return Overview{
		Total:          len(tasks),
		Completed:      len(tasks) - len(active),
		Active:         len(active),
		HighPriority:   high,
		CompletionRate: stats.CompletionRate(tasks),
	}
}
