package repository

import (
	"context"

	"github.com/studytrack/backend/domain"
)

// WriteQueue receives persistence writes that failed so they can be retried
// later. Implemented by the write-behind service.
type WriteQueue interface {
	Enqueue(key string, payload []byte) error
}

// TaskRepository owns the task collection. The in-memory collection is the
// source of truth; persistence is a best-effort mirror.
type TaskRepository interface {
	List(ctx context.Context) []domain.Task
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	ClearCompleted(ctx context.Context) int
}

// SubjectRepository owns the subject collection. Deleting a subject never
// touches historical sessions that reference it by name.
type SubjectRepository interface {
	List(ctx context.Context) []domain.Subject
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	Update(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	Delete(ctx context.Context, id string) error
}

// SessionRepository owns the study-session log. Sessions are append-only and
// removed only by bulk clears.
type SessionRepository interface {
	List(ctx context.Context) []domain.StudySession
	Append(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	Clear(ctx context.Context) int
}

// StreakRepository owns the streak singleton.
type StreakRepository interface {
	Get(ctx context.Context) domain.StudyStreak
	Save(ctx context.Context, streak domain.StudyStreak)
}

// ProfileRepository owns the profile singleton.
type ProfileRepository interface {
	Get(ctx context.Context) domain.StudentProfile
	Save(ctx context.Context, profile domain.StudentProfile)
}
