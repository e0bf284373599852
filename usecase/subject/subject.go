package subject

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/stats"
)

type UseCase struct {
	subjects repository.SubjectRepository
	sessions repository.SessionRepository
	logger   *zap.Logger
	now      func() time.Time
}

func New(subjects repository.SubjectRepository, sessions repository.SessionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		subjects: subjects,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock fixes the reference time. Tests use this.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) ListSubjects(ctx context.Context) []domain.Subject {
	return uc.subjects.List(ctx)
}

func (uc *UseCase) CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	created, err := uc.subjects.Create(ctx, subject)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("subject created", zap.String("subject", created.Name))
	return created, nil
}

func (uc *UseCase) UpdateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	return uc.subjects.Update(ctx, subject)
}

// DeleteSubject removes the subject. Sessions recorded against its name are
// untouched.
func (uc *UseCase) DeleteSubject(ctx context.Context, id string) error {
	return uc.subjects.Delete(ctx, id)
}

// Progress reports goal progress for one subject.
type Progress struct {
	Subject      domain.Subject     `json:"subject"`
	Weekly       stats.GoalProgress `json:"weekly"`
	MonthlyHours float64            `json:"monthly_hours"`
}

func (uc *UseCase) Progress(ctx context.Context, id string) (*Progress, error) {
	subject, err := uc.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sessions := uc.sessions.List(ctx)
	monthStart, monthEnd := stats.MonthRange(now)

	return &Progress{
		Subject:      *subject,
		Weekly:       stats.WeeklyGoalProgress(*subject, sessions, now),
		MonthlyHours: float64(stats.MinutesForSubjectInRange(sessions, subject.Name, monthStart, monthEnd)) / 60,
	}, nil
}
