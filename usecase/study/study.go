// Package study records study sessions and drives the streak state machine.
package study

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
	"github.com/studytrack/backend/stats"
)

type UseCase struct {
	sessions repository.SessionRepository
	streaks  repository.StreakRepository
	subjects repository.SubjectRepository
	logger   *zap.Logger
	now      func() time.Time
}

func New(sessions repository.SessionRepository, streaks repository.StreakRepository, subjects repository.SubjectRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		streaks:  streaks,
		subjects: subjects,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock fixes the reference time. Tests use this.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// RecordSession appends a completed study session and advances the streak.
// An empty subject is recorded under the default label.
func (uc *UseCase) RecordSession(ctx context.Context, subject string, minutes int) (*domain.StudySession, domain.StudyStreak, error) {
	if strings.TrimSpace(subject) == "" {
		subject = domain.DefaultSubject
	}

	now := uc.now()
	session, err := uc.sessions.Append(ctx, &domain.StudySession{
		Date:            now,
		DurationMinutes: minutes,
		Subject:         subject,
	})
	if err != nil {
		return nil, domain.StudyStreak{}, err
	}

	streak := uc.streaks.Get(ctx).Advance(now)
	uc.streaks.Save(ctx, streak)

	uc.logger.Info("study session recorded",
		zap.String("subject", session.Subject),
		zap.Int("minutes", session.DurationMinutes),
		zap.Int("current_streak", streak.CurrentStreak))
	return session, streak, nil
}

func (uc *UseCase) Streak(ctx context.Context) domain.StudyStreak {
	return uc.streaks.Get(ctx)
}

// ClearSessions wipes the session log. The streak is left alone.
func (uc *UseCase) ClearSessions(ctx context.Context) int {
	return uc.sessions.Clear(ctx)
}

// Recent returns the newest sessions, most recent first.
func (uc *UseCase) Recent(ctx context.Context, limit int) []domain.StudySession {
	sessions := uc.sessions.List(ctx)
	out := make([]domain.StudySession, 0, limit)
	for i := len(sessions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, sessions[i])
	}
	return out
}

// Summary aggregates headline numbers for the dashboard.
type Summary struct {
	TodayMinutes  int                `json:"today_minutes"`
	WeekMinutes   int                `json:"week_minutes"`
	TotalMinutes  int                `json:"total_minutes"`
	SessionCount  int                `json:"session_count"`
	AveragePerDay int                `json:"average_minutes_per_study_day"`
	Streak        domain.StudyStreak `json:"streak"`
}

func (uc *UseCase) Summary(ctx context.Context) Summary {
	now := uc.now()
	sessions := uc.sessions.List(ctx)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart, weekEnd := stats.WeekRange(now)

	return Summary{
		TodayMinutes:  stats.MinutesInRange(sessions, dayStart, now),
		WeekMinutes:   stats.MinutesInRange(sessions, weekStart, weekEnd),
		TotalMinutes:  stats.TotalMinutes(sessions),
		SessionCount:  len(sessions),
		AveragePerDay: stats.AverageMinutesPerStudyDay(sessions),
		Streak:        uc.streaks.Get(ctx),
	}
}

// Daily returns per-day totals for the trailing window.
func (uc *UseCase) Daily(ctx context.Context, days int) []stats.DayTotal {
	return stats.DailyTotals(uc.sessions.List(ctx), uc.now(), days)
}

// Distribution returns minutes grouped by subject label.
func (uc *UseCase) Distribution(ctx context.Context) []stats.SubjectMinutes {
	return stats.SubjectDistribution(uc.sessions.List(ctx))
}

// ExportCSV renders per-subject statistics for the timeframe.
func (uc *UseCase) ExportCSV(ctx context.Context, frame stats.Timeframe) ([]byte, error) {
	return stats.ExportCSV(uc.subjects.List(ctx), uc.sessions.List(ctx), frame, uc.now())
}
