package profile

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/repository"
)

type UseCase struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
	now      func() time.Time
}

func New(profiles repository.ProfileRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock fixes the reference time. Tests use this.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) GetProfile(ctx context.Context) domain.StudentProfile {
	return uc.profiles.Get(ctx)
}

// UpdateProfile replaces the editable fields. The achievements log is
// append-only and kept from the stored profile.
func (uc *UseCase) UpdateProfile(ctx context.Context, updated domain.StudentProfile) (domain.StudentProfile, error) {
	if err := updated.Validate(); err != nil {
		return domain.StudentProfile{}, err
	}

	current := uc.profiles.Get(ctx)
	updated.Achievements = current.Achievements
	uc.profiles.Save(ctx, updated)
	uc.logger.Info("profile updated")
	return updated, nil
}

func (uc *UseCase) AddAchievement(ctx context.Context, title, description string) (domain.StudentProfile, error) {
	if strings.TrimSpace(title) == "" {
		return domain.StudentProfile{}, domain.NewError(domain.ErrCodeInvalid, "achievement title is required")
	}

	profile := uc.profiles.Get(ctx)
	profile.Achievements = append(profile.Achievements, domain.Achievement{
		Title:       title,
		Description: description,
		Date:        uc.now(),
	})
	uc.profiles.Save(ctx, profile)
	return profile, nil
}
