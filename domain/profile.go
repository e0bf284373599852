package domain

import "time"

// StudyTime is the time of day a student prefers to study.
type StudyTime string

const (
	StudyTimeMorning   StudyTime = "morning"
	StudyTimeAfternoon StudyTime = "afternoon"
	StudyTimeEvening   StudyTime = "evening"
	StudyTimeNight     StudyTime = "night"
)

// StudyPreferences holds timer and notification settings.
type StudyPreferences struct {
	PreferredStudyTime   StudyTime `json:"preferred_study_time"`
	FocusSessionDuration int       `json:"focus_session_duration"`
	BreakDuration        int       `json:"break_duration"`
	DailyGoalHours       int       `json:"daily_goal_hours"`
	Notifications        bool      `json:"notifications"`
	SoundEffects         bool      `json:"sound_effects"`
}

// Achievement is a single entry in the profile's append-only achievements log.
type Achievement struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// StudentProfile is the singleton user-editable settings record.
type StudentProfile struct {
	Name             string           `json:"name"`
	Email            string           `json:"email,omitempty"`
	Bio              string           `json:"bio,omitempty"`
	Avatar           string           `json:"avatar,omitempty"`
	StudyPreferences StudyPreferences `json:"study_preferences"`
	Achievements     []Achievement    `json:"achievements"`
}

// DefaultProfile returns the profile used when nothing has been stored yet.
func DefaultProfile() StudentProfile {
	return StudentProfile{
		StudyPreferences: StudyPreferences{
			PreferredStudyTime:   StudyTimeMorning,
			FocusSessionDuration: 25,
			BreakDuration:        5,
			DailyGoalHours:       4,
			Notifications:        true,
			SoundEffects:         true,
		},
		Achievements: []Achievement{},
	}
}

func (p *StudentProfile) Validate() error {
	if p == nil {
		return ErrInvalidPayload
	}
	if p.StudyPreferences.FocusSessionDuration <= 0 {
		return NewError(ErrCodeInvalid, "focus session duration must be positive")
	}
	if p.StudyPreferences.BreakDuration <= 0 {
		return NewError(ErrCodeInvalid, "break duration must be positive")
	}
	if p.StudyPreferences.DailyGoalHours < 0 {
		return NewError(ErrCodeInvalid, "daily goal must not be negative")
	}
	return nil
}
