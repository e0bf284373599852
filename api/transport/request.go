package transport

// TaskRequest carries task create/update payloads. DueDate is RFC 3339 or
// empty.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

type SubjectRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Color            string  `json:"color"`
	GoalHoursPerWeek float64 `json:"goal_hours_per_week"`
}

type SessionRequest struct {
	Subject         string `json:"subject"`
	DurationMinutes int    `json:"duration_minutes"`
}

type ProfileRequest struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Preferences PreferencesRequest `json:"preferences"`
}

type PreferencesRequest struct {
	PreferredStudyTime   string `json:"preferred_study_time"`
	FocusSessionDuration int    `json:"focus_session_duration"`
	BreakDuration        int    `json:"break_duration"`
	DailyGoalHours       int    `json:"daily_goal_hours"`
	Notifications        bool   `json:"notifications"`
	SoundEffects         bool   `json:"sound_effects"`
}

type AchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type TimerRequest struct {
	Subject string `json:"subject"`
}
