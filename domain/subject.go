package domain

import "strings"

// Subject represents a course of study with a weekly hour goal.
//
// Study sessions reference subjects by name, not by ID. This is deliberate:
// renaming or deleting a subject must not rewrite historical sessions.
type Subject struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Color            string  `json:"color"`
	GoalHoursPerWeek float64 `json:"goal_hours_per_week"`
}

func (s *Subject) Validate() error {
	if s == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(s.Name) == "" {
		return NewError(ErrCodeInvalid, "subject name is required")
	}
	if s.GoalHoursPerWeek < 0 {
		return NewError(ErrCodeInvalid, "weekly goal must not be negative")
	}
	return nil
}
