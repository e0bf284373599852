package domain

import (
	"strings"
	"time"
)

// DefaultSubject labels sessions recorded without an explicit subject.
const DefaultSubject = "General"

// StudySession is a single recorded block of study time. Sessions are
// immutable once created; they are only removed by bulk clears.
type StudySession struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Subject         string    `json:"subject"`
}

func (s *StudySession) Validate() error {
	if s == nil {
		return ErrInvalidPayload
	}
	if s.DurationMinutes <= 0 {
		return NewError(ErrCodeInvalid, "session duration must be positive")
	}
	if strings.TrimSpace(s.Subject) == "" {
		return NewError(ErrCodeInvalid, "session subject is required")
	}
	return nil
}
