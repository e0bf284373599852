// Package stats computes derived metrics over the entity collections.
//
// Every function is pure: results depend only on the inputs, and range-bounded
// queries take an explicit reference time instead of reading the system clock.
package stats

import (
	"sort"
	"time"

	"github.com/studytrack/backend/domain"
)

// Timeframe selects the window used by timeframe-bounded queries.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeAll   Timeframe = "all"
)

// TotalMinutes sums the duration of all sessions.
func TotalMinutes(sessions []domain.StudySession) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// MinutesInRange sums sessions whose date falls in [start, end] inclusive.
func MinutesInRange(sessions []domain.StudySession, start, end time.Time) int {
	total := 0
	for _, s := range sessions {
		if inRange(s.Date, start, end) {
			total += s.DurationMinutes
		}
	}
	return total
}

// MinutesForSubject sums the duration of sessions matching the subject name
// exactly.
func MinutesForSubject(sessions []domain.StudySession, subject string) int {
	total := 0
	for _, s := range sessions {
		if s.Subject == subject {
			total += s.DurationMinutes
		}
	}
	return total
}

// MinutesForSubjectInRange is MinutesForSubject bounded to [start, end].
func MinutesForSubjectInRange(sessions []domain.StudySession, subject string, start, end time.Time) int {
	total := 0
	for _, s := range sessions {
		if s.Subject == subject && inRange(s.Date, start, end) {
			total += s.DurationMinutes
		}
	}
	return total
}

// GoalProgress reports hours logged against a weekly goal.
type GoalProgress struct {
	Hours   float64 `json:"hours"`
	Percent float64 `json:"percent"`
}

// WeeklyGoalProgress compares a subject's logged hours in the current week
// against its weekly goal. Percent is not capped: over-achievement reads
// above 100. A zero goal always yields zero percent.
func WeeklyGoalProgress(subject domain.Subject, sessions []domain.StudySession, now time.Time) GoalProgress {
	start, end := WeekRange(now)
	hours := float64(MinutesForSubjectInRange(sessions, subject.Name, start, end)) / 60

	var percent float64
	if subject.GoalHoursPerWeek > 0 {
		percent = 100 * hours / subject.GoalHoursPerWeek
	}
	return GoalProgress{Hours: hours, Percent: percent}
}

// SubjectMinutes pairs a subject label with its accumulated minutes.
type SubjectMinutes struct {
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
}

// SubjectDistribution aggregates minutes per subject label, sorted by minutes
// descending. Ties keep first-encounter order.
func SubjectDistribution(sessions []domain.StudySession) []SubjectMinutes {
	index := make(map[string]int)
	var out []SubjectMinutes
	for _, s := range sessions {
		if i, ok := index[s.Subject]; ok {
			out[i].Minutes += s.DurationMinutes
			continue
		}
		index[s.Subject] = len(out)
		out = append(out, SubjectMinutes{Subject: s.Subject, Minutes: s.DurationMinutes})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minutes > out[j].Minutes
	})
	return out
}

// DayTotal is the accumulated minutes for one calendar day.
type DayTotal struct {
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
}

// DailyTotals returns per-day minutes for the trailing days ending at now,
// oldest first. Missing days report zero.
func DailyTotals(sessions []domain.StudySession, now time.Time, days int) []DayTotal {
	if days <= 0 {
		return nil
	}
	out := make([]DayTotal, days)
	for i := 0; i < days; i++ {
		d := startOfDay(now.AddDate(0, 0, i-days+1))
		out[i] = DayTotal{Date: d}
		for _, s := range sessions {
			if startOfDay(s.Date).Equal(d) {
				out[i].Minutes += s.DurationMinutes
			}
		}
	}
	return out
}

// AverageMinutesPerStudyDay divides total minutes by the number of distinct
// calendar days with at least one session.
func AverageMinutesPerStudyDay(sessions []domain.StudySession) int {
	daysSeen := make(map[time.Time]struct{})
	for _, s := range sessions {
		daysSeen[startOfDay(s.Date)] = struct{}{}
	}
	if len(daysSeen) == 0 {
		return 0
	}
	return TotalMinutes(sessions) / len(daysSeen)
}

// SessionsInTimeframe filters sessions to the given timeframe around now.
// TimeframeAll returns the input unchanged.
func SessionsInTimeframe(sessions []domain.StudySession, frame Timeframe, now time.Time) []domain.StudySession {
	var start, end time.Time
	switch frame {
	case TimeframeWeek:
		start, end = WeekRange(now)
	case TimeframeMonth:
		start, end = MonthRange(now)
	default:
		return sessions
	}

	var out []domain.StudySession
	for _, s := range sessions {
		if inRange(s.Date, start, end) {
			out = append(out, s)
		}
	}
	return out
}

// WeekRange returns the Sunday-to-Saturday week containing now, at day
// granularity with an inclusive end at the last instant of Saturday.
func WeekRange(now time.Time) (time.Time, time.Time) {
	start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// MonthRange returns the calendar month containing now.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
