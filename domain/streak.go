package domain

import "time"

// StudyStreak tracks consecutive days of study activity.
// BestStreak >= CurrentStreak holds after every transition.
type StudyStreak struct {
	CurrentStreak int       `json:"current_streak"`
	BestStreak    int       `json:"best_streak"`
	LastStudyDate time.Time `json:"last_study_date"`
}

// Advance returns the streak state after a session completed on sessionDate.
// Both dates are compared at calendar-day granularity:
//
//   - same day: no change, unless the streak is 0 — the first session of a
//     fresh streak counts as day one. Additional sessions on the same day
//     never increment again.
//   - next day: the streak grows by one.
//   - gap of more than one day: the streak resets to one.
//   - sessionDate before the recorded day: counters are untouched and the
//     recorded date is never moved backward.
func (s StudyStreak) Advance(sessionDate time.Time) StudyStreak {
	day := truncateToDay(sessionDate)
	last := truncateToDay(s.LastStudyDate)
	if day.Before(last) {
		return s
	}

	next := s
	switch calendarDays(last, day) {
	case 0:
		if next.CurrentStreak == 0 {
			next.CurrentStreak = 1
		}
	case 1:
		next.CurrentStreak++
	default:
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.BestStreak {
		next.BestStreak = next.CurrentStreak
	}
	next.LastStudyDate = day
	return next
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calendarDays counts whole calendar days from one day-truncated time to
// another. The dates are re-anchored in UTC so that DST-shortened or
// -lengthened local days still count as exactly one day.
func calendarDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
