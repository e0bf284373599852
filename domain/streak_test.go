package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStudyStreak_Advance(t *testing.T) {
	tests := []struct {
		name    string
		streak  StudyStreak
		session time.Time
		want    StudyStreak
	}{
		{
			name:    "first session starts the streak",
			streak:  StudyStreak{CurrentStreak: 0, BestStreak: 0, LastStudyDate: day("2024-01-01")},
			session: day("2024-01-02"),
			want:    StudyStreak{CurrentStreak: 1, BestStreak: 1, LastStudyDate: day("2024-01-02")},
		},
		{
			name:    "consecutive day extends the streak",
			streak:  StudyStreak{CurrentStreak: 5, BestStreak: 5, LastStudyDate: day("2024-01-05")},
			session: day("2024-01-06"),
			want:    StudyStreak{CurrentStreak: 6, BestStreak: 6, LastStudyDate: day("2024-01-06")},
		},
		{
			name:    "gap resets to one but keeps best",
			streak:  StudyStreak{CurrentStreak: 5, BestStreak: 7, LastStudyDate: day("2024-01-05")},
			session: day("2024-01-09"),
			want:    StudyStreak{CurrentStreak: 1, BestStreak: 7, LastStudyDate: day("2024-01-09")},
		},
		{
			name:    "same day counts as day one when streak is zero",
			streak:  StudyStreak{CurrentStreak: 0, BestStreak: 3, LastStudyDate: day("2024-01-05")},
			session: day("2024-01-05"),
			want:    StudyStreak{CurrentStreak: 1, BestStreak: 3, LastStudyDate: day("2024-01-05")},
		},
		{
			name:    "same day never increments an active streak",
			streak:  StudyStreak{CurrentStreak: 4, BestStreak: 4, LastStudyDate: day("2024-01-05")},
			session: day("2024-01-05"),
			want:    StudyStreak{CurrentStreak: 4, BestStreak: 4, LastStudyDate: day("2024-01-05")},
		},
		{
			name:    "out of order session is a no-op",
			streak:  StudyStreak{CurrentStreak: 3, BestStreak: 6, LastStudyDate: day("2024-01-05")},
			session: day("2024-01-03"),
			want:    StudyStreak{CurrentStreak: 3, BestStreak: 6, LastStudyDate: day("2024-01-05")},
		},
		{
			name:    "time of day is ignored",
			streak:  StudyStreak{CurrentStreak: 2, BestStreak: 2, LastStudyDate: day("2024-01-05").Add(23 * time.Hour)},
			session: day("2024-01-06").Add(30 * time.Minute),
			want:    StudyStreak{CurrentStreak: 3, BestStreak: 3, LastStudyDate: day("2024-01-06")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.streak.Advance(tt.session)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.BestStreak, got.CurrentStreak)
			assert.False(t, got.LastStudyDate.Before(truncateToDay(tt.streak.LastStudyDate)))
		})
	}
}

func TestStudyStreak_AdvanceAcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2024-03-10 is the 23-hour spring-forward day; 2024-11-03 is the
	// 25-hour fall-back day.
	t.Run("out of order session on the short day never regresses the date", func(t *testing.T) {
		streak := StudyStreak{
			CurrentStreak: 2,
			BestStreak:    4,
			LastStudyDate: time.Date(2024, 3, 11, 0, 0, 0, 0, loc),
		}
		got := streak.Advance(time.Date(2024, 3, 10, 12, 0, 0, 0, loc))
		assert.Equal(t, streak, got)
	})

	t.Run("next day across spring forward extends the streak", func(t *testing.T) {
		streak := StudyStreak{
			CurrentStreak: 2,
			BestStreak:    2,
			LastStudyDate: time.Date(2024, 3, 9, 21, 0, 0, 0, loc),
		}
		got := streak.Advance(time.Date(2024, 3, 10, 8, 0, 0, 0, loc))
		assert.Equal(t, 3, got.CurrentStreak)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), got.LastStudyDate)
	})

	t.Run("next day across fall back extends the streak", func(t *testing.T) {
		streak := StudyStreak{
			CurrentStreak: 2,
			BestStreak:    2,
			LastStudyDate: time.Date(2024, 11, 3, 21, 0, 0, 0, loc),
		}
		got := streak.Advance(time.Date(2024, 11, 4, 8, 0, 0, 0, loc))
		assert.Equal(t, 3, got.CurrentStreak)
	})
}

func TestStudyStreak_AdvanceNeverLowersBest(t *testing.T) {
	streak := StudyStreak{CurrentStreak: 1, BestStreak: 1, LastStudyDate: day("2024-03-01")}
	for i := 0; i < 10; i++ {
		streak = streak.Advance(streak.LastStudyDate.AddDate(0, 0, 1))
	}
	assert.Equal(t, 11, streak.CurrentStreak)
	assert.Equal(t, 11, streak.BestStreak)

	streak = streak.Advance(streak.LastStudyDate.AddDate(0, 0, 5))
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 11, streak.BestStreak)
}
