package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/backend/domain"
)

func TestExportCSV(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
	subjects := []domain.Subject{
		{ID: "1", Name: "Math", GoalHoursPerWeek: 5},
		{ID: "2", Name: "Physics", GoalHoursPerWeek: 3},
		{ID: "3", Name: "History", GoalHoursPerWeek: 2},
	}
	sessions := []domain.StudySession{
		session(now, 90, "Math"),
		session(now.Add(-time.Hour), 45, "Math"),
		session(now, 30, "Physics"),
	}

	out, err := ExportCSV(subjects, sessions, TimeframeAll, now)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Subject,Total Hours,Number of Sessions", lines[0])
	assert.Equal(t, "Math,2.2,2", lines[1])
	assert.Equal(t, "Physics,0.5,1", lines[2])
	assert.Equal(t, "History,0.0,0", lines[3])
}

func TestExportCSV_TimeframeFiltersSessions(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
	subjects := []domain.Subject{{ID: "1", Name: "Math"}}
	sessions := []domain.StudySession{
		session(now, 60, "Math"),
		session(now.AddDate(0, -2, 0), 600, "Math"),
	}

	out, err := ExportCSV(subjects, sessions, TimeframeWeek, now)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Math,1.0,1", lines[1])
}
