package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/studytrack/backend/domain"
)

// ExportCSV renders per-subject totals for the given timeframe as CSV with
// the header row "Subject,Total Hours,Number of Sessions". Hours are
// formatted to one decimal place. One row is emitted per known subject, in
// subject-collection order, including subjects with no sessions.
func ExportCSV(subjects []domain.Subject, sessions []domain.StudySession, frame Timeframe, now time.Time) ([]byte, error) {
	filtered := SessionsInTimeframe(sessions, frame, now)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Subject", "Total Hours", "Number of Sessions"}); err != nil {
		return nil, err
	}

	for _, subject := range subjects {
		minutes, count := 0, 0
		for _, s := range filtered {
			if s.Subject == subject.Name {
				minutes += s.DurationMinutes
				count++
			}
		}
		row := []string{
			subject.Name,
			fmt.Sprintf("%.1f", float64(minutes)/60),
			fmt.Sprintf("%d", count),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
