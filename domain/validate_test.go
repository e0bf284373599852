package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskValidate(t *testing.T) {
	valid := &Task{Title: "Read chapter 4", Priority: PriorityMedium}
	assert.NoError(t, valid.Validate())

	assert.True(t, IsDomainError((&Task{Priority: PriorityHigh}).Validate(), ErrCodeInvalid))
	assert.True(t, IsDomainError((&Task{Title: "   ", Priority: PriorityHigh}).Validate(), ErrCodeInvalid))
	assert.True(t, IsDomainError((&Task{Title: "x", Priority: "urgent"}).Validate(), ErrCodeInvalid))
}

func TestSubjectValidate(t *testing.T) {
	valid := &Subject{Name: "Mathematics", Color: "#6366f1", GoalHoursPerWeek: 5}
	assert.NoError(t, valid.Validate())

	assert.True(t, IsDomainError((&Subject{Name: ""}).Validate(), ErrCodeInvalid))
	assert.True(t, IsDomainError((&Subject{Name: "Math", GoalHoursPerWeek: -1}).Validate(), ErrCodeInvalid))

	zeroGoal := &Subject{Name: "Art", GoalHoursPerWeek: 0}
	assert.NoError(t, zeroGoal.Validate())
}

func TestStudySessionValidate(t *testing.T) {
	valid := &StudySession{DurationMinutes: 25, Subject: "Physics"}
	assert.NoError(t, valid.Validate())

	assert.True(t, IsDomainError((&StudySession{DurationMinutes: 0, Subject: "Physics"}).Validate(), ErrCodeInvalid))
	assert.True(t, IsDomainError((&StudySession{DurationMinutes: -5, Subject: "Physics"}).Validate(), ErrCodeInvalid))
	assert.True(t, IsDomainError((&StudySession{DurationMinutes: 10}).Validate(), ErrCodeInvalid))
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.False(t, Priority("urgent").Valid())
}
