package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/internal/infrastructure/kvstore"
)

func newTestGateway() *Gateway {
	return NewGateway(kvstore.NewMemory(), nil)
}

func TestGateway_RoundTripEntities(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	due := created.AddDate(0, 0, 7)

	tasks := []domain.Task{
		{ID: "t1", Title: "Read chapter 4", Priority: domain.PriorityHigh, DueDate: &due, CreatedAt: created},
		{ID: "t2", Title: "Review notes", Description: "before class", Priority: domain.PriorityLow, Completed: true, CreatedAt: created},
	}
	subjects := []domain.Subject{
		{ID: "s1", Name: "Math", Color: "#6366f1", GoalHoursPerWeek: 5},
	}
	sessions := []domain.StudySession{
		{ID: "ss1", Date: created, DurationMinutes: 25, Subject: "Math"},
	}
	streak := domain.StudyStreak{CurrentStreak: 3, BestStreak: 7, LastStudyDate: created}
	profile := domain.DefaultProfile()
	profile.Name = "Dana"
	profile.Achievements = append(profile.Achievements, domain.Achievement{Title: "First week", Date: created})

	require.NoError(t, Set(ctx, g, KeyTasks, tasks))
	require.NoError(t, Set(ctx, g, KeySubjects, subjects))
	require.NoError(t, Set(ctx, g, KeySessions, sessions))
	require.NoError(t, Set(ctx, g, KeyStreak, streak))
	require.NoError(t, Set(ctx, g, KeyProfile, profile))

	assert.Equal(t, tasks, Get(ctx, g, KeyTasks, []domain.Task(nil)))
	assert.Equal(t, subjects, Get(ctx, g, KeySubjects, []domain.Subject(nil)))
	assert.Equal(t, sessions, Get(ctx, g, KeySessions, []domain.StudySession(nil)))
	assert.Equal(t, streak, Get(ctx, g, KeyStreak, domain.StudyStreak{}))
	assert.Equal(t, profile, Get(ctx, g, KeyProfile, domain.StudentProfile{}))
}

func TestGateway_GetMissingKeyReturnsDefault(t *testing.T) {
	g := newTestGateway()
	fallback := domain.StudyStreak{LastStudyDate: time.Now()}

	got := Get(context.Background(), g, KeyStreak, fallback)
	assert.Equal(t, fallback, got)
}

func TestGateway_GetMalformedPayloadReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, KeyTasks, []byte("{not json")))

	g := NewGateway(store, nil)
	got := Get(ctx, g, KeyTasks, []domain.Task{{ID: "default"}})
	require.Len(t, got, 1)
	assert.Equal(t, "default", got[0].ID)
}

func TestGateway_SubscribeReceivesChanges(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	ch, cancel := g.Subscribe(KeyTasks)
	defer cancel()

	require.NoError(t, Set(ctx, g, KeyTasks, []domain.Task{}))

	select {
	case change := <-ch:
		assert.Equal(t, KeyTasks, change.Key)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	// Changes to other keys are not delivered.
	require.NoError(t, Set(ctx, g, KeySubjects, []domain.Subject{}))
	select {
	case change := <-ch:
		t.Fatalf("unexpected notification for %q", change.Key)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGateway_CancelStopsDelivery(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	ch, cancel := g.Subscribe(KeyStreak)
	cancel()

	require.NoError(t, Set(ctx, g, KeyStreak, domain.StudyStreak{CurrentStreak: 1, BestStreak: 1}))
	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive changes")
	case <-time.After(50 * time.Millisecond):
	}
}
