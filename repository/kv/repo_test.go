package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/internal/infrastructure/kvstore"
	"github.com/studytrack/backend/storage"
)

func newGateway() *storage.Gateway {
	return storage.NewGateway(kvstore.NewMemory(), nil)
}

func TestTaskRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	gw := newGateway()
	repo := NewTaskRepository(ctx, gw, nil, nil)

	created, err := repo.Create(ctx, &domain.Task{Title: "Read chapter 4", Priority: domain.PriorityHigh, Completed: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed, "tasks are always created active")
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &domain.Task{Priority: domain.PriorityHigh})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	update := *created
	update.Title = "Read chapter 5"
	update.Priority = domain.PriorityLow
	updated, err := repo.Update(ctx, &update)
	require.NoError(t, err)
	assert.Equal(t, "Read chapter 5", updated.Title)
	assert.Equal(t, created.ID, updated.ID)

	toggled, err := repo.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// Collection state survives a reload through the gateway.
	reloaded := NewTaskRepository(ctx, gw, nil, nil)
	list := reloaded.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Read chapter 5", list[0].Title)
	assert.True(t, list[0].Completed)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.Empty(t, repo.List(ctx))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestTaskRepository_ClearCompleted(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(ctx, newGateway(), nil, nil)

	a, _ := repo.Create(ctx, &domain.Task{Title: "a", Priority: domain.PriorityLow})
	b, _ := repo.Create(ctx, &domain.Task{Title: "b", Priority: domain.PriorityLow})
	_, _ = repo.Create(ctx, &domain.Task{Title: "c", Priority: domain.PriorityLow})
	_, err := repo.Toggle(ctx, a.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.ClearCompleted(ctx))
	assert.Equal(t, 0, repo.ClearCompleted(ctx))

	remaining := repo.List(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].Title)
}

func TestSubjectDelete_LeavesSessionsUntouched(t *testing.T) {
	ctx := context.Background()
	gw := newGateway()
	subjects := NewSubjectRepository(ctx, gw, nil, nil)
	sessions := NewSessionRepository(ctx, gw, nil, nil)

	math, err := subjects.Create(ctx, &domain.Subject{Name: "Math", Color: "#6366f1", GoalHoursPerWeek: 5})
	require.NoError(t, err)

	_, err = sessions.Append(ctx, &domain.StudySession{Subject: "Math", DurationMinutes: 45})
	require.NoError(t, err)

	require.NoError(t, subjects.Delete(ctx, math.ID))
	assert.Empty(t, subjects.List(ctx))

	// The session still carries the free-text subject name.
	remaining := sessions.List(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Math", remaining[0].Subject)
}

func TestSubjectRename_LeavesSessionsUntouched(t *testing.T) {
	ctx := context.Background()
	gw := newGateway()
	subjects := NewSubjectRepository(ctx, gw, nil, nil)
	sessions := NewSessionRepository(ctx, gw, nil, nil)

	math, err := subjects.Create(ctx, &domain.Subject{Name: "Math", GoalHoursPerWeek: 5})
	require.NoError(t, err)
	_, err = sessions.Append(ctx, &domain.StudySession{Subject: "Math", DurationMinutes: 30})
	require.NoError(t, err)

	renamed := *math
	renamed.Name = "Mathematics"
	_, err = subjects.Update(ctx, &renamed)
	require.NoError(t, err)

	assert.Equal(t, "Math", sessions.List(ctx)[0].Subject)
}

func TestSessionRepository_AppendAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(ctx, newGateway(), nil, nil)

	_, err := repo.Append(ctx, &domain.StudySession{Subject: "Math", DurationMinutes: 0})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	created, err := repo.Append(ctx, &domain.StudySession{Subject: "Math", DurationMinutes: 25})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Date.IsZero())

	assert.Equal(t, 1, repo.Clear(ctx))
	assert.Empty(t, repo.List(ctx))
}

func TestSingletonRepositories(t *testing.T) {
	ctx := context.Background()
	gw := newGateway()

	streaks := NewStreakRepository(ctx, gw, nil, nil)
	saved := domain.StudyStreak{CurrentStreak: 2, BestStreak: 4, LastStudyDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	streaks.Save(ctx, saved)
	assert.Equal(t, saved, streaks.Get(ctx))
	assert.Equal(t, saved, NewStreakRepository(ctx, gw, nil, nil).Get(ctx))

	profiles := NewProfileRepository(ctx, gw, nil, nil)
	profile := profiles.Get(ctx)
	assert.Equal(t, 25, profile.StudyPreferences.FocusSessionDuration, "defaults apply before anything is stored")

	profile.Name = "Dana"
	profiles.Save(ctx, profile)
	assert.Equal(t, "Dana", NewProfileRepository(ctx, gw, nil, nil).Get(ctx).Name)
}

// failingStore rejects writes after a point, to exercise the retry queue.
type failingStore struct {
	*kvstore.Memory
	fail bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

type recordingQueue struct {
	keys []string
}

func (q *recordingQueue) Enqueue(key string, payload []byte) error {
	q.keys = append(q.keys, key)
	return nil
}

func TestWriteFailure_KeepsMemoryAuthoritativeAndQueues(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Memory: kvstore.NewMemory()}
	queue := &recordingQueue{}
	repo := NewTaskRepository(ctx, storage.NewGateway(store, nil), queue, nil)

	store.fail = true
	created, err := repo.Create(ctx, &domain.Task{Title: "still works", Priority: domain.PriorityMedium})
	require.NoError(t, err, "user operation must succeed despite the write failure")

	list := repo.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	require.Len(t, queue.keys, 1)
	assert.Equal(t, storage.KeyTasks, queue.keys[0])
}
