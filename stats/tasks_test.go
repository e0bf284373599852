package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/backend/domain"
)

func task(id string, priority domain.Priority, completed bool) domain.Task {
	return domain.Task{ID: id, Title: id, Priority: priority, Completed: completed}
}

func TestFilterTasks_Partition(t *testing.T) {
	tasks := []domain.Task{
		task("a", domain.PriorityHigh, false),
		task("b", domain.PriorityLow, true),
		task("c", domain.PriorityMedium, false),
		task("d", domain.PriorityHigh, true),
	}

	active := FilterTasks(tasks, FilterActive)
	completed := FilterTasks(tasks, FilterCompleted)
	all := FilterTasks(tasks, FilterAll)

	assert.Len(t, all, len(tasks))
	assert.Equal(t, len(tasks), len(active)+len(completed))

	seen := make(map[string]int)
	for _, task := range append(active, completed...) {
		seen[task.ID]++
	}
	for _, task := range tasks {
		assert.Equal(t, 1, seen[task.ID], "task %s must appear in exactly one partition", task.ID)
	}

	// Input order is preserved within each partition.
	assert.Equal(t, []string{"a", "c"}, ids(active))
	assert.Equal(t, []string{"b", "d"}, ids(completed))
}

func TestSortTasks_PriorityStable(t *testing.T) {
	tasks := []domain.Task{
		task("low-1", domain.PriorityLow, false),
		task("high-1", domain.PriorityHigh, false),
		task("med-1", domain.PriorityMedium, false),
		task("high-2", domain.PriorityHigh, false),
		task("med-2", domain.PriorityMedium, false),
	}

	sorted := SortTasks(tasks, SortPriority)
	assert.Equal(t, []string{"high-1", "high-2", "med-1", "med-2", "low-1"}, ids(sorted))

	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Priority.Rank(), sorted[i].Priority.Rank())
	}

	// Input must not be mutated.
	assert.Equal(t, "low-1", tasks[0].ID)
}

func TestSortTasks_DueDatePlacesUndatedLast(t *testing.T) {
	d1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 5)

	later := task("later", domain.PriorityLow, false)
	later.DueDate = &d2
	soon := task("soon", domain.PriorityLow, false)
	soon.DueDate = &d1
	undatedA := task("undated-a", domain.PriorityLow, false)
	undatedB := task("undated-b", domain.PriorityLow, false)

	sorted := SortTasks([]domain.Task{undatedA, later, undatedB, soon}, SortDueDate)
	assert.Equal(t, []string{"soon", "later", "undated-a", "undated-b"}, ids(sorted))
}

func TestSortTasks_CreatedNewestFirst(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	oldest := task("oldest", domain.PriorityLow, false)
	oldest.CreatedAt = base
	middle := task("middle", domain.PriorityLow, false)
	middle.CreatedAt = base.Add(time.Hour)
	newest := task("newest", domain.PriorityLow, false)
	newest.CreatedAt = base.Add(2 * time.Hour)

	sorted := SortTasks([]domain.Task{oldest, newest, middle}, SortCreated)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids(sorted))
}

func TestCompletionRate(t *testing.T) {
	assert.Zero(t, CompletionRate(nil))
	assert.Zero(t, CompletionRate([]domain.Task{}))

	tasks := []domain.Task{
		task("a", domain.PriorityLow, true),
		task("b", domain.PriorityLow, false),
		task("c", domain.PriorityLow, false),
	}
	rate := CompletionRate(tasks)
	require.InDelta(t, 100.0/3.0, rate, 1e-9, "rate must not be pre-rounded")

	allDone := []domain.Task{task("a", domain.PriorityLow, true)}
	assert.InDelta(t, 100.0, CompletionRate(allDone), 1e-9)
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
