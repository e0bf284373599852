package stats

import (
	"sort"

	"github.com/studytrack/backend/domain"
)

// TaskFilter selects which tasks a listing shows.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
)

// TaskSort selects the listing order.
type TaskSort string

const (
	SortPriority TaskSort = "priority"
	SortDueDate  TaskSort = "dueDate"
	SortCreated  TaskSort = "created"
)

// FilterTasks returns the tasks matching the filter, preserving input order.
// Active and completed partition the input; FilterAll returns it unchanged.
func FilterTasks(tasks []domain.Task, filter TaskFilter) []domain.Task {
	if filter == FilterAll || filter == "" {
		return tasks
	}
	var out []domain.Task
	for _, t := range tasks {
		switch filter {
		case FilterActive:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

// SortTasks returns a sorted copy. Priority orders high before medium before
// low; dueDate orders ascending with undated tasks last; created orders
// newest first. All orders are stable for equal keys.
func SortTasks(tasks []domain.Task, key TaskSort) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	switch key {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// CompletionRate is the percentage of tasks marked done. Zero for an empty
// list; the value is not rounded.
func CompletionRate(tasks []domain.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}
