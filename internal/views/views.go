// Package views computes derived views over a task snapshot: status
// classification, aggregate statistics, sorting and filtering. Everything
// here is a pure function of its inputs; the wall clock is always passed in.
package views

import (
	"sort"
	"strings"
	"time"

	"academic-planner/backend/internal/models"
)

// Status is the derived classification of a task. It is never stored.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusPending   Status = "pending"
)

// All is the wildcard value for every filter criterion.
const All = "all"

// TaskStatus classifies a task: completed wins regardless of due date, then
// a past due date means overdue, otherwise pending.
func TaskStatus(completed bool, dueDate, now time.Time) Status {
	if completed {
		return StatusCompleted
	}
	if dueDate.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}

// Stats are the aggregate counts shown on the dashboard cards.
// Completed + Pending + Overdue always equals Total.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// Statistics tallies every task by its derived status in a single pass.
func Statistics(tasks []models.Task, now time.Time) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch TaskStatus(t.Completed, t.DueDate, now) {
		case StatusCompleted:
			stats.Completed++
		case StatusOverdue:
			stats.Overdue++
		default:
			stats.Pending++
		}
	}
	return stats
}

// Direction orders a due-date sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortByDueDate returns a new slice sorted by due date. The sort is stable:
// tasks with equal due dates keep their relative input order.
func SortByDueDate(tasks []models.Task, dir Direction) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return out[j].DueDate.Before(out[i].DueDate)
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Criteria are the four conjunctive filter predicates. Empty Search and "all"
// values are wildcards.
type Criteria struct {
	Search   string
	Priority string
	Course   string
	Status   string
}

// Filter keeps the tasks matching every criterion. Search is a
// case-insensitive substring match over title and description only.
func Filter(tasks []models.Task, c Criteria, now time.Time) []models.Task {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if c.Priority != "" && c.Priority != All && c.Priority != string(t.Priority) {
			continue
		}
		if c.Course != "" && c.Course != All && c.Course != t.CourseID {
			continue
		}
		if c.Status != "" && c.Status != All &&
			c.Status != string(TaskStatus(t.Completed, t.DueDate, now)) {
			continue
		}
		out = append(out, t)
	}
	return out
}
