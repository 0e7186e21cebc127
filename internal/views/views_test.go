package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/views"
)

var now = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

func task(id string, due time.Time, completed bool) models.Task {
	return models.Task{
		ID:        id,
		Title:     "Task " + id,
		CourseID:  "c1",
		DueDate:   due,
		Priority:  models.PriorityMedium,
		Completed: completed,
	}
}

func TestTaskStatus_CompletedWins(t *testing.T) {
	// A completed task is completed whatever its due date.
	for _, due := range []time.Time{now.Add(-48 * time.Hour), now, now.Add(48 * time.Hour)} {
		if got := views.TaskStatus(true, due, now); got != views.StatusCompleted {
			t.Errorf("Expected completed for due %v, got %s", due, got)
		}
	}
}

func TestTaskStatus_OverdueAndPending(t *testing.T) {
	if got := views.TaskStatus(false, now.Add(-time.Minute), now); got != views.StatusOverdue {
		t.Errorf("Expected overdue, got %s", got)
	}
	if got := views.TaskStatus(false, now.Add(time.Minute), now); got != views.StatusPending {
		t.Errorf("Expected pending, got %s", got)
	}
}

func TestStatistics_CountsSumToTotal(t *testing.T) {
	tasks := []models.Task{
		task("t1", now.Add(24*time.Hour), false),
		task("t2", now.Add(-24*time.Hour), false),
		task("t3", now.Add(-24*time.Hour), true),
		task("t4", now.Add(time.Hour), false),
	}

	stats := views.Statistics(tasks, now)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, stats.Total, stats.Completed+stats.Pending+stats.Overdue)
}

func TestStatistics_Empty(t *testing.T) {
	stats := views.Statistics(nil, now)
	assert.Equal(t, views.Stats{}, stats)
}

func TestSortByDueDate_Stable(t *testing.T) {
	same := now.Add(2 * time.Hour)
	tasks := []models.Task{
		task("b", same, false),
		task("a", now.Add(4*time.Hour), false),
		task("c", same, false),
		task("d", now.Add(time.Hour), false),
	}

	asc := views.SortByDueDate(tasks, views.Ascending)

	ids := []string{asc[0].ID, asc[1].ID, asc[2].ID, asc[3].ID}
	// b and c share a due date and must keep their input order.
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)

	// Input slice untouched.
	assert.Equal(t, "b", tasks[0].ID)
}

func TestSortByDueDate_DescendingReversesAscending(t *testing.T) {
	tasks := []models.Task{
		task("t1", now.Add(3*time.Hour), false),
		task("t2", now.Add(time.Hour), false),
		task("t3", now.Add(2*time.Hour), false),
	}

	asc := views.SortByDueDate(tasks, views.Ascending)
	desc := views.SortByDueDate(tasks, views.Descending)

	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestFilter_AllWildcardsReturnInputUnchanged(t *testing.T) {
	tasks := []models.Task{
		task("t1", now.Add(time.Hour), false),
		task("t2", now.Add(-time.Hour), true),
		task("t3", now.Add(2*time.Hour), false),
	}

	out := views.Filter(tasks, views.Criteria{
		Search:   "",
		Priority: views.All,
		Course:   views.All,
		Status:   views.All,
	}, now)

	assert.Equal(t, len(tasks), len(out))
	for i := range tasks {
		assert.Equal(t, tasks[i].ID, out[i].ID)
	}
}

func TestFilter_SearchCaseInsensitiveOnTitleAndDescription(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "Write ESSAY draft", DueDate: now.Add(time.Hour), Priority: models.PriorityLow},
		{ID: "t2", Title: "Quiz prep", Description: "covers essay topics", DueDate: now.Add(time.Hour), Priority: models.PriorityLow},
		{ID: "t3", Title: "Lab report", CourseID: "essay", DueDate: now.Add(time.Hour), Priority: models.PriorityLow},
	}

	out := views.Filter(tasks, views.Criteria{Search: "essay"}, now)

	// t3 matches only via courseId, which search must not inspect.
	if assert.Len(t, out, 2) {
		assert.Equal(t, "t1", out[0].ID)
		assert.Equal(t, "t2", out[1].ID)
	}
}

func TestFilter_PredicatesAreConjunctive(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "Essay draft", CourseID: "c1", DueDate: now.Add(time.Hour), Priority: models.PriorityHigh},
		{ID: "t2", Title: "Essay final", CourseID: "c2", DueDate: now.Add(time.Hour), Priority: models.PriorityHigh},
		{ID: "t3", Title: "Essay notes", CourseID: "c1", DueDate: now.Add(time.Hour), Priority: models.PriorityLow},
		{ID: "t4", Title: "Essay redo", CourseID: "c1", DueDate: now.Add(-time.Hour), Priority: models.PriorityHigh},
	}

	out := views.Filter(tasks, views.Criteria{
		Search:   "essay",
		Priority: "high",
		Course:   "c1",
		Status:   "pending",
	}, now)

	if assert.Len(t, out, 1) {
		assert.Equal(t, "t1", out[0].ID)
	}
}

func TestFilter_ByDerivedStatus(t *testing.T) {
	tasks := []models.Task{
		task("t1", now.Add(time.Hour), false),
		task("t2", now.Add(-time.Hour), false),
		task("t3", now.Add(-time.Hour), true),
	}

	overdue := views.Filter(tasks, views.Criteria{Status: "overdue"}, now)
	if assert.Len(t, overdue, 1) {
		assert.Equal(t, "t2", overdue[0].ID)
	}

	completed := views.Filter(tasks, views.Criteria{Status: "completed"}, now)
	if assert.Len(t, completed, 1) {
		assert.Equal(t, "t3", completed[0].ID)
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		due      time.Time
		expected string
	}{
		{"due now", now.Add(30 * time.Second), "due now"},
		{"just past", now.Add(-30 * time.Second), "just past due"},
		{"minutes ahead", now.Add(45 * time.Minute), "in 45 minutes"},
		{"one hour ahead", now.Add(90 * time.Minute), "in 1 hour"},
		{"hours ahead", now.Add(5 * time.Hour), "in 5 hours"},
		{"days ahead", now.Add(72 * time.Hour), "in 3 days"},
		{"hours ago", now.Add(-2 * time.Hour), "2 hours ago"},
		{"days ago", now.Add(-49 * time.Hour), "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := views.RelativeTime(tt.due, now); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	due := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	if got := views.FormatDate(due); got != "Mar 1, 2026 at 2:30 PM" {
		t.Errorf("Unexpected date format: %q", got)
	}
}
