package models

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Threshold names one of the two one-shot notification boundaries on a task.
type Threshold string

const (
	ThresholdDay  Threshold = "day"
	ThresholdHour Threshold = "hour"
)

// Task is a deadline record. Status (pending/overdue/completed) is never
// stored; it is derived from Completed and DueDate by the views package.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CourseID     string    `json:"courseId"`
	DueDate      time.Time `json:"dueDate"`
	Priority     Priority  `json:"priority"`
	Description  string    `json:"description,omitempty"`
	Completed    bool      `json:"completed"`
	NotifiedDay  bool      `json:"notifiedDay"`
	NotifiedHour bool      `json:"notifiedHour"`
}

// MarkNotified flips the one-shot flag for the given threshold and reports
// whether the flag actually transitioned. Flags only ever move false to true;
// a threshold that already fired never fires again.
func (t *Task) MarkNotified(th Threshold) bool {
	switch th {
	case ThresholdDay:
		if t.NotifiedDay {
			return false
		}
		t.NotifiedDay = true
		return true
	case ThresholdHour:
		if t.NotifiedHour {
			return false
		}
		t.NotifiedHour = true
		return true
	default:
		return false
	}
}

// Notified reports whether the given threshold has already fired.
func (t *Task) Notified(th Threshold) bool {
	switch th {
	case ThresholdDay:
		return t.NotifiedDay
	case ThresholdHour:
		return t.NotifiedHour
	default:
		return false
	}
}
