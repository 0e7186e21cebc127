package notify

import (
	"sync"
	"time"

	"academic-planner/backend/internal/views"
)

// FeedEntry is a fired signal shaped for the view layer.
type FeedEntry struct {
	Type    SignalType `json:"type"`
	TaskID  string     `json:"taskId"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	FiredAt string     `json:"firedAt"`
}

// Feed keeps the most recent fired signals, newest first, so the browser can
// fetch what the original surfaced as alerts. Bounded; oldest entries drop.
type Feed struct {
	mu      sync.Mutex
	entries []FeedEntry
	limit   int
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{limit: limit}
}

// Record is a SignalHandler.
func (f *Feed) Record(s Signal) {
	entry := FeedEntry{
		Type:    s.Type,
		TaskID:  s.Task.ID,
		Title:   s.Task.Title,
		FiredAt: s.FiredAt.Format(time.RFC3339),
	}

	switch s.Type {
	case SignalDueSoon:
		entry.Message = "\"" + s.Task.Title + "\" is due " + views.RelativeTime(s.Task.DueDate, s.FiredAt)
	default:
		entry.Message = "\"" + s.Task.Title + "\" is due tomorrow (" + views.RelativeTime(s.Task.DueDate, s.FiredAt) + ")"
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]FeedEntry{entry}, f.entries...)
	if len(f.entries) > f.limit {
		f.entries = f.entries[:f.limit]
	}
}

// Recent returns a copy of the feed, newest first.
func (f *Feed) Recent() []FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]FeedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}
