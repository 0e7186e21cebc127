// Package notify watches task deadlines and fires each task's one-shot
// threshold signals: "due tomorrow" when a deadline moves within 24 hours and
// "due soon" when it moves within one hour.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/store"
)

type SignalType string

const (
	SignalDueTomorrow SignalType = "due_tomorrow"
	SignalDueSoon     SignalType = "due_soon"
)

// Signal is one threshold firing for one task.
type Signal struct {
	Type      SignalType    `json:"type"`
	Task      models.Task   `json:"task"`
	Remaining time.Duration `json:"-"`
	FiredAt   time.Time     `json:"firedAt"`
}

type SignalHandler func(Signal)

// Tracker polls the store on a fixed cadence, plus once immediately at start.
// Each threshold fires at most once per task; flag flips are persisted in one
// batch per poll.
type Tracker struct {
	store    *store.Store
	interval time.Duration

	mu       sync.RWMutex
	handlers []SignalHandler

	// now is swappable in tests.
	now func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTracker(s *store.Store, interval time.Duration) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Tracker{
		store:    s,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnSignal registers a handler invoked for every fired signal.
func (t *Tracker) OnSignal(h SignalHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, h)
}

// Start runs the poll loop: one immediate poll, then one per interval.
func (t *Tracker) Start() {
	log.Printf("Starting deadline tracker (interval %s)", t.interval)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		t.poll()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.ctx.Done():
				return
			case <-ticker.C:
				t.poll()
			}
		}
	}()
}

// Stop ends the poll loop. An in-flight poll runs to completion.
func (t *Tracker) Stop() {
	t.cancel()
	t.wg.Wait()
	log.Println("Deadline tracker stopped")
}

func (t *Tracker) poll() {
	if _, err := t.Poll(t.now()); err != nil {
		log.Printf("Error polling deadlines: %v", err)
	}
}

// Poll evaluates every task's thresholds against now, persists any flag flips
// in a single batch, and then fans out the fired signals. It returns the
// signals that fired. Completed tasks are skipped entirely.
func (t *Tracker) Poll(now time.Time) ([]Signal, error) {
	var (
		marks   []store.Mark
		signals []Signal
	)

	for _, task := range t.store.Tasks() {
		if task.Completed {
			continue
		}

		remaining := task.DueDate.Sub(now)
		hours := remaining.Hours()

		if hours > 0 && hours <= 24 && !task.Notified(models.ThresholdDay) {
			marks = append(marks, store.Mark{TaskID: task.ID, Threshold: models.ThresholdDay})
			signals = append(signals, Signal{
				Type:      SignalDueTomorrow,
				Task:      task,
				Remaining: remaining,
				FiredAt:   now,
			})
		}

		if hours > 0 && hours <= 1 && !task.Notified(models.ThresholdHour) {
			marks = append(marks, store.Mark{TaskID: task.ID, Threshold: models.ThresholdHour})
			signals = append(signals, Signal{
				Type:      SignalDueSoon,
				Task:      task,
				Remaining: remaining,
				FiredAt:   now,
			})
		}
	}

	if len(marks) == 0 {
		return nil, nil
	}

	// Persist before fan-out so a crash cannot replay a fired threshold.
	if _, err := t.store.MarkNotified(marks); err != nil {
		return nil, err
	}

	t.mu.RLock()
	handlers := make([]SignalHandler, len(t.handlers))
	copy(handlers, t.handlers)
	t.mu.RUnlock()

	for _, s := range signals {
		for _, h := range handlers {
			h(s)
		}
	}

	return signals, nil
}
