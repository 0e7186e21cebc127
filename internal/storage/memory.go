package storage

import (
	"sync"

	"academic-planner/backend/internal/models"
)

// MemoryAdapter keeps collections in process memory. It satisfies the same
// whole-collection-replace contract as GormAdapter and is used in tests and
// ephemeral runs.
type MemoryAdapter struct {
	mu       sync.Mutex
	tasks    []models.Task
	courses  []models.Course
	settings models.Settings

	// SaveCount counts write-all operations, letting tests assert that a poll
	// which flips several flags persists the collection exactly once.
	SaveCount int
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

func (a *MemoryAdapter) LoadTasks() ([]models.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyTasks(a.tasks), nil
}

func (a *MemoryAdapter) SaveTasks(tasks []models.Task) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tasks = copyTasks(tasks)
	a.SaveCount++
	return nil
}

func (a *MemoryAdapter) LoadCourses() ([]models.Course, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyCourses(a.courses), nil
}

func (a *MemoryAdapter) SaveCourses(courses []models.Course) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.courses = copyCourses(courses)
	a.SaveCount++
	return nil
}

func (a *MemoryAdapter) LoadSettings() (models.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings, nil
}

func (a *MemoryAdapter) SaveSettings(settings models.Settings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings = settings
	a.SaveCount++
	return nil
}

func (a *MemoryAdapter) ReplaceAll(snapshot models.Snapshot) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tasks = copyTasks(snapshot.Tasks)
	a.courses = copyCourses(snapshot.Courses)
	a.settings = snapshot.Settings
	a.SaveCount++
	return nil
}

func (a *MemoryAdapter) Health() error { return nil }

func (a *MemoryAdapter) Close() error { return nil }

func copyTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

func copyCourses(courses []models.Course) []models.Course {
	out := make([]models.Course, len(courses))
	copy(out, courses)
	return out
}
