package storage

import (
	"academic-planner/backend/internal/models"
)

// Logical keys of the key-value contract. Each key holds a whole collection;
// writes are whole-collection replaces, never diffs.
const (
	KeyTasks    = "tasks"
	KeyCourses  = "courses"
	KeySettings = "settings"
)

// Adapter is the durable key-value storage the entity store reads from and
// writes to. Implementations must survive process restarts (GormAdapter) or
// may be ephemeral for tests (MemoryAdapter).
type Adapter interface {
	LoadTasks() ([]models.Task, error)
	SaveTasks(tasks []models.Task) error

	LoadCourses() ([]models.Course, error)
	SaveCourses(courses []models.Course) error

	// LoadSettings returns the zero Settings value when no record exists yet;
	// the store is responsible for defaulting the singleton on first access.
	LoadSettings() (models.Settings, error)
	SaveSettings(settings models.Settings) error

	// ReplaceAll atomically swaps all three collections. Either every key is
	// replaced or none is; used by snapshot import.
	ReplaceAll(snapshot models.Snapshot) error

	Health() error
	Close() error
}
