package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"academic-planner/backend/internal/models"
)

// record is one logical key of the key-value contract: the whole collection
// serialized as a JSON document.
type record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string {
	return "planner_records"
}

// GormAdapter persists the planner document in a local sqlite file, one JSON
// blob per logical key.
type GormAdapter struct {
	db *gorm.DB
}

func NewGormAdapter(path string) (*GormAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := applyPool(db, DefaultPoolConfig()); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	return &GormAdapter{db: db}, nil
}

func (a *GormAdapter) LoadTasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := a.load(KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (a *GormAdapter) SaveTasks(tasks []models.Task) error {
	return a.save(a.db, KeyTasks, tasks)
}

func (a *GormAdapter) LoadCourses() ([]models.Course, error) {
	var courses []models.Course
	if err := a.load(KeyCourses, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (a *GormAdapter) SaveCourses(courses []models.Course) error {
	return a.save(a.db, KeyCourses, courses)
}

func (a *GormAdapter) LoadSettings() (models.Settings, error) {
	var settings models.Settings
	if err := a.load(KeySettings, &settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (a *GormAdapter) SaveSettings(settings models.Settings) error {
	return a.save(a.db, KeySettings, settings)
}

func (a *GormAdapter) ReplaceAll(snapshot models.Snapshot) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := a.save(tx, KeyTasks, snapshot.Tasks); err != nil {
			return err
		}
		if err := a.save(tx, KeyCourses, snapshot.Courses); err != nil {
			return err
		}
		return a.save(tx, KeySettings, snapshot.Settings)
	})
}

func (a *GormAdapter) Health() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get storage handle: %w", err)
	}
	return sqlDB.Ping()
}

func (a *GormAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get storage handle: %w", err)
	}
	return sqlDB.Close()
}

// load fills dest from the record at key. A missing key is not an error:
// dest keeps its zero value, matching "no data yet".
func (a *GormAdapter) load(key string, dest any) error {
	var rec record
	err := a.db.First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (a *GormAdapter) save(db *gorm.DB, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	rec := record{Key: key, Value: data, UpdatedAt: time.Now()}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
