package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/uuid"

	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/storage"
)

// Collection identifies which part of the planner document a change event
// refers to.
type Collection string

const (
	CollectionTasks    Collection = "tasks"
	CollectionCourses  Collection = "courses"
	CollectionSettings Collection = "settings"
)

// Listener receives change events after a mutation has been persisted.
// Consumers (rendering, cache invalidation) subscribe; the store never calls
// into them imperatively beyond this.
type Listener func(changed Collection)

// Mark asks the store to flip one notification threshold on one task.
type Mark struct {
	TaskID    string
	Threshold models.Threshold
}

// Store owns the canonical in-memory collections and flushes the affected
// collection to the adapter on every mutation. All operations are serialized
// behind a mutex: the read-modify-persist sequence is not atomic otherwise.
type Store struct {
	mu        sync.Mutex
	adapter   storage.Adapter
	tasks     []models.Task
	courses   []models.Course
	settings  models.Settings
	listeners []Listener
}

// New loads all collections from the adapter. The settings singleton is
// created with its default on first access and persisted immediately.
func New(adapter storage.Adapter) (*Store, error) {
	tasks, err := adapter.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	courses, err := adapter.LoadCourses()
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	settings, err := adapter.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if !settings.Theme.IsValid() {
		settings = models.DefaultSettings()
		if err := adapter.SaveSettings(settings); err != nil {
			return nil, fmt.Errorf("failed to persist default settings: %w", err)
		}
	}

	return &Store{
		adapter:  adapter,
		tasks:    tasks,
		courses:  courses,
		settings: settings,
	}, nil
}

// Subscribe registers a listener for change events. Not safe to call after
// the store is in use by other goroutines; wire subscribers during startup.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(changed Collection) {
	for _, l := range s.listeners {
		l(changed)
	}
}

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title       string
	CourseID    string
	DueDate     string
	Priority    models.Priority
	Description string
}

// AddTask validates, assigns a fresh id and appends the task, then persists
// the whole task collection. Validation failures leave state untouched.
func (s *Store) AddTask(input TaskInput) (models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 {
		return models.Task{}, models.NewValidationError("title", "must be at least 3 characters")
	}
	if strings.TrimSpace(input.CourseID) == "" {
		return models.Task{}, models.NewValidationError("courseId", "is required")
	}
	dueDate, err := ParseDueDate(input.DueDate)
	if err != nil {
		return models.Task{}, models.NewValidationError("dueDate", "must be a valid date/time")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.IsValid() {
		return models.Task{}, models.NewValidationError("priority", "must be low, medium or high")
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()).String(),
		Title:       title,
		CourseID:    input.CourseID,
		DueDate:     dueDate,
		Priority:    priority,
		Description: strings.TrimSpace(input.Description),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(copyTasks(s.tasks), task)
	if err := s.adapter.SaveTasks(next); err != nil {
		return models.Task{}, fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.tasks = next
	s.notify(CollectionTasks)

	return task, nil
}

// ToggleTaskCompletion flips the completed flag. Unlike delete, a toggle
// aimed at an unknown id is a genuine caller error and is raised.
func (s *Store) ToggleTaskCompletion(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyTasks(s.tasks)
	idx := -1
	for i := range next {
		if next[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Task{}, models.ErrTaskNotFound
	}

	next[idx].Completed = !next[idx].Completed
	if err := s.adapter.SaveTasks(next); err != nil {
		return models.Task{}, fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.tasks = next
	s.notify(CollectionTasks)

	return next[idx], nil
}

// DeleteTask removes the matching task. Idempotent: deleting an absent id is
// a no-op and does not touch storage.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(s.tasks) {
		return nil
	}

	if err := s.adapter.SaveTasks(next); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.tasks = next
	s.notify(CollectionTasks)

	return nil
}

// CourseInput carries the caller-supplied fields of a new course.
type CourseInput struct {
	Name       string
	Code       string
	Instructor string
	Color      string
}

func (s *Store) AddCourse(input CourseInput) (models.Course, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Course{}, models.NewValidationError("name", "is required")
	}

	course := models.Course{
		ID:         uuid.Must(uuid.NewV4()).String(),
		Name:       name,
		Code:       strings.TrimSpace(input.Code),
		Instructor: strings.TrimSpace(input.Instructor),
		Color:      input.Color,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(copyCourses(s.courses), course)
	if err := s.adapter.SaveCourses(next); err != nil {
		return models.Course{}, fmt.Errorf("failed to persist courses: %w", err)
	}
	s.courses = next
	s.notify(CollectionCourses)

	return course, nil
}

// DeleteCourse removes only the course. Cascading deletion of dependent tasks
// is the caller's responsibility; a task left referencing a deleted course is
// rendered with the fallback label, not treated as an error. Idempotent.
func (s *Store) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.courses) {
		return nil
	}

	if err := s.adapter.SaveCourses(next); err != nil {
		return fmt.Errorf("failed to persist courses: %w", err)
	}
	s.courses = next
	s.notify(CollectionCourses)

	return nil
}

// Tasks returns a snapshot copy of the task collection.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTasks(s.tasks)
}

// TasksByCourse returns a snapshot of the tasks referencing the given course.
func (s *Store) TasksByCourse(courseID string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.CourseID == courseID {
			out = append(out, t)
		}
	}
	return out
}

// Courses returns a snapshot copy of the course collection.
func (s *Store) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCourses(s.courses)
}

// ResolveCourseName looks up a course name, falling back to the generic label
// for dangling references.
func (s *Store) ResolveCourseName(courseID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.courses {
		if c.ID == courseID {
			return c.Name
		}
	}
	return models.UnknownCourseName
}

func (s *Store) GetSettings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if !settings.Theme.IsValid() {
		return models.NewValidationError("theme", "must be light or dark")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	s.settings = settings
	s.notify(CollectionSettings)

	return nil
}

// ExportAll returns a deep-copied snapshot of all three collections.
func (s *Store) ExportAll() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Snapshot{
		Tasks:    copyTasks(s.tasks),
		Courses:  copyCourses(s.courses),
		Settings: s.settings,
	}
}

// Import replaces all three collections wholesale. The payload is validated
// in full before any collection swap: a rejected import leaves prior state
// intact in memory and on disk.
func (s *Store) Import(snapshot models.Snapshot) error {
	if err := validateSnapshot(&snapshot); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.ReplaceAll(snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	s.tasks = copyTasks(snapshot.Tasks)
	s.courses = copyCourses(snapshot.Courses)
	s.settings = snapshot.Settings

	s.notify(CollectionTasks)
	s.notify(CollectionCourses)
	s.notify(CollectionSettings)

	return nil
}

// MarkNotified applies a batch of threshold flips and persists the task
// collection once if anything changed. Thresholds that already fired are
// skipped, keeping the operation idempotent. Returns how many flags flipped.
func (s *Store) MarkNotified(marks []Mark) (int, error) {
	if len(marks) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyTasks(s.tasks)
	flipped := 0
	for _, m := range marks {
		for i := range next {
			if next[i].ID == m.TaskID {
				if next[i].MarkNotified(m.Threshold) {
					flipped++
				}
				break
			}
		}
	}
	if flipped == 0 {
		return 0, nil
	}

	if err := s.adapter.SaveTasks(next); err != nil {
		return 0, fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.tasks = next
	s.notify(CollectionTasks)

	return flipped, nil
}

// validateSnapshot performs structural validation only. Referential integrity
// between imported tasks and courses is deliberately not checked; dangling
// course references are tolerated at read time.
func validateSnapshot(snapshot *models.Snapshot) error {
	seenTasks := make(map[string]struct{}, len(snapshot.Tasks))
	for i, t := range snapshot.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task %d has no id", models.ErrMalformedSnapshot, i)
		}
		if _, dup := seenTasks[t.ID]; dup {
			return fmt.Errorf("%w: duplicate task id %q", models.ErrMalformedSnapshot, t.ID)
		}
		seenTasks[t.ID] = struct{}{}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %q has no title", models.ErrMalformedSnapshot, t.ID)
		}
		if t.DueDate.IsZero() {
			return fmt.Errorf("%w: task %q has no due date", models.ErrMalformedSnapshot, t.ID)
		}
	}

	seenCourses := make(map[string]struct{}, len(snapshot.Courses))
	for i, c := range snapshot.Courses {
		if c.ID == "" {
			return fmt.Errorf("%w: course %d has no id", models.ErrMalformedSnapshot, i)
		}
		if _, dup := seenCourses[c.ID]; dup {
			return fmt.Errorf("%w: duplicate course id %q", models.ErrMalformedSnapshot, c.ID)
		}
		seenCourses[c.ID] = struct{}{}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: course %q has no name", models.ErrMalformedSnapshot, c.ID)
		}
	}

	if snapshot.Settings.Theme == "" {
		snapshot.Settings = models.DefaultSettings()
	} else if !snapshot.Settings.Theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", models.ErrMalformedSnapshot, snapshot.Settings.Theme)
	}

	return nil
}

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
