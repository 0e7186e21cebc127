package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academic-planner/backend/internal/cache"
	"academic-planner/backend/internal/config"
	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/notify"
	"academic-planner/backend/internal/storage"
	"academic-planner/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(storage.NewMemoryAdapter())
	require.NoError(t, err)

	memCache := cache.NewMemoryCache()
	s.Subscribe(func(changed store.Collection) {
		_ = memCache.DeletePattern("views:*")
	})

	router := NewRouter(Deps{
		Store: s,
		Feed:  notify.NewFeed(10),
		Cache: memCache,
		CORS:  config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	})
	return router, s
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createCourse(t *testing.T, router *gin.Engine, name string) models.Course {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/courses", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)
	var course models.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &course))
	return course
}

func createTask(t *testing.T, router *gin.Engine, title, courseID string, due time.Time, priority string) taskView {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/tasks", gin.H{
		"title":    title,
		"courseId": courseID,
		"dueDate":  due.Format(time.RFC3339),
		"priority": priority,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task taskView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func TestCreateTaskReturnsDerivedFields(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Linear Algebra")

	task := createTask(t, router, "Problem set 3", course.ID, time.Now().Add(48*time.Hour), "high")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "pending", string(task.Status))
	assert.Equal(t, "Linear Algebra", task.CourseName)
	assert.Contains(t, task.DueLabel, "in ")
}

func TestCreateTaskValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Chemistry")

	w := doJSON(router, http.MethodPost, "/api/tasks", gin.H{
		"title":    "ab",
		"courseId": course.ID,
		"dueDate":  time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title")
}

func TestCreateTaskMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/api/tasks", gin.H{"title": "Essay draft"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTasksFilterAndSort(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "History")

	createTask(t, router, "Later essay", course.ID, time.Now().Add(72*time.Hour), "low")
	createTask(t, router, "Sooner quiz", course.ID, time.Now().Add(24*time.Hour), "high")
	createTask(t, router, "Middle reading", course.ID, time.Now().Add(48*time.Hour), "high")

	w := doJSON(router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []taskView `json:"tasks"`
		Total int        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "Sooner quiz", resp.Tasks[0].Title)
	assert.Equal(t, "Later essay", resp.Tasks[2].Title)

	w = doJSON(router, http.MethodGet, "/api/tasks?priority=high&search=quiz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Sooner quiz", resp.Tasks[0].Title)
}

func TestGetTasksCacheInvalidatedByMutation(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Physics")
	createTask(t, router, "Lab report", course.ID, time.Now().Add(24*time.Hour), "medium")

	w := doJSON(router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Second write lands after the first list response was cached.
	createTask(t, router, "Lab report 2", course.ID, time.Now().Add(25*time.Hour), "medium")

	w = doJSON(router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestToggleTask(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Biology")
	task := createTask(t, router, "Field notes", course.ID, time.Now().Add(-time.Hour), "low")

	w := doJSON(router, http.MethodPatch, fmt.Sprintf("/api/tasks/%s/toggle", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var toggled taskView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Completed)
	assert.Equal(t, "completed", string(toggled.Status))
}

func TestToggleUnknownTask(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPatch, "/api/tasks/nope/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTaskIdempotent(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Art")
	task := createTask(t, router, "Sketchbook", course.ID, time.Now().Add(time.Hour), "low")

	w := doJSON(router, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetCoursesWithStats(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Statistics")
	createTask(t, router, "Homework 1", course.ID, time.Now().Add(time.Hour), "medium")
	createTask(t, router, "Homework 2", course.ID, time.Now().Add(-time.Hour), "medium")

	w := doJSON(router, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Courses []courseView `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Courses, 1)
	assert.Equal(t, 2, resp.Courses[0].Stats.Total)
	assert.Equal(t, 1, resp.Courses[0].Stats.Pending)
	assert.Equal(t, 1, resp.Courses[0].Stats.Overdue)
}

func TestDeleteCourseCascadesTasks(t *testing.T) {
	router, s := newTestRouter(t)
	course := createCourse(t, router, "Music Theory")
	keep := createCourse(t, router, "Composition")
	createTask(t, router, "Interval drill", course.ID, time.Now().Add(time.Hour), "low")
	kept := createTask(t, router, "Motif study", keep.ID, time.Now().Add(time.Hour), "low")

	w := doJSON(router, http.MethodDelete, "/api/courses/"+course.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, kept.ID, tasks[0].ID)
	assert.Len(t, s.Courses(), 1)
}

func TestGetStats(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Geography")
	createTask(t, router, "Map quiz prep", course.ID, time.Now().Add(time.Hour), "medium")

	w := doJSON(router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Pending)
}

func TestSettingsRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "light")

	w = doJSON(router, http.MethodPut, "/api/settings", gin.H{"theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dark")
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPut, "/api/settings", gin.H{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshotExportImport(t *testing.T) {
	router, _ := newTestRouter(t)
	course := createCourse(t, router, "Economics")
	createTask(t, router, "Reading response", course.ID, time.Now().Add(time.Hour), "low")

	w := doJSON(router, http.MethodGet, "/api/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Tasks, 1)

	// Import into a fresh instance restores the same document.
	router2, s2 := newTestRouter(t)
	w = doJSON(router2, http.MethodPost, "/api/snapshot", snapshot)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s2.Tasks(), 1)
	assert.Len(t, s2.Courses(), 1)
}

func TestSnapshotImportRejectsMalformed(t *testing.T) {
	router, s := newTestRouter(t)
	course := createCourse(t, router, "Philosophy")
	createTask(t, router, "Essay outline", course.ID, time.Now().Add(time.Hour), "low")

	bad := models.Snapshot{
		Tasks:    []models.Task{{ID: "t1", Title: ""}},
		Settings: models.Settings{Theme: models.ThemeLight},
	}
	w := doJSON(router, http.MethodPost, "/api/snapshot", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Existing data survives a rejected import.
	assert.Len(t, s.Tasks(), 1)
}

func TestGetNotificationsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}
