package handlers

import (
	"log"
	"net/http"
	"time"

	"academic-planner/backend/internal/cache"
	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/store"
	"academic-planner/backend/internal/views"

	"github.com/gin-gonic/gin"
)

const listCacheTTL = 30 * time.Second

type TaskHandler struct {
	store *store.Store
	cache cache.Cache
}

func NewTaskHandler(s *store.Store, c cache.Cache) *TaskHandler {
	return &TaskHandler{store: s, cache: c}
}

// taskView is a task plus the fields derived for display. Status is never
// stored, it is computed against the wall clock on every read.
type taskView struct {
	models.Task
	Status     views.Status `json:"status"`
	CourseName string       `json:"courseName"`
	DueLabel   string       `json:"dueLabel"`
	DueExact   string       `json:"dueExact"`
}

func (h *TaskHandler) view(t models.Task, now time.Time) taskView {
	return taskView{
		Task:       t,
		Status:     views.TaskStatus(t.Completed, t.DueDate, now),
		CourseName: h.store.ResolveCourseName(t.CourseID),
		DueLabel:   views.RelativeTime(t.DueDate, now),
		DueExact:   views.FormatDate(t.DueDate),
	}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		CourseID    string `json:"courseId" binding:"required"`
		DueDate     string `json:"dueDate" binding:"required"`
		Priority    string `json:"priority"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.store.AddTask(store.TaskInput{
		Title:       input.Title,
		CourseID:    input.CourseID,
		DueDate:     input.DueDate,
		Priority:    models.Priority(input.Priority),
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view(task, time.Now()))
}

// GetTasks lists tasks filtered by the four conjunctive query predicates and
// sorted by due date. Responses are cached per query string until the next
// mutation invalidates them.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	search := c.Query("search")
	priority := c.DefaultQuery("priority", views.All)
	course := c.DefaultQuery("course", views.All)
	status := c.DefaultQuery("status", views.All)
	order := c.DefaultQuery("order", string(views.Ascending))

	cacheKey := "views:tasks:" + c.Request.URL.RawQuery
	if h.cache != nil {
		var cached []taskView
		if err := h.cache.Get(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"tasks": cached, "total": len(cached)})
			return
		}
	}

	now := time.Now()
	tasks := views.Filter(h.store.Tasks(), views.Criteria{
		Search:   search,
		Priority: priority,
		Course:   course,
		Status:   status,
	}, now)
	tasks = views.SortByDueDate(tasks, views.Direction(order))

	result := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, h.view(t, now))
	}

	if h.cache != nil {
		if err := h.cache.Set(cacheKey, result, listCacheTTL); err != nil {
			log.Printf("cache set failed for %s: %v", cacheKey, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": result, "total": len(result)})
}

func (h *TaskHandler) ToggleTask(c *gin.Context) {
	task, err := h.store.ToggleTaskCompletion(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(task, time.Now()))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.store.DeleteTask(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
