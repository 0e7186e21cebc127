package handlers

import (
	"net/http"
	"time"

	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/store"
	"academic-planner/backend/internal/views"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	store *store.Store
}

func NewCourseHandler(s *store.Store) *CourseHandler {
	return &CourseHandler{store: s}
}

type courseView struct {
	models.Course
	Stats views.Stats `json:"stats"`
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required"`
		Code       string `json:"code"`
		Instructor string `json:"instructor"`
		Color      string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.store.AddCourse(store.CourseInput{
		Name:       input.Name,
		Code:       input.Code,
		Instructor: input.Instructor,
		Color:      input.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// GetCourses lists every course with its per-course task statistics.
func (h *CourseHandler) GetCourses(c *gin.Context) {
	now := time.Now()
	courses := h.store.Courses()

	result := make([]courseView, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseView{
			Course: course,
			Stats:  views.Statistics(h.store.TasksByCourse(course.ID), now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"courses": result, "total": len(result)})
}

// DeleteCourse removes the course and every task that references it. The
// store itself never cascades, so the dependent tasks are deleted here first.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")

	for _, t := range h.store.TasksByCourse(id) {
		if err := h.store.DeleteTask(t.ID); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := h.store.DeleteCourse(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
