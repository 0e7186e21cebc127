package handlers

import (
	"errors"
	"net/http"

	"academic-planner/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps store errors onto HTTP status codes. Validation and
// malformed-payload failures are the client's fault, missing records are 404,
// anything else is a 500 with a generic body.
func respondError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, models.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
	case errors.Is(err, models.ErrMalformedSnapshot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
	}
}
