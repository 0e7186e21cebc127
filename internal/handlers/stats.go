package handlers

import (
	"net/http"
	"time"

	"academic-planner/backend/internal/views"

	"github.com/gin-gonic/gin"
)

// GetStats returns the four status counts over the whole task collection.
// The counts always sum to total because every task lands in exactly one
// status bucket.
func (h *TaskHandler) GetStats(c *gin.Context) {
	cacheKey := "views:stats"
	if h.cache != nil {
		var cached views.Stats
		if err := h.cache.Get(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	stats := views.Statistics(h.store.Tasks(), time.Now())
	if h.cache != nil {
		_ = h.cache.Set(cacheKey, stats, listCacheTTL)
	}
	c.JSON(http.StatusOK, stats)
}
