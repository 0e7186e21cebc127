package handlers

import (
	"net/http"

	"academic-planner/backend/internal/notify"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	feed *notify.Feed
}

func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// GetNotifications returns the most recently fired reminders, newest first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	entries := h.feed.Recent()
	c.JSON(http.StatusOK, gin.H{"notifications": entries, "total": len(entries)})
}
