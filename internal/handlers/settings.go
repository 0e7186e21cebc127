package handlers

import (
	"net/http"

	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/store"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetSettings())
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var input struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.Settings{Theme: models.Theme(input.Theme)}
	if err := h.store.SaveSettings(settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
