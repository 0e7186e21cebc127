package handlers

import (
	"net/http"

	"academic-planner/backend/internal/models"
	"academic-planner/backend/internal/store"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	store *store.Store
}

func NewSnapshotHandler(s *store.Store) *SnapshotHandler {
	return &SnapshotHandler{store: s}
}

// Export returns the whole document as one snapshot object.
func (h *SnapshotHandler) Export(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="planner-export.json"`)
	c.JSON(http.StatusOK, h.store.ExportAll())
}

// Import replaces every collection with the posted snapshot. The payload is
// validated in full before anything is committed, so a bad import leaves the
// existing data untouched.
func (h *SnapshotHandler) Import(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed snapshot: " + err.Error()})
		return
	}

	if err := h.store.Import(snapshot); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "import complete",
		"tasks":   len(snapshot.Tasks),
		"courses": len(snapshot.Courses),
	})
}
