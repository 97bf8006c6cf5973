package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nizam1989/Nizam-CP-sub001/workflow"
)

type UpdatesHandler struct {
	engine *workflow.Engine
}

func NewUpdatesHandler(engine *workflow.Engine) *UpdatesHandler {
	return &UpdatesHandler{engine: engine}
}

// List returns update-feed records after the given timestamp, newest first.
// Terminals poll this with their last-seen timestamp to catch up without
// re-reading the job table.
func (h *UpdatesHandler) List(c *gin.Context) {
	since := time.Time{}
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since timestamp, want RFC3339"})
			return
		}
		since = parsed
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	updates, err := h.engine.ListUpdatesSince(c.Request.Context(), since, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updates":   updates,
		"count":     len(updates),
		"server_ts": time.Now().Format(time.RFC3339Nano),
	})
}
