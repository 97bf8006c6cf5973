package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nizam1989/Nizam-CP-sub001/store"
	"github.com/Nizam1989/Nizam-CP-sub001/workflow"
)

// writeError maps the workflow error taxonomy onto HTTP status classes.
// Conflict, not-found and validation failures must stay distinguishable;
// infrastructure failures are opaque but retryable.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateJobNumber):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
