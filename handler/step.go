package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/Nizam1989/Nizam-CP-sub001/middleware"
	"github.com/Nizam1989/Nizam-CP-sub001/workflow"
)

type StepHandler struct {
	engine *workflow.Engine
}

func NewStepHandler(engine *workflow.Engine) *StepHandler {
	return &StepHandler{engine: engine}
}

type UpdateStepRequest struct {
	Status      string         `json:"status" binding:"required"`
	CompletedBy string         `json:"completed_by"`
	AssignedTo  string         `json:"assigned_to"`
	Data        datatypes.JSON `json:"data"`
}

// List returns a job's steps in route order
func (h *StepHandler) List(c *gin.Context) {
	steps, err := h.engine.ListSteps(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"steps": steps, "count": len(steps)})
}

// Update applies a status change to a step addressed by (job, step number)
func (h *StepHandler) Update(c *gin.Context) {
	stepNumber, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step number"})
		return
	}

	var req UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	step, err := h.engine.UpdateStep(c.Request.Context(), workflow.UpdateStepInput{
		JobID:       c.Param("id"),
		StepNumber:  stepNumber,
		Status:      req.Status,
		CompletedBy: completedBy(c, req),
		AssignedTo:  req.AssignedTo,
		Data:        req.Data,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, step)
}

// UpdateByID applies a status change to a step addressed by its id
func (h *StepHandler) UpdateByID(c *gin.Context) {
	var req UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	step, err := h.engine.UpdateStep(c.Request.Context(), workflow.UpdateStepInput{
		StepID:      c.Param("id"),
		Status:      req.Status,
		CompletedBy: completedBy(c, req),
		AssignedTo:  req.AssignedTo,
		Data:        req.Data,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, step)
}

// completedBy defaults the completing actor to the authenticated user
func completedBy(c *gin.Context, req UpdateStepRequest) string {
	if req.CompletedBy != "" {
		return req.CompletedBy
	}
	return middleware.GetUsername(c)
}
