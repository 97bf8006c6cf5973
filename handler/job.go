package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nizam1989/Nizam-CP-sub001/middleware"
	"github.com/Nizam1989/Nizam-CP-sub001/workflow"
)

type JobHandler struct {
	engine *workflow.Engine
}

func NewJobHandler(engine *workflow.Engine) *JobHandler {
	return &JobHandler{engine: engine}
}

type CreateJobRequest struct {
	JobNumber   string `json:"job_number" binding:"required"`
	Title       string `json:"title" binding:"required"`
	ProductType string `json:"product_type"`
	AssignedTo  string `json:"assigned_to"`
	TotalStages int    `json:"total_stages" binding:"required"`
}

// Create handles job creation. The authenticated user is the creator.
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	job, err := h.engine.CreateJob(c.Request.Context(), workflow.CreateJobInput{
		JobNumber:   req.JobNumber,
		Title:       req.Title,
		ProductType: req.ProductType,
		CreatedBy:   middleware.GetUsername(c),
		AssignedTo:  req.AssignedTo,
		TotalStages: req.TotalStages,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// List returns jobs, newest first
func (h *JobHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	jobs, err := h.engine.ListJobs(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// Get returns one job with its steps
func (h *JobHandler) Get(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.engine.GetJob(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	steps, err := h.engine.ListSteps(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job, "steps": steps})
}

type HoldJobRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Hold places a job on manual hold
func (h *JobHandler) Hold(c *gin.Context) {
	var req HoldJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	job, err := h.engine.HoldJob(c.Request.Context(), c.Param("id"), req.Reason, middleware.GetUsername(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// Resume takes a job off hold
func (h *JobHandler) Resume(c *gin.Context) {
	job, err := h.engine.ResumeJob(c.Request.Context(), c.Param("id"), middleware.GetUsername(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
