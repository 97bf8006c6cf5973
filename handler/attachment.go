package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nizam1989/Nizam-CP-sub001/middleware"
	"github.com/Nizam1989/Nizam-CP-sub001/model"
	"github.com/Nizam1989/Nizam-CP-sub001/pkg/logger"
	"github.com/Nizam1989/Nizam-CP-sub001/service"
	"github.com/Nizam1989/Nizam-CP-sub001/workflow"
)

type AttachmentHandler struct {
	engine  *workflow.Engine
	storage *service.AttachmentStorage
}

func NewAttachmentHandler(engine *workflow.Engine, storage *service.AttachmentStorage) *AttachmentHandler {
	return &AttachmentHandler{engine: engine, storage: storage}
}

// Upload stores a job document: blob first, then the index row and feed
// record. A failed index write leaves an orphan blob, which is cleaned up
// best-effort.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	jobID := c.Param("id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	att := &model.Attachment{
		ID:          uuid.New().String(),
		JobID:       jobID,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		UploadedBy:  middleware.GetUsername(c),
		CreatedAt:   time.Now(),
	}
	att.ObjectName = h.storage.ObjectName(jobID, att.ID, header.Filename)

	ctx := c.Request.Context()
	if err := h.storage.Upload(ctx, att.ObjectName, file, header.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	if err := h.engine.AddAttachment(ctx, att); err != nil {
		if delErr := h.storage.Delete(ctx, att.ObjectName); delErr != nil {
			logger.Warn(ctx, "orphan attachment blob left behind",
				"object", att.ObjectName,
				"error", delErr,
			)
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, att)
}

// List returns a job's attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	atts, err := h.engine.ListAttachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": atts, "count": len(atts)})
}

// Download redirects to a presigned URL for the attachment blob
func (h *AttachmentHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	att, err := h.engine.GetAttachment(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	url, err := h.storage.PresignedURL(ctx, att.ObjectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "filename": att.Filename})
}

// Delete removes an attachment: index row and feed record first, blob after
func (h *AttachmentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	att, err := h.engine.RemoveAttachment(ctx, c.Param("id"), middleware.GetUsername(c))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.storage.Delete(ctx, att.ObjectName); err != nil {
		logger.Warn(ctx, "failed to delete attachment blob",
			"object", att.ObjectName,
			"error", err,
		)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": att.ID})
}
