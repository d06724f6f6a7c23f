package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/presentation/http/dto/response"
	"github.com/cekapguard/agency-api/pkg/storage"
)

// AttachmentHandler handles document attachment uploads
type AttachmentHandler struct {
	store *storage.LocalStorage
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(store *storage.LocalStorage) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

// Upload stores an attachment (contract scan, supporting paperwork)
// and returns the URL to embed on the document.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A file is required")
		return
	}

	url, err := h.store.Upload(file)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, "Attachment uploaded", gin.H{"url": url})
}
