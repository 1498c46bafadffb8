package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/dto"
	"upvote.app/relay/internal/service"
)

type ChangelogHandler struct {
	entries service.ChangelogService
}

func NewChangelogHandler(entries service.ChangelogService) *ChangelogHandler {
	return &ChangelogHandler{entries: entries}
}

// List returns entries newest release first.
func (h *ChangelogHandler) List(c *gin.Context) {
	entries := h.entries.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToChangelogResponses(entries)})
}

func (h *ChangelogHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.entries.GetByID(ctx, id)
	if err != nil {
		writeError(c, err, "get changelog entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToChangelogResponse(entry))
}

// Create publishes a new entry (admin only)
func (h *ChangelogHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateChangelogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	entry, err := h.entries.Create(ctx, req.ToModel())
	if err != nil {
		writeError(c, err, "create changelog entry")
		return
	}

	slog.InfoContext(ctx, "changelog entry created via admin API", "entry_id", entry.ID)
	c.JSON(http.StatusCreated, dto.ToChangelogResponse(entry))
}

// Update edits an entry (admin only)
func (h *ChangelogHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateChangelogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	entry, err := h.entries.Update(ctx, id, req.ToPatch())
	if err != nil {
		writeError(c, err, "update changelog entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToChangelogResponse(entry))
}

// Delete removes an entry (admin only)
func (h *ChangelogHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.entries.Delete(ctx, id); err != nil {
		writeError(c, err, "delete changelog entry")
		return
	}
	c.Status(http.StatusNoContent)
}
