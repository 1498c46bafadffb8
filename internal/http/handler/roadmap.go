package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/dto"
	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/service"
)

type RoadmapHandler struct {
	roadmap  service.RoadmapService
	comments service.CommentService
}

func NewRoadmapHandler(roadmap service.RoadmapService, comments service.CommentService) *RoadmapHandler {
	return &RoadmapHandler{roadmap: roadmap, comments: comments}
}

// Get returns the roadmap grouped into planned, in-progress and completed.
func (h *RoadmapHandler) Get(c *gin.Context) {
	roadmap := h.roadmap.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToRoadmapResponse(roadmap))
}

func (h *RoadmapHandler) GetItem(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.roadmap.GetByID(ctx, id)
	if err != nil {
		writeError(c, err, "get roadmap item")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoadmapItemResponse(item))
}

func (h *RoadmapHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	threads := h.comments.ListByRoadmapItem(ctx, strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentThreadResponses(threads)})
}

// UpdateStage moves a feedback post onto the roadmap, or to another stage if it is already there (admin only)
func (h *RoadmapHandler) UpdateStage(c *gin.Context) {
	ctx := c.Request.Context()

	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	item, err := h.roadmap.UpdateStage(ctx, postID, model.Stage(req.Stage), req.PositionOrDefault())
	if err != nil {
		writeError(c, err, "update roadmap stage")
		return
	}

	slog.InfoContext(ctx, "roadmap stage updated via admin API",
		"roadmap_item_id", item.ID,
		"feedback_post_id", postID,
		"stage", item.Stage,
	)
	c.JSON(http.StatusOK, dto.ToRoadmapItemResponse(item))
}

// UpdatePosition reorders an item within its stage (admin only)
func (h *RoadmapHandler) UpdatePosition(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	item, err := h.roadmap.UpdatePosition(ctx, id, *req.Position)
	if err != nil {
		writeError(c, err, "update roadmap position")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoadmapItemResponse(item))
}

// Delete removes an item from the roadmap (admin only)
func (h *RoadmapHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.roadmap.Delete(ctx, id); err != nil {
		writeError(c, err, "delete roadmap item")
		return
	}
	c.Status(http.StatusNoContent)
}
