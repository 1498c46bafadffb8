package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/dto"
	"upvote.app/relay/internal/service"
)

type CommentHandler struct {
	comments service.CommentService
}

func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List returns every comment, flat.
func (h *CommentHandler) List(c *gin.Context) {
	comments := h.comments.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentResponses(comments)})
}

func (h *CommentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(ctx, id)
	if err != nil {
		writeError(c, err, "get comment")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	comment, err := h.comments.Create(ctx, req.ToModel())
	if err != nil {
		writeError(c, err, "create comment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	comment, err := h.comments.Update(ctx, id, req.ToPatch())
	if err != nil {
		writeError(c, err, "update comment")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(ctx, id); err != nil {
		writeError(c, err, "delete comment")
		return
	}
	c.Status(http.StatusNoContent)
}
