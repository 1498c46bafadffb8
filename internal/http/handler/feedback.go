package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/dto"
	"upvote.app/relay/internal/service"
)

type FeedbackHandler struct {
	posts    service.FeedbackService
	comments service.CommentService
}

func NewFeedbackHandler(posts service.FeedbackService, comments service.CommentService) *FeedbackHandler {
	return &FeedbackHandler{posts: posts, comments: comments}
}

// List returns posts filtered by category, status and search text.
func (h *FeedbackHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	posts := h.posts.List(ctx, q.ToFilters())
	c.JSON(http.StatusOK, gin.H{"posts": dto.ToPostResponses(posts)})
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		writeError(c, err, "get feedback post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	post, err := h.posts.Create(ctx, req.ToModel())
	if err != nil {
		writeError(c, err, "create feedback post")
		return
	}

	slog.InfoContext(ctx, "feedback post created via API", "post_id", post.ID)
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	post, err := h.posts.Update(ctx, id, req.ToPatch())
	if err != nil {
		writeError(c, err, "update feedback post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(ctx, id); err != nil {
		writeError(c, err, "delete feedback post")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedbackHandler) Vote(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.Vote(ctx, id)
	if err != nil {
		writeError(c, err, "vote on feedback post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// ListComments returns the post's comment threads.
func (h *FeedbackHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	threads := h.comments.ListByPost(ctx, strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentThreadResponses(threads)})
}
