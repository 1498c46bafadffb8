package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/service"
	"upvote.app/relay/internal/store"
)

// writeError maps service and store errors onto a status and a {"error": ...} body.
// action names the failed operation in 500 responses, e.g. "update comment".
func writeError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()

	var opErr *store.OperationError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrAssociatedPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidComment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &opErr):
		slog.WarnContext(ctx, "record backend refused operation", "error", err, "action", action)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": opErr.Message})
	default:
		slog.ErrorContext(ctx, "failed to "+action, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

// pathID parses a numeric path parameter, writing a 400 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
