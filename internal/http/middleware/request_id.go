package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"upvote.app/relay/common/logger"
)

const DefaultRequestIDHeader = "X-Request-Id"

// RequestID reuses the caller's request id or mints one, echoes it back in the
// response header, and attaches it to the request context's log fields.
func RequestID(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return func(c *gin.Context) {
		requestID := c.GetHeader(header)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Header(header, requestID)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: &requestID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
