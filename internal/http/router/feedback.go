package router

import (
	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/handler"
)

func FeedbackRouter(rg *gin.RouterGroup, h *handler.FeedbackHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/vote", h.Vote)
	rg.GET("/:id/comments", h.ListComments)
}
