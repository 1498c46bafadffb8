package router

import (
	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/handler"
)

// RoadmapRouter sets up roadmap routes
// - reads are public
// - stage, position and delete require the admin API key
func RoadmapRouter(rg *gin.RouterGroup, h *handler.RoadmapHandler, requireAdmin gin.HandlerFunc) {
	rg.GET("", h.Get)
	rg.GET("/:id", h.GetItem)
	rg.GET("/:id/comments", h.ListComments)

	admin := rg.Group("")
	admin.Use(requireAdmin)
	{
		admin.PUT("/posts/:postId/stage", h.UpdateStage)
		admin.PATCH("/:id/position", h.UpdatePosition)
		admin.DELETE("/:id", h.Delete)
	}
}
