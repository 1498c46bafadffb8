package router

import (
	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/handler"
)

// ChangelogRouter sets up changelog routes. Writes require the admin API key.
func ChangelogRouter(rg *gin.RouterGroup, h *handler.ChangelogHandler, requireAdmin gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	admin := rg.Group("")
	admin.Use(requireAdmin)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
