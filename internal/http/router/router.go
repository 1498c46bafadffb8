package router

import (
	"github.com/gin-gonic/gin"

	"upvote.app/relay/internal/http/handler"
	"upvote.app/relay/internal/http/middleware"
	"upvote.app/relay/internal/service"
)

type RouterConfig struct {
	AdminAPIKey     string
	AllowedOrigins  []string
	RequestIDHeader string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.RequestIDHeader))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAdmin := middleware.RequireAdminAPIKey(cfg.AdminAPIKey)
	comments := services.Comments()

	v1 := router.Group("/api/v1")
	{
		feedbackHandler := handler.NewFeedbackHandler(services.Feedback(), comments)
		FeedbackRouter(v1.Group("/posts"), feedbackHandler)

		commentHandler := handler.NewCommentHandler(comments)
		CommentRouter(v1.Group("/comments"), commentHandler)

		roadmapHandler := handler.NewRoadmapHandler(services.Roadmap(), comments)
		RoadmapRouter(v1.Group("/roadmap"), roadmapHandler, requireAdmin)

		changelogHandler := handler.NewChangelogHandler(services.Changelog())
		ChangelogRouter(v1.Group("/changelog"), changelogHandler, requireAdmin)
	}
}
