package transport

import (
	"github.com/ds124wfegd/comment-board/internal/metrics"
	"github.com/ds124wfegd/comment-board/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(commentHandler *CommentHandler) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	commentHandler.RegisterRoutes(&router.RouterGroup)

	router.GET("/health", commentHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
