package middleware

import (
	"time"

	"github.com/ds124wfegd/comment-board/internal/metrics"

	"github.com/gin-gonic/gin"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestFinished(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
