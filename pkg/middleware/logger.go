package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one structured record per inbound request once the handler
// chain has run.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t0 := time.Now()

		c.Next()

		slog.InfoContext(c.Request.Context(), "inbound request",
			slog.Group("http",
				slog.Group("request",
					"duration_ms", time.Since(t0).Milliseconds(),
					"method", c.Request.Method,
					slog.Group("url",
						"path", c.Request.URL.Path,
						"query_params", c.Request.URL.Query(),
					),
				),
				slog.Group("response",
					"status", c.Writer.Status(),
					"size", c.Writer.Size(),
				),
			),
		)
	}
}
