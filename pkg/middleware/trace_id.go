package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
)

type CtxKey string

const CtxKeyTraceID CtxKey = "trace_id"

// TraceID tags every inbound request with a fresh identifier so the whole
// request path, outbound provider call included, can be correlated in logs.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), CtxKeyTraceID, ksuid.New().String())
		c.Request = c.Request.Clone(ctx)

		c.Next()
	}
}

// TraceIDFromContext returns the request's trace ID, if one was attached.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(CtxKeyTraceID).(string)
	return s, ok
}
