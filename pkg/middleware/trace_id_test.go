package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/geocodry/geocodry/pkg/middleware"
)

func TestTraceIDTagsTheRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotTraceID string
	var found bool

	r := gin.New()
	r.Use(middleware.TraceID())
	r.GET("/", func(c *gin.Context) {
		gotTraceID, found = middleware.TraceIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !found {
		t.Fatal("expected a trace ID in the request context")
	}

	if gotTraceID == "" {
		t.Fatal("expected a non-empty trace ID")
	}
}

func TestTraceIDsDifferPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	seen := map[string]bool{}

	r := gin.New()
	r.Use(middleware.TraceID())
	r.GET("/", func(c *gin.Context) {
		id, _ := middleware.TraceIDFromContext(c.Request.Context())
		seen[id] = true
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct trace IDs, got %d", len(seen))
	}
}
