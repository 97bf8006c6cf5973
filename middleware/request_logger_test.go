package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/jobs", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	out := buf.String()
	if !strings.Contains(out, "request completed") {
		t.Error("Expected completion log entry")
	}
	if !strings.Contains(out, "path=/jobs") {
		t.Errorf("Expected path in log, got %s", out)
	}
	if !strings.Contains(out, "query=limit=5") {
		t.Errorf("Expected query in log, got %s", out)
	}

	// 4xx logs at warn level
	buf.Reset()
	req = httptest.NewRequest(http.MethodGet, "/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("Expected warn level for 4xx, got %s", buf.String())
	}
}
