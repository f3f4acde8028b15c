package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/logging"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Gin(GinConfig{
		SkipPaths:  []string{"/health"},
		Module:     logging.Module("feeding"),
		TracerName: "test",
	}))
	r.Use(PanicRecoveryGin())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestGin_RequestID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantEcho string
	}{
		{name: "propagates caller ID", header: "req-42", wantEcho: "req-42"},
		{name: "generates an ID", header: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/echo", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" {
				t.Fatal("response is missing the request ID header")
			}
			if w.Body.String() != got {
				t.Errorf("context request ID %q != header %q", w.Body.String(), got)
			}
			if tt.wantEcho != "" && got != tt.wantEcho {
				t.Errorf("request ID = %q, want %q", got, tt.wantEcho)
			}
		})
	}
}

func TestGin_SkipPaths(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) != "" {
		t.Error("skipped paths should not be instrumented")
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
