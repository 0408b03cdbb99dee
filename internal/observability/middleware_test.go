package observability

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(logger), MetricsAndTracing(noop.NewTracerProvider().Tracer("test")))
	r.GET("/things/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "request_id": GetRequestID(c)})
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated when absent"},
		{name: "propagated when present", incoming: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" {
				t.Fatal("response has no request id header")
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("request id = %q, want %q", got, tt.incoming)
			}
			if !strings.Contains(w.Body.String(), got) {
				t.Errorf("handler did not see request id %q: %s", got, w.Body.String())
			}
		})
	}
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(slog.New(slog.NewTextHandler(&buf, nil)))

	req := httptest.NewRequest(http.MethodGet, "/things/42", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{"request completed", "path=/things/42", "status=200"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestMetricsAndTracing_CountsByRoute(t *testing.T) {
	r := newTestRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	counter := RequestCounter.WithLabelValues("/things/:id", http.MethodGet, "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("request counter delta = %v, want 3", got)
	}
}
