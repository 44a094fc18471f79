package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestMetrics_RequestPassesThroughAndIsCounted(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mw.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", mw.Code)
	}
	body := mw.Body.String()
	for _, metric := range []string{"http_requests_total", "http_request_duration_seconds", "http_requests_inflight"} {
		if !strings.Contains(body, metric) {
			t.Fatalf("/metrics missing %s", metric)
		}
	}
}
