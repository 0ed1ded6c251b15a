package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessCounters(t *testing.T) {
	before := testutil.ToFloat64(safetyLevelsTotal.WithLabelValues("risky"))
	RecordSafetyLevel("risky")
	RecordSafetyLevel("risky")
	assert.Equal(t, before+2, testutil.ToFloat64(safetyLevelsTotal.WithLabelValues("risky")))

	hits := testutil.ToFloat64(cacheOperations.WithLabelValues("memory", "hit"))
	RecordCacheResult("memory", true)
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheOperations.WithLabelValues("memory", "hit")))

	failed := testutil.ToFloat64(aiRequestsTotal.WithLabelValues("error"))
	RecordAIRequest(errors.New("timeout"))
	assert.Equal(t, failed+1, testutil.ToFloat64(aiRequestsTotal.WithLabelValues("error")))

	SetEventQueueLength(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(eventQueueLength))
	ObserveStage("rank", time.Millisecond)
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping", "200")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recipe_recommender_http_requests_total")
}
