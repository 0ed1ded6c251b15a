package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipe_recommender"

// 指標在套件載入時註冊一次
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation runs by outcome",
		},
		[]string{"outcome"},
	)
	safetyLevelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safety_assessments_total",
			Help:      "Safety assessments by level",
		},
		[]string{"level"},
	)
	nutritionSourcesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nutrition_resolutions_total",
			Help:      "Nutrition resolutions by source and method",
		},
		[]string{"source", "method"},
	)
	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"stage"},
	)
	eventWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_write_failures_total",
			Help:      "Interaction event batches that could not be written",
		},
	)
	eventQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_queue_length",
			Help:      "Event batches waiting in the dispatcher queue",
		},
	)
	cacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Candidate cache lookups by result",
		},
		[]string{"backend", "result"},
	)
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Rationale requests by status",
		},
		[]string{"status"},
	)
)

// RecordRecommendation 記錄一次推薦結果（ok, no_candidates, profile_not_found, error）
func RecordRecommendation(outcome string) {
	recommendationsTotal.WithLabelValues(outcome).Inc()
}

// RecordSafetyLevel 記錄安全評估等級
func RecordSafetyLevel(level string) {
	safetyLevelsTotal.WithLabelValues(level).Inc()
}

// RecordNutritionSource 記錄營養資料來源
func RecordNutritionSource(source, method string) {
	nutritionSourcesTotal.WithLabelValues(source, method).Inc()
}

// ObserveStage 記錄流程階段耗時
func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordEventWriteFailure 事件寫入失敗
func RecordEventWriteFailure() {
	eventWriteFailures.Inc()
}

// SetEventQueueLength 更新事件佇列長度
func SetEventQueueLength(n int) {
	eventQueueLength.Set(float64(n))
}

// RecordCacheResult 記錄快取命中與否
func RecordCacheResult(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheOperations.WithLabelValues(backend, result).Inc()
}

// RecordAIRequest 記錄理由產生請求
func RecordAIRequest(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	aiRequestsTotal.WithLabelValues(status).Inc()
}

// GinMiddleware 收集 HTTP 請求指標
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler 提供 /metrics 端點
func Handler() http.Handler {
	return promhttp.Handler()
}
