package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/api/handlers/health"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/events"
	"recipe-recommender/internal/core/pipeline"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

type fakeRecommender struct {
	result    *pipeline.Result
	rec       *pipeline.Recommendation
	err       error
	lastLimit int
	feedback  []domain.InteractionEvent
}

func (f *fakeRecommender) Recommend(_ context.Context, userID string, limit int) (*pipeline.Result, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := *f.result
	out.UserID = userID
	return &out, nil
}

func (f *fakeRecommender) Personalize(_ context.Context, _, recipeID string) (*pipeline.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *f.rec
	out.ID = recipeID
	return &out, nil
}

func (f *fakeRecommender) RecordFeedback(_ context.Context, event domain.InteractionEvent) error {
	if !domain.IsValidEventType(event.Event) {
		return pipeline.ErrInvalidEvent
	}
	if f.err != nil {
		return f.err
	}
	f.feedback = append(f.feedback, event)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Version: "test"},
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
	}
}

func newFakeRecommender() *fakeRecommender {
	return &fakeRecommender{
		result: &pipeline.Result{
			Recommendations: []pipeline.Recommendation{{ID: "53025", Title: "Chickpea Spinach Curry"}},
			Messages:        []string{"Found 1 candidate recipes"},
		},
		rec: &pipeline.Recommendation{Title: "Dal fry"},
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRecommendEndpoint(t *testing.T) {
	svc := newFakeRecommender()
	r := SetupRouter(testConfig(), Dependencies{Recommender: svc})

	w := doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"user_id":"demo-peanut","limit":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 3, svc.lastLimit)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "demo-peanut", result.UserID)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "53025", result.Recommendations[0].ID)
}

func TestRecommendEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"missing user", `{"limit":3}`, nil, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"limit too large", `{"user_id":"u1","limit":500}`, nil, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"unknown profile", `{"user_id":"u1"}`, domain.ErrProfileNotFound, http.StatusNotFound, common.ErrCodeProfileNotFound},
		{"invalid profile", `{"user_id":"u1"}`, domain.ErrInvalidProfile, http.StatusUnprocessableEntity, common.ErrCodeInvalidProfile},
		{"unexpected", `{"user_id":"u1"}`, errors.New("boom"), http.StatusInternalServerError, common.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeRecommender()
			svc.err = tt.err
			r := SetupRouter(testConfig(), Dependencies{Recommender: svc})

			w := doJSON(r, http.MethodPost, "/api/v1/recommendations", tt.body)
			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Empty(t, resp.Details)
		})
	}
}

func TestPersonalizeEndpoint(t *testing.T) {
	svc := newFakeRecommender()
	r := SetupRouter(testConfig(), Dependencies{Recommender: svc})

	w := doJSON(r, http.MethodPost, "/api/v1/recipes/52785/personalize", `{"user_id":"demo-peanut"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var rec pipeline.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "52785", rec.ID)

	svc.err = domain.ErrRecipeNotFound
	w = doJSON(r, http.MethodPost, "/api/v1/recipes/nope/personalize", `{"user_id":"demo-peanut"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrCodeRecipeNotFound, decodeError(t, w).Code)
}

func TestFeedbackEndpoint(t *testing.T) {
	svc := newFakeRecommender()
	r := SetupRouter(testConfig(), Dependencies{Recommender: svc})

	w := doJSON(r, http.MethodPost, "/api/v1/feedback", `{"user_id":"u1","recipe_id":"52785","event":"like"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, svc.feedback, 1)
	assert.Equal(t, domain.EventLike, svc.feedback[0].Event)

	w = doJSON(r, http.MethodPost, "/api/v1/feedback", `{"user_id":"u1","recipe_id":"52785","event":"poke"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrCodeInvalidEvent, decodeError(t, w).Code)

	svc.err = fmt.Errorf("failed to record feedback: %w", events.ErrQueueFull)
	w = doJSON(r, http.MethodPost, "/api/v1/feedback", `{"user_id":"u1","recipe_id":"52785","event":"cooked"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, common.ErrCodeServiceUnavailable, decodeError(t, w).Code)
}

func TestDebugModeIncludesErrorDetails(t *testing.T) {
	cfg := testConfig()
	cfg.App.Debug = true
	svc := newFakeRecommender()
	svc.err = errors.New("database is locked")
	r := SetupRouter(cfg, Dependencies{Recommender: svc})

	w := doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"user_id":"u1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "database is locked", decodeError(t, w).Details)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute, Burst: 1}
	r := SetupRouter(cfg, Dependencies{Recommender: newFakeRecommender()})

	w := doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"user_id":"u1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"user_id":"u2"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestDeduplication(t *testing.T) {
	dedup := middleware.NewDeduplicator(time.Minute)
	defer dedup.Close()
	r := SetupRouter(testConfig(), Dependencies{Recommender: newFakeRecommender(), Deduplicator: dedup})

	body := `{"user_id":"u1","recipe_id":"52785","event":"save"}`
	assert.Equal(t, http.StatusAccepted, doJSON(r, http.MethodPost, "/api/v1/feedback", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(r, http.MethodPost, "/api/v1/feedback", body).Code)
	assert.Equal(t, http.StatusAccepted, doJSON(r, http.MethodPost, "/api/v1/feedback",
		`{"user_id":"u1","recipe_id":"52785","event":"cooked"}`).Code)
}

func TestBodySizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodyBytes = 16
	r := SetupRouter(cfg, Dependencies{Recommender: newFakeRecommender()})

	w := doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"user_id":"a-rather-long-user-id"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	queue := func() events.Status { return events.Status{QueueLength: 2, MaxQueueSize: 64, Workers: 1} }
	r := SetupRouter(testConfig(), Dependencies{
		Recommender: newFakeRecommender(),
		Queue:       queue,
		Checks: map[string]health.Check{
			"database": func(context.Context) error { return nil },
		},
	})

	w := doJSON(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp health.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	require.NotNil(t, resp.Queue)
	assert.Equal(t, 2, resp.Queue.QueueLength)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/live", "").Code)

	w = doJSON(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipe_recommender_http_requests_total")

	w = doJSON(r, http.MethodGet, "/api/v2/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrCodeNotFound, decodeError(t, w).Code)

	w = doJSON(r, http.MethodGet, "/api/v1/recommendations", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, common.ErrCodeMethodNotAllowed, decodeError(t, w).Code)
}

func TestReadinessFailsWhenDependencyIsDown(t *testing.T) {
	r := SetupRouter(testConfig(), Dependencies{
		Recommender: newFakeRecommender(),
		Checks: map[string]health.Check{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		},
	})

	w := doJSON(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func init() {
	gin.SetMode(gin.TestMode)
}
