package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

func TestTemplate(t *testing.T) {
	tests := []struct {
		name string
		in   domain.RationaleInput
		want string
	}{
		{
			name: "no reasons",
			in:   domain.RationaleInput{DietStyle: domain.DietVegan},
			want: "Matches your vegan diet and nutritional needs.",
		},
		{
			name: "reasons joined",
			in: domain.RationaleInput{
				DietStyle:   domain.DietLowCarb,
				ReasonParts: []string{"low in calories for weight loss", "quick to cook"},
			},
			want: "This dish is low in calories for weight loss, quick to cook and matches your low-carb diet.",
		},
		{
			name: "empty diet falls back to balanced",
			in:   domain.RationaleInput{PortionScaled: true},
			want: "Matches your balanced diet and nutritional needs; portions were adjusted to fit your calorie target.",
		},
		{
			name: "risky adds review note",
			in:   domain.RationaleInput{DietStyle: domain.DietKeto, SafetyLevel: domain.LevelRisky},
			want: "Matches your keto diet and nutritional needs. Review the safety notes before cooking.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Template(tt.in))
		})
	}
}

func TestTemplateWriter(t *testing.T) {
	text, err := TemplateWriter{}.WriteRationale(context.Background(), domain.RationaleInput{DietStyle: domain.DietPaleo})
	require.NoError(t, err)
	assert.Equal(t, "Matches your paleo diet and nutritional needs.", text)
}

func newTestWriter(t *testing.T, handler http.HandlerFunc) *OpenRouterWriter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenRouterWriter(config.OpenRouterConfig{
		APIKey:    "sk-test",
		BaseURL:   srv.URL,
		Model:     "test/model",
		MaxTokens: 64,
		Timeout:   2 * time.Second,
	})
}

func TestOpenRouterWriterSuccess(t *testing.T) {
	var got common.ChatRequest
	w := newTestWriter(t, func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A light, protein-rich lunch.  "}}]}`))
	})

	text, err := w.WriteRationale(context.Background(), domain.RationaleInput{
		Title:       "Lentil Soup",
		DietStyle:   domain.DietVegan,
		SafetyLevel: domain.LevelSafe,
		Warnings:    []string{"contains peanuts"},
	})

	require.NoError(t, err)
	assert.Equal(t, "A light, protein-rich lunch.", text)
	assert.Equal(t, "test/model", got.Model)
	assert.Equal(t, 64, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	prompt := got.Messages[1].Content[0].Text
	assert.Contains(t, prompt, "Lentil Soup")
	assert.NotContains(t, prompt, "peanuts", "warnings are not sent to the model")
}

func TestOpenRouterWriterErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"error status", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`},
		{"malformed body", http.StatusOK, `{"choices":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWriter(t, func(rw http.ResponseWriter, r *http.Request) {
				rw.WriteHeader(tt.status)
				_, _ = rw.Write([]byte(tt.body))
			})

			text, err := w.WriteRationale(context.Background(), domain.RationaleInput{Title: "Soup"})
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}
