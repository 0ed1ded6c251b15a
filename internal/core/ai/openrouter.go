package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/infrastructure/monitoring"
	"recipe-recommender/internal/pkg/common"
)

const systemPrompt = "You write one or two friendly sentences explaining why a recipe suits a user. " +
	"Never give medical advice. Do not contradict the safety level. Answer in plain English without markdown."

// ErrEmptyRationale AI 回傳空白內容
var ErrEmptyRationale = errors.New("empty rationale from model")

// OpenRouterWriter 透過 OpenRouter chat completions 產生推薦理由
type OpenRouterWriter struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewOpenRouterWriter 創建 OpenRouter 理由產生器
func NewOpenRouterWriter(cfg config.OpenRouterConfig) *OpenRouterWriter {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-recommender.local").
		SetHeader("X-Title", "Recipe Recommender")

	return &OpenRouterWriter{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// WriteRationale 實作 domain.RationaleWriter
func (w *OpenRouterWriter) WriteRationale(ctx context.Context, in domain.RationaleInput) (string, error) {
	start := time.Now()
	text, err := w.complete(ctx, buildPrompt(in))
	common.LogAICall(w.model, time.Since(start), err)
	monitoring.RecordAIRequest(err)
	return text, err
}

func (w *OpenRouterWriter) complete(ctx context.Context, prompt string) (string, error) {
	req := common.ChatRequest{
		Model: w.model,
		Messages: []common.ChatMessage{
			common.TextMessage("system", systemPrompt),
			common.TextMessage("user", prompt),
		},
		MaxTokens:   w.maxTokens,
		Temperature: 0.4,
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned status %d", resp.StatusCode())
	}

	var result common.ChatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyRationale
	}
	return text, nil
}

// buildPrompt 只放入推薦所需的摘要，不含過敏原或病史
func buildPrompt(in domain.RationaleInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s\n", in.Title)
	fmt.Fprintf(&b, "Diet style: %s\n", in.DietStyle)
	fmt.Fprintf(&b, "Health goal: %s\n", in.HealthGoal)
	fmt.Fprintf(&b, "Per serving: %.0f kcal, %.1f g protein\n", in.CaloriesKcal, in.ProteinG)
	if len(in.ReasonParts) > 0 {
		fmt.Fprintf(&b, "Highlights: %s\n", strings.Join(in.ReasonParts, "; "))
	}
	if in.PortionScaled {
		b.WriteString("Portions were resized to fit the calorie target.\n")
	}
	fmt.Fprintf(&b, "Safety level: %s", in.SafetyLevel)
	return b.String()
}
