package recommendation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/events"
	"recipe-recommender/internal/core/pipeline"
	"recipe-recommender/internal/pkg/common"
)

// Service 推薦流程
type Service interface {
	Recommend(ctx context.Context, userID string, limit int) (*pipeline.Result, error)
	Personalize(ctx context.Context, userID, recipeID string) (*pipeline.Recommendation, error)
	RecordFeedback(ctx context.Context, event domain.InteractionEvent) error
}

// RecommendationRequest 推薦請求
type RecommendationRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Limit  int    `json:"limit" binding:"omitempty,min=1,max=20"`
}

// PersonalizeRequest 單一食譜個人化請求
type PersonalizeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// FeedbackRequest 互動回饋
type FeedbackRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	RecipeID string `json:"recipe_id" binding:"required"`
	Event    string `json:"event" binding:"required"`
}

// Handler 推薦 API
type Handler struct {
	svc   Service
	debug bool
}

// NewHandler 建立推薦 API；debug 時錯誤回應附上原始錯誤
func NewHandler(svc Service, debug bool) *Handler {
	return &Handler{svc: svc, debug: debug}
}

// HandleRecommend POST /api/v1/recommendations
func (h *Handler) HandleRecommend(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidRequest.WithError(err))
		return
	}

	common.LogInfo("開始處理推薦請求",
		zap.String("request_id", requestid.Get(c)),
		zap.String("user_id", req.UserID),
		zap.Int("limit", req.Limit),
	)

	result, err := h.svc.Recommend(c.Request.Context(), req.UserID, req.Limit)
	if err != nil {
		h.writeError(c, mapError(err))
		return
	}

	common.LogInfo("推薦請求完成",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("recommendations", len(result.Recommendations)),
		zap.Int("backfilled", result.BackfilledCount),
	)
	c.JSON(http.StatusOK, result)
}

// HandlePersonalize POST /api/v1/recipes/:id/personalize
func (h *Handler) HandlePersonalize(c *gin.Context) {
	var req PersonalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidRequest.WithError(err))
		return
	}

	rec, err := h.svc.Personalize(c.Request.Context(), req.UserID, c.Param("id"))
	if err != nil {
		h.writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandleFeedback POST /api/v1/feedback
func (h *Handler) HandleFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidRequest.WithError(err))
		return
	}

	event := domain.InteractionEvent{
		UserID:   req.UserID,
		RecipeID: req.RecipeID,
		Event:    domain.EventType(req.Event),
	}
	if err := h.svc.RecordFeedback(c.Request.Context(), event); err != nil {
		h.writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

func (h *Handler) writeError(c *gin.Context, e *common.CustomError) {
	if e.Err != nil {
		_ = c.Error(e.Err)
	}
	c.AbortWithStatusJSON(e.Status, e.Response(h.debug))
}

// mapError 領域錯誤轉為 API 錯誤
func mapError(err error) *common.CustomError {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return common.ErrProfileNotFound.WithError(err)
	case errors.Is(err, domain.ErrRecipeNotFound):
		return common.ErrRecipeNotFound.WithError(err)
	case errors.Is(err, domain.ErrInvalidProfile):
		return common.ErrInvalidProfile.WithError(err)
	case errors.Is(err, pipeline.ErrInvalidEvent):
		return common.ErrInvalidEvent.WithError(err)
	case errors.Is(err, events.ErrQueueFull), errors.Is(err, events.ErrClosed):
		return common.ErrServiceUnavailable.WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.WithError(err)
	case errors.Is(err, context.Canceled):
		return common.ErrRequestTimeout.WithError(err)
	default:
		return common.ErrInternalError.WithError(err)
	}
}
