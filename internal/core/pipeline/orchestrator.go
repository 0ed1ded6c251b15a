package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-recommender/internal/core/adapter"
	"recipe-recommender/internal/core/ai"
	"recipe-recommender/internal/core/allergen"
	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/instruction"
	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/core/ranking"
	"recipe-recommender/internal/core/safety"
	"recipe-recommender/internal/infrastructure/monitoring"
	"recipe-recommender/internal/pkg/common"
)

// Config 推薦流程參數
type Config struct {
	TopN             int
	MinViable        int
	CandidateLimit   int
	MealsPerDay      int
	FetchTimeout     time.Duration
	EventTimeout     time.Duration
	RationaleTimeout time.Duration
	CalorieBandMin   float64
	CalorieBandMax   float64

	// DefaultDailyCalories 檔案未設定每日熱量目標時使用
	DefaultDailyCalories int
}

// DefaultConfig 預設流程參數
func DefaultConfig() Config {
	return Config{
		TopN:             5,
		MinViable:        5,
		CandidateLimit:   50,
		MealsPerDay:      3,
		FetchTimeout:     5 * time.Second,
		EventTimeout:     3 * time.Second,
		RationaleTimeout: 4 * time.Second,
		CalorieBandMin:   0.25,
		CalorieBandMax:   2.0,

		DefaultDailyCalories: 2000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TopN <= 0 {
		c.TopN = d.TopN
	}
	if c.MinViable < 0 {
		c.MinViable = d.MinViable
	}
	if c.CandidateLimit < c.TopN {
		c.CandidateLimit = d.CandidateLimit
	}
	if c.MealsPerDay <= 0 {
		c.MealsPerDay = d.MealsPerDay
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.EventTimeout <= 0 {
		c.EventTimeout = d.EventTimeout
	}
	if c.RationaleTimeout <= 0 {
		c.RationaleTimeout = d.RationaleTimeout
	}
	if c.DefaultDailyCalories <= 0 {
		c.DefaultDailyCalories = d.DefaultDailyCalories
	}
	return c
}

// Dependencies 流程所需的元件與外部協作者
type Dependencies struct {
	Profiles      domain.ProfileStore
	Recipes       domain.RecipeStore
	Events        domain.EventRecorder
	Rationale     domain.RationaleWriter
	KnowledgeBase *allergen.KnowledgeBase
	Estimator     *nutrition.Estimator
	Validator     *safety.Validator
	Adapter       *adapter.Adapter
	Structurer    *instruction.Structurer
	Ranker        *ranking.Ranker
	Clock         func() time.Time
}

// Orchestrator 推薦流程：固定順序的階段，任一階段可提前結束
type Orchestrator struct {
	cfg      Config
	deps     Dependencies
	validate *validator.Validate
}

// NewOrchestrator 建立推薦流程；未提供的元件使用內建預設
func NewOrchestrator(deps Dependencies, cfg Config) (*Orchestrator, error) {
	if deps.Profiles == nil || deps.Recipes == nil || deps.Events == nil {
		return nil, errors.New("profile store, recipe store and event recorder are required")
	}
	cfg = cfg.withDefaults()

	if deps.KnowledgeBase == nil {
		deps.KnowledgeBase = allergen.Default()
	}
	if deps.Estimator == nil {
		deps.Estimator = nutrition.NewEstimator(nutrition.DefaultConfig())
	}
	if deps.Validator == nil {
		deps.Validator = safety.NewValidator(deps.KnowledgeBase, deps.Estimator, safety.DefaultRules(), safety.DefaultConfig())
	}
	if deps.Adapter == nil {
		deps.Adapter = adapter.NewAdapter(deps.KnowledgeBase, adapter.DefaultConfig())
	}
	if deps.Structurer == nil {
		deps.Structurer = instruction.NewStructurer(instruction.DefaultMaxSteps)
	}
	if deps.Ranker == nil {
		deps.Ranker = ranking.NewRanker(ranking.DefaultConfig())
	}
	if deps.Rationale == nil {
		deps.Rationale = ai.TemplateWriter{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &Orchestrator{cfg: cfg, deps: deps, validate: validator.New()}, nil
}

// Recommend 為使用者產生推薦清單；limit <= 0 時使用 TopN
//
// 只有找不到或無效的健康檔案、以及呼叫端取消會回傳錯誤，其餘情況都回傳完整結果。
func (o *Orchestrator) Recommend(ctx context.Context, userID string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = o.cfg.TopN
	}
	st := State{
		RequestID: requestIDFrom(ctx),
		UserID:    userID,
		Limit:     limit,
		Messages:  []string{},
	}

	stages := []namedStage{
		{"load_profile", o.loadProfile},
		{"build_filters", o.buildFilters},
		{"fetch_candidates", o.fetchCandidates},
		{"repair_nutrition", o.repairNutrition},
		{"validate_safety", o.validateSafety},
		{"adapt", o.adapt},
		{"rank", o.rank},
		{"structure_instructions", o.structureInstructions},
		{"finalize", o.finalize},
		{"record_events", o.recordEvents},
	}

	result, err := o.run(ctx, stages, st)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		monitoring.RecordRecommendation("profile_not_found")
	case err != nil:
		monitoring.RecordRecommendation("error")
	case len(result.Recommendations) == 0:
		monitoring.RecordRecommendation("empty")
	default:
		monitoring.RecordRecommendation("ok")
	}
	return result, err
}

// Personalize 針對單一食譜執行安全檢查、調整、步驟結構化與理由產生
//
// 危險食譜會附上阻擋原因回傳，但不做任何調整。
func (o *Orchestrator) Personalize(ctx context.Context, userID, recipeID string) (*Recommendation, error) {
	st := State{RequestID: requestIDFrom(ctx), UserID: userID, Limit: 1, Messages: []string{}}

	step, err := o.loadProfile(ctx, st)
	if err != nil {
		return nil, err
	}
	st = step.(Continue).State
	step, _ = o.buildFilters(ctx, st)
	st = step.(Continue).State

	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	recipe, err := o.deps.Recipes.GetRecipe(fetchCtx, recipeID)
	cancel()
	if err != nil {
		return nil, err
	}

	est := o.deps.Estimator.Resolve(*recipe)
	assessment := o.deps.Validator.ValidateWithNutrition(*recipe, est.Facts, st.Profile)
	monitoring.RecordSafetyLevel(string(assessment.Level))

	if assessment.Level == domain.LevelDangerous || assessment.Inconclusive {
		rec := o.unadapted(*recipe, est, assessment)
		return &rec, nil
	}

	adapted := o.deps.Adapter.Adapt(*recipe, est.Facts, st.Profile, st.Filters)
	ranked := o.deps.Ranker.Rank([]ranking.Candidate{{Adapted: adapted, Assessment: assessment, Source: est.Source}}, st.Profile, st.Filters, 1)
	f := finalist{
		Ranked: ranked[0],
		Method: est.Method,
		Steps:  o.deps.Structurer.Structure(adapted.Recipe.Instructions),
	}
	rec := o.recommendation(ctx, f, st.Filters)
	return &rec, nil
}

// RecordFeedback 記錄使用者互動事件
func (o *Orchestrator) RecordFeedback(ctx context.Context, event domain.InteractionEvent) error {
	if strings.TrimSpace(event.UserID) == "" || strings.TrimSpace(event.RecipeID) == "" {
		return fmt.Errorf("%w: user and recipe are required", ErrInvalidEvent)
	}
	if !domain.IsValidEventType(event.Event) {
		return fmt.Errorf("%w: %q", ErrInvalidEvent, event.Event)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = o.deps.Clock().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.EventTimeout)
	defer cancel()
	if err := o.deps.Events.RecordEvents(ctx, []domain.InteractionEvent{event}); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

// ErrInvalidEvent 不支援的互動事件
var ErrInvalidEvent = errors.New("invalid interaction event")

// run 依序執行各階段，記錄耗時並處理提前結束
func (o *Orchestrator) run(ctx context.Context, stages []namedStage, st State) (*Result, error) {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			// finalize 之後的階段皆為盡力而為，已完成的結果照常回傳
			if st.Result != nil {
				common.LogWarn("Request context ended before all stages ran, returning finished result",
					zap.String("request_id", st.RequestID),
					zap.String("skipped_stage", s.name),
					zap.Error(err),
				)
				return st.Result, nil
			}
			return nil, err
		}

		start := time.Now()
		step, err := s.run(ctx, st)
		elapsed := time.Since(start)
		common.LogStage(st.RequestID, s.name, elapsed, err)
		monitoring.ObserveStage(s.name, elapsed)
		if err != nil {
			return nil, err
		}

		switch v := step.(type) {
		case Continue:
			st = v.State
		case ShortCircuit:
			common.LogInfo("Recommendation finished early",
				zap.String("request_id", st.RequestID),
				zap.String("stage", s.name),
			)
			return v.Result, nil
		}
	}

	if st.Result == nil {
		return nil, errors.New("pipeline finished without a result")
	}
	return st.Result, nil
}

type requestIDKey struct{}

// WithRequestID 將請求 ID 放入 context，供流程日誌使用
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return common.GenerateUUID()
}
