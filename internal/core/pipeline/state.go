package pipeline

import (
	"context"
	"time"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/ranking"
)

// Recommendation 單一推薦結果
type Recommendation struct {
	ID                  string                             `json:"id"`
	Title               string                             `json:"title"`
	Category            string                             `json:"category"`
	Cuisine             string                             `json:"cuisine"`
	ImageURL            string                             `json:"image_url,omitempty"`
	Servings            int                                `json:"servings"`
	OriginalServings    int                                `json:"original_servings"`
	Ingredients         []domain.Ingredient                `json:"ingredients"`
	Instructions        string                             `json:"instructions"`
	Steps               []domain.StructuredInstructionStep `json:"steps"`
	Nutrition           domain.NutritionFacts              `json:"nutrition"`
	NutritionSource     domain.NutritionSource             `json:"nutrition_source"`
	NutritionMethod     domain.NutritionMethod             `json:"nutrition_method"`
	Safety              domain.SafetyAssessment            `json:"safety"`
	PortionAdapted      bool                               `json:"portion_adapted"`
	IngredientsAdapted  bool                               `json:"ingredients_adapted"`
	InstructionsAdapted bool                               `json:"instructions_adapted"`
	SubstitutionNotes   []string                           `json:"substitution_notes"`
	AdaptationNotes     []string                           `json:"adaptation_notes"`
	Rationale           string                             `json:"rationale"`
	Difficulty          string                             `json:"difficulty"`
	Tags                []string                           `json:"tags"`
	TotalTimeMinutes    int                                `json:"total_time_minutes"`
	RankScore           int                                `json:"rank_score"`
}

// Result 一次推薦流程的完整輸出；任何備援路徑都回傳完整結構
type Result struct {
	UserID               string                `json:"user_id"`
	Recommendations      []Recommendation      `json:"recommendations"`
	FiltersApplied       domain.DietaryFilters `json:"filters_applied"`
	Messages             []string              `json:"messages"`
	GeneratedAt          time.Time             `json:"generated_at"`
	TotalCandidates      int                   `json:"total_candidates"`
	TotalSafetyValidated int                   `json:"total_safety_validated"`
	TotalAdapted         int                   `json:"total_adapted"`
	BackfilledCount      int                   `json:"backfilled_count"`
}

// assessedRecipe 通過安全檢查（或補位）的候選
type assessedRecipe struct {
	Recipe     domain.Recipe
	Nutrition  domain.NutritionEstimate
	Assessment domain.SafetyAssessment
}

// finalist 已排序且結構化步驟的食譜
type finalist struct {
	Ranked ranking.Ranked
	Method domain.NutritionMethod
	Steps  []domain.StructuredInstructionStep
}

// State 單一請求的流程狀態，不跨請求共用
type State struct {
	RequestID string
	UserID    string
	Limit     int

	Profile    domain.UserProfile
	Filters    domain.DietaryFilters
	Candidates []domain.Recipe
	Nutrition  map[string]domain.NutritionEstimate
	Selected   []assessedRecipe
	Adapted    []ranking.Candidate
	Ranked     []ranking.Ranked
	Finalists  []finalist
	Result     *Result

	Messages             []string
	TotalSafetyValidated int
	TotalAdapted         int
	BackfilledCount      int
}

// Step 階段執行結果：Continue 或 ShortCircuit
type Step interface {
	step()
}

// Continue 以新的狀態進入下一階段
type Continue struct {
	State State
}

// ShortCircuit 提前結束流程並回傳結果
type ShortCircuit struct {
	Result *Result
}

func (Continue) step() {}
func (ShortCircuit) step() {}

// Stage 流程階段；回傳 error 代表不可恢復的錯誤
type Stage func(ctx context.Context, st State) (Step, error)

// namedStage 附名稱的階段，用於日誌與指標
type namedStage struct {
	name string
	run  Stage
}

// emptyResult 以目前狀態建立沒有推薦項目的結果
func (st State) emptyResult(now time.Time, message string) *Result {
	messages := append(append([]string{}, st.Messages...), message)
	return &Result{
		UserID:               st.UserID,
		Recommendations:      []Recommendation{},
		FiltersApplied:       st.Filters,
		Messages:             messages,
		GeneratedAt:          now,
		TotalCandidates:      len(st.Candidates),
		TotalSafetyValidated: st.TotalSafetyValidated,
		TotalAdapted:         st.TotalAdapted,
		BackfilledCount:      st.BackfilledCount,
	}
}

// addMessage 回傳附加訊息後的狀態，不改動原切片
func (st State) addMessage(message string) State {
	st.Messages = append(append([]string{}, st.Messages...), message)
	return st
}
