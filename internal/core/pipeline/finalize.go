package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"recipe-recommender/internal/core/ai"
	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/instruction"
	"recipe-recommender/internal/pkg/common"
)

const maxTags = 3

// recommendation 組合單一推薦的輸出欄位
func (o *Orchestrator) recommendation(ctx context.Context, f finalist, filters domain.DietaryFilters) Recommendation {
	ad := f.Ranked.Adapted
	r := ad.Recipe

	rec := Recommendation{
		ID:                  r.ID,
		Title:               r.Title,
		Category:            r.Category,
		Cuisine:             r.Cuisine,
		ImageURL:            r.ImageURL,
		Servings:            r.Servings,
		OriginalServings:    ad.OriginalServings,
		Ingredients:         nonNilIngredients(r.Ingredients),
		Instructions:        r.Instructions,
		Steps:               f.Steps,
		Nutrition:           ad.Nutrition,
		NutritionSource:     f.Ranked.Source,
		NutritionMethod:     f.Method,
		Safety:              f.Ranked.Assessment,
		PortionAdapted:      ad.PortionAdapted,
		IngredientsAdapted:  ad.IngredientsAdapted,
		InstructionsAdapted: ad.InstructionsAdapted,
		SubstitutionNotes:   ad.SubstitutionNotes,
		AdaptationNotes:     ad.AdaptationNotes,
		Difficulty:          Difficulty(len(r.Ingredients), len(f.Steps)),
		Tags:                Tags(r, f.Ranked.Assessment.Level),
		TotalTimeMinutes:    instruction.TotalMinutes(f.Steps),
		RankScore:           f.Ranked.Score,
	}

	rec.Rationale = o.rationale(ctx, domain.RationaleInput{
		Title:         r.Title,
		DietStyle:     filters.DietStyle,
		HealthGoal:    filters.HealthGoal,
		ReasonParts:   f.Ranked.ReasonParts,
		SafetyLevel:   f.Ranked.Assessment.Level,
		Warnings:      f.Ranked.Assessment.Warnings,
		CaloriesKcal:  ad.Nutrition.CaloriesKcal,
		ProteinG:      ad.Nutrition.ProteinG,
		PortionScaled: ad.PortionAdapted,
	})
	return rec
}

// unadapted 危險食譜：保留原始內容與阻擋原因，不調整也不產生理由
func (o *Orchestrator) unadapted(r domain.Recipe, est domain.NutritionEstimate, a domain.SafetyAssessment) Recommendation {
	steps := o.deps.Structurer.Structure(r.Instructions)
	return Recommendation{
		ID:                r.ID,
		Title:             r.Title,
		Category:          r.Category,
		Cuisine:           r.Cuisine,
		ImageURL:          r.ImageURL,
		Servings:          r.Servings,
		OriginalServings:  r.Servings,
		Ingredients:       nonNilIngredients(r.Ingredients),
		Instructions:      r.Instructions,
		Steps:             steps,
		Nutrition:         est.Facts,
		NutritionSource:   est.Source,
		NutritionMethod:   est.Method,
		Safety:            a,
		SubstitutionNotes: []string{},
		AdaptationNotes:   []string{},
		Difficulty:        Difficulty(len(r.Ingredients), len(steps)),
		Tags:              []string{},
		TotalTimeMinutes:  instruction.TotalMinutes(steps),
		RankScore:         a.Score,
	}
}

// rationale 呼叫理由產生器，失敗或空白時改用固定格式
func (o *Orchestrator) rationale(ctx context.Context, in domain.RationaleInput) string {
	if ctx.Err() != nil {
		return ai.Template(in)
	}
	ctx, cancel := context.WithTimeout(ctx, o.cfg.RationaleTimeout)
	defer cancel()

	text, err := o.deps.Rationale.WriteRationale(ctx, in)
	if err != nil {
		common.LogDebug("Rationale writer failed, using template", zap.Error(err))
		return ai.Template(in)
	}
	if text = strings.TrimSpace(text); text == "" {
		return ai.Template(in)
	}
	return text
}

// Difficulty 依食材數與步驟數判斷難度
func Difficulty(ingredients, steps int) string {
	switch {
	case ingredients <= 5 && steps <= 4:
		return "Easy"
	case ingredients <= 10 && steps <= 8:
		return "Medium"
	default:
		return "Advanced"
	}
}

// Tags 顯示用標籤：菜系、安全狀態、素食分類，最多三個
func Tags(r domain.Recipe, level domain.SafetyLevel) []string {
	tags := make([]string, 0, maxTags)
	if c := strings.TrimSpace(r.Cuisine); c != "" {
		tags = append(tags, c)
	}
	switch level {
	case domain.LevelSafe:
		tags = append(tags, "Healthy")
	case domain.LevelSafeWithModifications:
		tags = append(tags, "Adapted")
	}
	if r.Category == "Vegetarian" || r.Category == "Vegan" {
		tags = append(tags, r.Category)
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

func nonNilIngredients(in []domain.Ingredient) []domain.Ingredient {
	if in == nil {
		return []domain.Ingredient{}
	}
	return in
}
