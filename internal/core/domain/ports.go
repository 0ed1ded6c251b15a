package domain

import (
	"context"
	"strings"
)

// MealPeriod 用餐時段
type MealPeriod string

const (
	PeriodBreakfast MealPeriod = "breakfast"
	PeriodLunch     MealPeriod = "lunch"
	PeriodSnack     MealPeriod = "snack"
	PeriodDinner    MealPeriod = "dinner"
	PeriodLight     MealPeriod = "light"
)

// DietaryFilters 由使用者檔案推導出的飲食與安全篩選條件
type DietaryFilters struct {
	DietStyle             DietStyle    `json:"diet_style"`
	CookingSkill          CookingSkill `json:"cooking_skill"`
	HealthGoal            HealthGoal   `json:"health_goal"`
	Allergies             []string     `json:"allergies"`
	MedicalConditions     []string     `json:"medical_conditions"`
	DailyCalories         int          `json:"daily_calories"`
	TargetCaloriesPerMeal float64      `json:"target_calories_per_meal"`
	MinCalories           float64      `json:"min_calories"`
	MaxCalories           float64      `json:"max_calories"`
	MealPeriod            MealPeriod   `json:"meal_period"`
	PreferredCategories   []string     `json:"preferred_categories"`
	ExcludedCategories    []string     `json:"excluded_categories"`
}

// CandidateQuery 食譜庫查詢條件（不含個人識別資料）
type CandidateQuery struct {
	DietStyle           DietStyle `json:"diet_style"`
	ExcludedTerms       []string  `json:"excluded_terms"`
	ExcludedCategories  []string  `json:"excluded_categories"`
	PreferredCategories []string  `json:"preferred_categories"`
	MinCalories         float64   `json:"min_calories"`
	MaxCalories         float64   `json:"max_calories"`
	Limit               int       `json:"limit"`
}

// RecipeStore 食譜庫讀取介面
type RecipeStore interface {
	FetchCandidates(ctx context.Context, query CandidateQuery) ([]Recipe, error)
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
}

// ProfileStore 使用者檔案讀取介面；找不到時回傳 ErrProfileNotFound
type ProfileStore interface {
	LoadProfile(ctx context.Context, userID string) (*UserProfile, error)
}

// EventRecorder 互動事件寫入介面
type EventRecorder interface {
	RecordEvents(ctx context.Context, events []InteractionEvent) error
}

// RationaleInput 推薦理由產生所需資訊
type RationaleInput struct {
	Title         string      `json:"title"`
	DietStyle     DietStyle   `json:"diet_style"`
	HealthGoal    HealthGoal  `json:"health_goal"`
	ReasonParts   []string    `json:"reason_parts"`
	SafetyLevel   SafetyLevel `json:"safety_level"`
	Warnings      []string    `json:"warnings"`
	CaloriesKcal  float64     `json:"calories_kcal"`
	ProteinG      float64     `json:"protein_g"`
	PortionScaled bool        `json:"portion_scaled"`
}

// RationaleWriter 推薦理由文字產生器
type RationaleWriter interface {
	WriteRationale(ctx context.Context, in RationaleInput) (string, error)
}

// NormalizeDietStyle 將各種寫法統一為 DietStyle
func NormalizeDietStyle(s string) DietStyle {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "", "balanced", "none", "omnivore":
		return DietBalanced
	case "vegetarian", "lactoovovegetarian":
		return DietVegetarian
	case "vegan", "plantbased":
		return DietVegan
	case "keto", "ketogenic":
		return DietKeto
	case "mediterranean":
		return DietMediterranean
	case "lowcarb":
		return DietLowCarb
	case "paleo":
		return DietPaleo
	}
	return DietStyle(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeCookingSkill 未知值視為 intermediate
func NormalizeCookingSkill(s string) CookingSkill {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "novice":
		return SkillBeginner
	case "advanced", "professional", "expert":
		return SkillAdvanced
	}
	return SkillIntermediate
}

// NormalizeHealthGoal 未知值視為 maintain
func NormalizeHealthGoal(s string) HealthGoal {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "weight_loss", "lose_weight":
		return GoalWeightLoss
	case "muscle_gain", "gain_muscle", "build_muscle":
		return GoalMuscleGain
	}
	return GoalMaintain
}
