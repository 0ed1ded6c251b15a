package domain

import (
	"errors"
	"time"
)

// 領域錯誤
var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrInvalidProfile  = errors.New("user profile is invalid")
	ErrRecipeNotFound  = errors.New("recipe not found")
)

// DietStyle 飲食風格
type DietStyle string

const (
	DietBalanced      DietStyle = "balanced"
	DietVegetarian    DietStyle = "vegetarian"
	DietVegan         DietStyle = "vegan"
	DietKeto          DietStyle = "keto"
	DietMediterranean DietStyle = "mediterranean"
	DietLowCarb       DietStyle = "low_carb"
	DietPaleo         DietStyle = "paleo"
)

// CookingSkill 烹飪技能等級
type CookingSkill string

const (
	SkillBeginner     CookingSkill = "beginner"
	SkillIntermediate CookingSkill = "intermediate"
	SkillAdvanced     CookingSkill = "advanced"
)

// HealthGoal 健康目標
type HealthGoal string

const (
	GoalMaintain   HealthGoal = "maintain"
	GoalWeightLoss HealthGoal = "weight_loss"
	GoalMuscleGain HealthGoal = "muscle_gain"
)

// UserProfile 使用者健康檔案，單次推薦流程中唯讀
type UserProfile struct {
	UserID            string       `json:"user_id" validate:"required"`
	FullName          string       `json:"full_name,omitempty"`
	Allergies         []string     `json:"allergies"`
	MedicalConditions []string     `json:"medical_conditions"`
	DietStyle         DietStyle    `json:"diet_style"`
	CookingSkill      CookingSkill `json:"cooking_skill" validate:"omitempty,oneof=beginner intermediate advanced"`
	HealthGoal        HealthGoal   `json:"health_goal" validate:"omitempty,oneof=maintain weight_loss muscle_gain"`
	DailyCalorieGoal  int          `json:"daily_calorie_goal" validate:"gt=0"`
}

// Ingredient 食材
type Ingredient struct {
	Name          string   `json:"name"`
	AmountText    string   `json:"amount_text"`
	Unit          string   `json:"unit,omitempty"`
	GramsEstimate *float64 `json:"grams_estimate,omitempty"`
}

// ReportedNutrition 資料來源提供的營養值，任何欄位都可能缺失
type ReportedNutrition struct {
	CaloriesKcal *float64 `json:"calories_kcal,omitempty"`
	ProteinG     *float64 `json:"protein_g,omitempty"`
	CarbsG       *float64 `json:"carbs_g,omitempty"`
	FatG         *float64 `json:"fat_g,omitempty"`
	FiberG       *float64 `json:"fiber_g,omitempty"`
	SugarG       *float64 `json:"sugar_g,omitempty"`
	SodiumMg     *float64 `json:"sodium_mg,omitempty"`
}

// NutritionFacts 完整的每份營養資訊
type NutritionFacts struct {
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
	FiberG       float64 `json:"fiber_g"`
	SugarG       float64 `json:"sugar_g"`
	SodiumMg     float64 `json:"sodium_mg"`
}

// Scale 依比例縮放所有營養值
func (n NutritionFacts) Scale(factor float64) NutritionFacts {
	return NutritionFacts{
		CaloriesKcal: n.CaloriesKcal * factor,
		ProteinG:     n.ProteinG * factor,
		CarbsG:       n.CarbsG * factor,
		FatG:         n.FatG * factor,
		FiberG:       n.FiberG * factor,
		SugarG:       n.SugarG * factor,
		SodiumMg:     n.SodiumMg * factor,
	}
}

// NutritionSource 營養資料來源
type NutritionSource string

const (
	SourceAuthoritative NutritionSource = "authoritative"
	SourceEstimated     NutritionSource = "estimated"
)

// NutritionMethod 營養資料的取得方式
type NutritionMethod string

const (
	MethodReported    NutritionMethod = "reported"
	MethodIngredients NutritionMethod = "ingredients"
	MethodCategory    NutritionMethod = "category"
	MethodMerged      NutritionMethod = "merged"
)

// NutritionEstimate 營養值與來源
type NutritionEstimate struct {
	Facts  NutritionFacts  `json:"facts"`
	Source NutritionSource `json:"source"`
	Method NutritionMethod `json:"method"`
}

// Recipe 食譜（唯讀輸入）
type Recipe struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Category     string             `json:"category"`
	Cuisine      string             `json:"cuisine"`
	Instructions string             `json:"instructions"`
	Servings     int                `json:"servings"`
	ImageURL     string             `json:"image_url,omitempty"`
	Ingredients  []Ingredient       `json:"ingredients"`
	Nutrition    *ReportedNutrition `json:"nutrition,omitempty"`
}

// Clone 深拷貝食譜，避免改動原始資料
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = ing
			if ing.GramsEstimate != nil {
				g := *ing.GramsEstimate
				out.Ingredients[i].GramsEstimate = &g
			}
		}
	}
	if r.Nutrition != nil {
		n := *r.Nutrition
		out.Nutrition = &n
	}
	return out
}

// SafetyLevel 安全等級
type SafetyLevel string

const (
	LevelSafe                  SafetyLevel = "safe"
	LevelSafeWithModifications SafetyLevel = "safe_with_modifications"
	LevelRisky                 SafetyLevel = "risky"
	LevelDangerous             SafetyLevel = "dangerous"
)

// Viable 是否可直接推薦（不需補位）
func (l SafetyLevel) Viable() bool {
	return l == LevelSafe || l == LevelSafeWithModifications
}

// SafetyAssessment 單一 (使用者, 食譜) 的安全評估，不持久化
type SafetyAssessment struct {
	Level                 SafetyLevel `json:"level"`
	Score                 int         `json:"score"`
	Warnings              []string    `json:"warnings"`
	BlockingReasons       []string    `json:"blocking_reasons"`
	RequiredModifications []string    `json:"required_modifications"`
	Inconclusive          bool        `json:"inconclusive,omitempty"`
	Backfilled            bool        `json:"backfilled,omitempty"`
}

// AdaptedRecipe 針對單一使用者調整過的食譜副本
type AdaptedRecipe struct {
	Recipe              Recipe         `json:"recipe"`
	Nutrition           NutritionFacts `json:"nutrition"`
	OriginalServings    int            `json:"original_servings"`
	PortionAdapted      bool           `json:"portion_adapted"`
	IngredientsAdapted  bool           `json:"ingredients_adapted"`
	InstructionsAdapted bool           `json:"instructions_adapted"`
	SubstitutionNotes   []string       `json:"substitution_notes"`
	AdaptationNotes     []string       `json:"adaptation_notes"`
}

// StructuredInstructionStep 結構化步驟
type StructuredInstructionStep struct {
	Index            int      `json:"index"`
	Text             string   `json:"text"`
	EstimatedTime    string   `json:"estimated_time"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Equipment        []string `json:"equipment"`
}

// EventType 互動事件類型
type EventType string

const (
	EventView        EventType = "view"
	EventLike        EventType = "like"
	EventDislike     EventType = "dislike"
	EventSave        EventType = "save"
	EventHide        EventType = "hide"
	EventCooked      EventType = "cooked"
	EventCookNow     EventType = "cook_now"
	EventShareFamily EventType = "share_family"
)

// ValidEventTypes 可接受的事件類型
var ValidEventTypes = []EventType{
	EventView, EventLike, EventDislike, EventSave, EventHide, EventCooked, EventCookNow, EventShareFamily,
}

// IsValidEventType 檢查事件類型
func IsValidEventType(e EventType) bool {
	for _, v := range ValidEventTypes {
		if v == e {
			return true
		}
	}
	return false
}

// InteractionEvent 使用者互動事件
type InteractionEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Event     EventType `json:"event"`
	CreatedAt time.Time `json:"created_at"`
}
