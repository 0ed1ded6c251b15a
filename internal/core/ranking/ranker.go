package ranking

import (
	"math"
	"sort"

	"recipe-recommender/internal/core/domain"
)

// Config 排序加分設定
type Config struct {
	TopN               int     `mapstructure:"top_n"`
	MealsPerDay        int     `mapstructure:"meals_per_day"`
	CloseCalorieBonus  int     `mapstructure:"close_calorie_bonus"`
	NearCalorieBonus   int     `mapstructure:"near_calorie_bonus"`
	CloseCalorieDelta  float64 `mapstructure:"close_calorie_delta"`
	NearCalorieDelta   float64 `mapstructure:"near_calorie_delta"`
	GoalBonus          int     `mapstructure:"goal_bonus"`
	WeightLossRatio    float64 `mapstructure:"weight_loss_ratio"`
	MuscleGainProteinG float64 `mapstructure:"muscle_gain_protein_g"`
}

// DefaultConfig 預設排序設定
func DefaultConfig() Config {
	return Config{
		TopN:               5,
		MealsPerDay:        3,
		CloseCalorieBonus:  10,
		NearCalorieBonus:   5,
		CloseCalorieDelta:  100,
		NearCalorieDelta:   200,
		GoalBonus:          15,
		WeightLossRatio:    0.8,
		MuscleGainProteinG: 25,
	}
}

// Candidate 待排序的食譜與其評估結果
type Candidate struct {
	Adapted    domain.AdaptedRecipe
	Assessment domain.SafetyAssessment
	Source     domain.NutritionSource
}

// Ranked 排序結果
type Ranked struct {
	Candidate
	Score       int      `json:"score"`
	ReasonParts []string `json:"reason_parts"`
}

// Ranker 依安全分數、熱量接近度與健康目標排序
type Ranker struct {
	cfg Config
}

// NewRanker 建立排序器
func NewRanker(cfg Config) *Ranker {
	d := DefaultConfig()
	if cfg.TopN <= 0 {
		cfg.TopN = d.TopN
	}
	if cfg.MealsPerDay <= 0 {
		cfg.MealsPerDay = d.MealsPerDay
	}
	if cfg.CloseCalorieDelta <= 0 {
		cfg.CloseCalorieDelta = d.CloseCalorieDelta
	}
	if cfg.NearCalorieDelta <= 0 {
		cfg.NearCalorieDelta = d.NearCalorieDelta
	}
	if cfg.WeightLossRatio <= 0 {
		cfg.WeightLossRatio = d.WeightLossRatio
	}
	if cfg.MuscleGainProteinG <= 0 {
		cfg.MuscleGainProteinG = d.MuscleGainProteinG
	}
	return &Ranker{cfg: cfg}
}

// TopN 預設回傳數量
func (r *Ranker) TopN() int {
	return r.cfg.TopN
}

// Rank 計分並穩定排序，回傳前 limit 筆；limit <= 0 時使用 TopN
func (r *Ranker) Rank(candidates []Candidate, profile domain.UserProfile, filters domain.DietaryFilters, limit int) []Ranked {
	if limit <= 0 {
		limit = r.cfg.TopN
	}

	target := filters.TargetCaloriesPerMeal
	if target <= 0 && profile.DailyCalorieGoal > 0 {
		target = float64(profile.DailyCalorieGoal) / float64(r.cfg.MealsPerDay)
	}
	goal := filters.HealthGoal
	if goal == "" {
		goal = profile.HealthGoal
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		score, reasons := r.score(c, target, goal)
		ranked = append(ranked, Ranked{Candidate: c, Score: score, ReasonParts: reasons})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (r *Ranker) score(c Candidate, target float64, goal domain.HealthGoal) (int, []string) {
	score := c.Assessment.Score
	reasons := []string{}
	facts := c.Adapted.Nutrition

	if target > 0 {
		delta := math.Abs(facts.CaloriesKcal - target)
		switch {
		case delta < r.cfg.CloseCalorieDelta:
			score += r.cfg.CloseCalorieBonus
		case delta < r.cfg.NearCalorieDelta:
			score += r.cfg.NearCalorieBonus
		}
	}

	switch goal {
	case domain.GoalWeightLoss:
		if target > 0 && facts.CaloriesKcal < target*r.cfg.WeightLossRatio {
			score += r.cfg.GoalBonus
			reasons = append(reasons, "low in calories for weight loss")
		}
	case domain.GoalMuscleGain:
		if facts.ProteinG > r.cfg.MuscleGainProteinG {
			score += r.cfg.GoalBonus
			reasons = append(reasons, "high in protein for muscle gain")
		}
	}
	return score, reasons
}
