package pipeline

import (
	"time"

	"recipe-recommender/internal/core/domain"
)

// 各時段適合的食譜分類
var periodCategories = map[domain.MealPeriod][]string{
	domain.PeriodBreakfast: {"Breakfast", "Miscellaneous", "Side"},
	domain.PeriodLunch:     {"Chicken", "Beef", "Vegetarian", "Pasta", "Seafood", "Vegan"},
	domain.PeriodSnack:     {"Side", "Dessert", "Starter"},
	domain.PeriodDinner:    {"Chicken", "Beef", "Vegetarian", "Pasta", "Seafood", "Vegan", "Lamb"},
	domain.PeriodLight:     {"Side", "Starter", "Vegetarian", "Vegan"},
}

// meatCategories 素食者排除的分類
var meatCategories = []string{"Beef", "Chicken", "Lamb", "Pork", "Goat", "Seafood"}

// MealPeriodAt 依時刻判斷用餐時段
func MealPeriodAt(t time.Time) domain.MealPeriod {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return domain.PeriodBreakfast
	case h >= 11 && h < 15:
		return domain.PeriodLunch
	case h >= 15 && h < 17:
		return domain.PeriodSnack
	case h >= 17 && h < 22:
		return domain.PeriodDinner
	default:
		return domain.PeriodLight
	}
}

// BuildFilters 由健康檔案與目前時間推導篩選條件
func BuildFilters(profile domain.UserProfile, now time.Time, cfg Config) domain.DietaryFilters {
	period := MealPeriodAt(now)
	target := 0.0
	if profile.DailyCalorieGoal > 0 {
		target = float64(profile.DailyCalorieGoal) / float64(cfg.MealsPerDay)
	}

	f := domain.DietaryFilters{
		DietStyle:             domain.NormalizeDietStyle(string(profile.DietStyle)),
		CookingSkill:          domain.NormalizeCookingSkill(string(profile.CookingSkill)),
		HealthGoal:            domain.NormalizeHealthGoal(string(profile.HealthGoal)),
		Allergies:             append([]string{}, profile.Allergies...),
		MedicalConditions:     append([]string{}, profile.MedicalConditions...),
		DailyCalories:         profile.DailyCalorieGoal,
		TargetCaloriesPerMeal: target,
		MealPeriod:            period,
		PreferredCategories:   append([]string{}, periodCategories[period]...),
		ExcludedCategories:    []string{},
	}
	if target > 0 && cfg.CalorieBandMax > 0 {
		f.MinCalories = target * cfg.CalorieBandMin
		f.MaxCalories = target * cfg.CalorieBandMax
	}
	if f.DietStyle == domain.DietVegetarian || f.DietStyle == domain.DietVegan {
		f.ExcludedCategories = append(f.ExcludedCategories, meatCategories...)
		f.PreferredCategories = withoutCategories(f.PreferredCategories, meatCategories)
	}
	return f
}

func withoutCategories(categories, drop []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		keep := true
		for _, d := range drop {
			if c == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// candidateQuery 轉為食譜庫查詢，只帶飲食條件不帶使用者識別資料
func candidateQuery(f domain.DietaryFilters, forbidden []string, limit int) domain.CandidateQuery {
	return domain.CandidateQuery{
		DietStyle:           f.DietStyle,
		ExcludedTerms:       forbidden,
		ExcludedCategories:  f.ExcludedCategories,
		PreferredCategories: f.PreferredCategories,
		MinCalories:         f.MinCalories,
		MaxCalories:         f.MaxCalories,
		Limit:               limit,
	}
}
