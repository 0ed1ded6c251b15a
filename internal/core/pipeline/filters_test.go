package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recipe-recommender/internal/core/domain"
)

func TestMealPeriodAt(t *testing.T) {
	tests := []struct {
		hour int
		want domain.MealPeriod
	}{
		{4, domain.PeriodLight},
		{5, domain.PeriodBreakfast},
		{10, domain.PeriodBreakfast},
		{11, domain.PeriodLunch},
		{14, domain.PeriodLunch},
		{15, domain.PeriodSnack},
		{17, domain.PeriodDinner},
		{21, domain.PeriodDinner},
		{22, domain.PeriodLight},
		{0, domain.PeriodLight},
	}
	for _, tt := range tests {
		at := time.Date(2026, 5, 4, tt.hour, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, MealPeriodAt(at), "hour %d", tt.hour)
	}
}

func TestBuildFilters(t *testing.T) {
	profile := domain.UserProfile{
		UserID:            "u1",
		Allergies:         []string{"soy"},
		MedicalConditions: []string{"diabetes"},
		DietStyle:         "Vegan",
		CookingSkill:      "novice",
		HealthGoal:        "lose weight",
		DailyCalorieGoal:  1800,
	}

	f := BuildFilters(profile, lunchTime, DefaultConfig())
	assert.Equal(t, domain.DietVegan, f.DietStyle)
	assert.Equal(t, domain.SkillBeginner, f.CookingSkill)
	assert.Equal(t, domain.GoalWeightLoss, f.HealthGoal)
	assert.Equal(t, domain.PeriodLunch, f.MealPeriod)
	assert.InDelta(t, 600, f.TargetCaloriesPerMeal, 0.001)
	assert.InDelta(t, 150, f.MinCalories, 0.001)
	assert.InDelta(t, 1200, f.MaxCalories, 0.001)
	assert.Equal(t, []string{"Vegetarian", "Pasta", "Vegan"}, f.PreferredCategories)
	assert.Equal(t, meatCategories, f.ExcludedCategories)
	assert.Equal(t, []string{"soy"}, f.Allergies)

	f.Allergies[0] = "changed"
	assert.Equal(t, "soy", profile.Allergies[0])
}

func TestBuildFiltersBalancedKeepsCategories(t *testing.T) {
	profile := domain.UserProfile{UserID: "u1", DailyCalorieGoal: 2100}
	dinner := time.Date(2026, 5, 4, 19, 0, 0, 0, time.UTC)

	f := BuildFilters(profile, dinner, DefaultConfig())
	assert.Equal(t, domain.DietBalanced, f.DietStyle)
	assert.Equal(t, periodCategories[domain.PeriodDinner], f.PreferredCategories)
	assert.Empty(t, f.ExcludedCategories)
	assert.NotNil(t, f.ExcludedCategories)
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, "Easy", Difficulty(5, 4))
	assert.Equal(t, "Medium", Difficulty(6, 4))
	assert.Equal(t, "Medium", Difficulty(10, 8))
	assert.Equal(t, "Advanced", Difficulty(11, 2))
	assert.Equal(t, "Advanced", Difficulty(3, 9))
}

func TestTags(t *testing.T) {
	vegan := domain.Recipe{Cuisine: "Indian", Category: "Vegan"}
	assert.Equal(t, []string{"Indian", "Healthy", "Vegan"}, Tags(vegan, domain.LevelSafe))
	assert.Equal(t, []string{"Indian", "Adapted", "Vegan"}, Tags(vegan, domain.LevelSafeWithModifications))
	assert.Equal(t, []string{"Indian", "Vegan"}, Tags(vegan, domain.LevelRisky))
	assert.Equal(t, []string{}, Tags(domain.Recipe{Category: "Beef"}, domain.LevelRisky))
}
