package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/core/domain"
)

func candidate(id string, safety int, kcal, protein float64) Candidate {
	return Candidate{
		Adapted: domain.AdaptedRecipe{
			Recipe:    domain.Recipe{ID: id, Title: "Recipe " + id},
			Nutrition: domain.NutritionFacts{CaloriesKcal: kcal, ProteinG: protein},
		},
		Assessment: domain.SafetyAssessment{Level: domain.LevelSafe, Score: safety},
	}
}

func ids(ranked []Ranked) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Adapted.Recipe.ID)
	}
	return out
}

var maintainFilters = domain.DietaryFilters{HealthGoal: domain.GoalMaintain, DailyCalories: 1800, TargetCaloriesPerMeal: 600}

func TestRankCalorieProximityBonus(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := domain.UserProfile{UserID: "u1", DailyCalorieGoal: 1800}

	ranked := r.Rank([]Candidate{
		candidate("far", 100, 1000, 20),
		candidate("near", 100, 450, 20),
		candidate("close", 100, 650, 20),
	}, profile, maintainFilters, 0)

	require.Equal(t, []string{"close", "near", "far"}, ids(ranked))
	assert.Equal(t, 110, ranked[0].Score)
	assert.Equal(t, 105, ranked[1].Score)
	assert.Equal(t, 100, ranked[2].Score)
}

func TestRankHealthGoalBonus(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := domain.UserProfile{UserID: "u1", DailyCalorieGoal: 1800}

	t.Run("weight loss favors lighter dishes", func(t *testing.T) {
		filters := maintainFilters
		filters.HealthGoal = domain.GoalWeightLoss
		ranked := r.Rank([]Candidate{candidate("heavy", 100, 620, 20), candidate("light", 100, 400, 20)}, profile, filters, 0)

		assert.Equal(t, []string{"light", "heavy"}, ids(ranked))
		assert.Equal(t, 115, ranked[0].Score)
		assert.Contains(t, ranked[0].ReasonParts, "low in calories for weight loss")
	})

	t.Run("muscle gain favors protein", func(t *testing.T) {
		filters := maintainFilters
		filters.HealthGoal = domain.GoalMuscleGain
		ranked := r.Rank([]Candidate{candidate("lean", 100, 1000, 10), candidate("protein", 100, 1000, 40)}, profile, filters, 0)

		assert.Equal(t, []string{"protein", "lean"}, ids(ranked))
		assert.Equal(t, []string{"high in protein for muscle gain"}, ranked[0].ReasonParts)
	})
}

func TestRankIsStableAndDeterministic(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := domain.UserProfile{UserID: "u1", DailyCalorieGoal: 1800}
	input := []Candidate{
		candidate("a", 75, 900, 10),
		candidate("b", 100, 900, 10),
		candidate("c", 75, 900, 10),
		candidate("d", 100, 900, 10),
	}

	first := r.Rank(input, profile, maintainFilters, 0)
	second := r.Rank(input, profile, maintainFilters, 0)

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(first))
	assert.Equal(t, first, second)
	assert.Equal(t, "a", input[0].Adapted.Recipe.ID, "input order is untouched")
}

func TestRankTruncates(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := domain.UserProfile{UserID: "u1", DailyCalorieGoal: 1800}
	var input []Candidate
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		input = append(input, candidate(id, 100, 600, 20))
	}

	assert.Len(t, r.Rank(input, profile, maintainFilters, 0), 5)
	assert.Len(t, r.Rank(input, profile, maintainFilters, 3), 3)
	assert.Empty(t, r.Rank(nil, profile, maintainFilters, 0))
}

func TestRankDerivesTargetFromProfile(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := domain.UserProfile{UserID: "u1", DailyCalorieGoal: 1500}

	ranked := r.Rank([]Candidate{candidate("x", 90, 520, 10)}, profile, domain.DietaryFilters{}, 0)

	assert.Equal(t, 100, ranked[0].Score)
}
