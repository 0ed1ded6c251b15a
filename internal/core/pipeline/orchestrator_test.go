package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/core/domain"
)

var lunchTime = time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)

type fakeProfiles map[string]domain.UserProfile

func (f fakeProfiles) LoadProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	p, ok := f[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

type fakeRecipes struct {
	recipes []domain.Recipe
	err     error
	queries []domain.CandidateQuery
}

func (f *fakeRecipes) FetchCandidates(_ context.Context, q domain.CandidateQuery) ([]domain.Recipe, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes, nil
}

func (f *fakeRecipes) GetRecipe(_ context.Context, id string) (*domain.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, domain.ErrRecipeNotFound
}

type fakeEvents struct {
	mu     sync.Mutex
	events []domain.InteractionEvent
	err    error
}

func (f *fakeEvents) RecordEvents(_ context.Context, events []domain.InteractionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, events...)
	return nil
}

type failingWriter struct{}

func (failingWriter) WriteRationale(context.Context, domain.RationaleInput) (string, error) {
	return "", errors.New("rationale service offline")
}

// blockingWriter 直到 context 結束才回傳
type blockingWriter struct {
	calls int
}

func (b *blockingWriter) WriteRationale(ctx context.Context, _ domain.RationaleInput) (string, error) {
	b.calls++
	<-ctx.Done()
	return "", ctx.Err()
}

func num(v float64) *float64 { return &v }

func testRecipe(id, category string, kcal, sugar, sodium float64, ingredients ...string) domain.Recipe {
	r := domain.Recipe{
		ID:           id,
		Title:        "Recipe " + id,
		Category:     category,
		Cuisine:      "American",
		Servings:     2,
		Instructions: "1. Chop the onion.\n2. Simmer for 10 minutes.",
		Nutrition: &domain.ReportedNutrition{
			CaloriesKcal: num(kcal),
			ProteinG:     num(20),
			CarbsG:       num(30),
			FatG:         num(10),
			FiberG:       num(5),
			SugarG:       num(sugar),
			SodiumMg:     num(sodium),
		},
	}
	for _, name := range ingredients {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{Name: name, AmountText: "1 cup"})
	}
	return r
}

func newTestOrchestrator(t *testing.T, profiles fakeProfiles, recipes *fakeRecipes, events *fakeEvents) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(Dependencies{
		Profiles:  profiles,
		Recipes:   recipes,
		Events:    events,
		Rationale: failingWriter{},
		Clock:     func() time.Time { return lunchTime },
	}, DefaultConfig())
	require.NoError(t, err)
	return o
}

func peanutProfile() domain.UserProfile {
	return domain.UserProfile{
		UserID:           "u-peanut",
		Allergies:        []string{"peanuts"},
		DietStyle:        domain.DietBalanced,
		DailyCalorieGoal: 1800,
	}
}

func TestRecommendExcludesAllergenRecipes(t *testing.T) {
	recipes := &fakeRecipes{recipes: []domain.Recipe{
		testRecipe("satay", "Chicken", 500, 4, 300, "chicken thigh", "peanut butter", "rice"),
		testRecipe("oats", "Breakfast", 500, 4, 300, "rolled oats", "almond butter", "banana"),
	}}
	events := &fakeEvents{}
	o := newTestOrchestrator(t, fakeProfiles{"u-peanut": peanutProfile()}, recipes, events)

	result, err := o.Recommend(context.Background(), "u-peanut", 5)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)

	rec := result.Recommendations[0]
	assert.Equal(t, "oats", rec.ID)
	assert.Equal(t, domain.LevelSafe, rec.Safety.Level)
	assert.Equal(t, []string{"American", "Healthy"}, rec.Tags)
	assert.Equal(t, "Easy", rec.Difficulty)
	assert.Len(t, rec.Steps, 2)
	assert.Equal(t, "Matches your balanced diet and nutritional needs.", rec.Rationale)

	assert.Equal(t, 2, result.TotalCandidates)
	assert.Equal(t, 1, result.TotalSafetyValidated)
	assert.Equal(t, lunchTime, result.GeneratedAt)
	assert.Contains(t, result.Messages, "Only 1 of 5 requested recipes met your safety requirements")

	require.Len(t, recipes.queries, 1)
	assert.Contains(t, recipes.queries[0].ExcludedTerms, "peanut butter")
	assert.Equal(t, 50, recipes.queries[0].Limit)

	require.Len(t, events.events, 1)
	assert.Equal(t, "oats", events.events[0].RecipeID)
	assert.Equal(t, domain.EventView, events.events[0].Event)

	blocked, err := o.Personalize(context.Background(), "u-peanut", "satay")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelDangerous, blocked.Safety.Level)
	require.NotEmpty(t, blocked.Safety.BlockingReasons)
	assert.Contains(t, blocked.Safety.BlockingReasons[0], "peanut butter")
	assert.False(t, blocked.IngredientsAdapted)
	assert.Empty(t, blocked.Rationale)
}

func TestRecommendBackfillsWithRiskyRecipes(t *testing.T) {
	profile := domain.UserProfile{
		UserID:            "u-conditions",
		MedicalConditions: []string{"diabetes", "hypertension"},
		DailyCalorieGoal:  1800,
	}
	recipes := &fakeRecipes{recipes: []domain.Recipe{
		testRecipe("risky-1", "Beef", 500, 30, 1500, "beef", "rice"),
		testRecipe("safe-1", "Chicken", 500, 2, 100, "chicken breast", "rice"),
		testRecipe("risky-2", "Beef", 500, 30, 1500, "beef", "potato"),
		{ID: "unknown", Title: "Mystery", Category: "Side"},
		testRecipe("safe-2", "Vegetarian", 500, 2, 100, "lentils", "spinach"),
		testRecipe("risky-3", "Pasta", 500, 30, 1500, "pasta", "tomato"),
	}}
	o := newTestOrchestrator(t, fakeProfiles{"u-conditions": profile}, recipes, &fakeEvents{})

	result, err := o.Recommend(context.Background(), "u-conditions", 5)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 5)

	assert.Equal(t, 2, result.TotalSafetyValidated)
	assert.Equal(t, 3, result.BackfilledCount)
	assert.Equal(t, "safe-1", result.Recommendations[0].ID)
	assert.Equal(t, "safe-2", result.Recommendations[1].ID)
	for _, rec := range result.Recommendations[2:] {
		assert.True(t, strings.HasPrefix(rec.ID, "risky-"), rec.ID)
		assert.True(t, rec.Safety.Backfilled)
		assert.Equal(t, domain.LevelRisky, rec.Safety.Level)
		assert.Contains(t, rec.Safety.Warnings, backfillWarning)
	}
	for _, rec := range result.Recommendations {
		assert.NotEqual(t, "unknown", rec.ID)
	}
	assert.Contains(t, result.Messages, "Only 2 fully safe recipes found; added 3 with safety warnings")
}

func TestRecommendSkipsBackfillWhenLimitIsMet(t *testing.T) {
	profile := domain.UserProfile{
		UserID:            "u-conditions",
		MedicalConditions: []string{"diabetes", "hypertension"},
		DailyCalorieGoal:  1800,
	}
	recipes := &fakeRecipes{recipes: []domain.Recipe{
		testRecipe("risky-1", "Beef", 500, 30, 1500, "beef", "rice"),
		testRecipe("safe-1", "Chicken", 500, 2, 100, "chicken breast", "rice"),
		testRecipe("safe-2", "Vegetarian", 500, 2, 100, "lentils", "spinach"),
	}}
	o := newTestOrchestrator(t, fakeProfiles{"u-conditions": profile}, recipes, &fakeEvents{})

	result, err := o.Recommend(context.Background(), "u-conditions", 2)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 2)
	assert.Zero(t, result.BackfilledCount)
	for _, rec := range result.Recommendations {
		assert.False(t, rec.Safety.Backfilled)
	}
}

func TestRecommendProfileErrors(t *testing.T) {
	o := newTestOrchestrator(t, fakeProfiles{"u-peanut": peanutProfile()}, &fakeRecipes{}, &fakeEvents{})

	result, err := o.Recommend(context.Background(), "missing", 5)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.Nil(t, result)

	_, err = o.Recommend(context.Background(), " ", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestRecommendMissingCalorieGoalUsesDefault(t *testing.T) {
	profile := peanutProfile()
	profile.UserID = "u-nogoal"
	profile.DailyCalorieGoal = 0
	recipes := &fakeRecipes{recipes: []domain.Recipe{
		testRecipe("oats", "Breakfast", 600, 4, 300, "rolled oats", "banana"),
	}}
	o := newTestOrchestrator(t, fakeProfiles{"u-nogoal": profile}, recipes, &fakeEvents{})

	result, err := o.Recommend(context.Background(), "u-nogoal", 1)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Recommendations, 1)
	assert.Equal(t, 2000, result.FiltersApplied.DailyCalories)
	assert.Contains(t, result.Messages, "No daily calorie goal on your profile; using 2000 kcal")
	require.Len(t, recipes.queries, 1)
}

func TestRecommendFallbacksReturnCompleteResults(t *testing.T) {
	tests := []struct {
		name    string
		recipes *fakeRecipes
		message string
	}{
		{
			name:    "no candidates",
			recipes: &fakeRecipes{},
			message: "No candidate recipes matched your filters",
		},
		{
			name:    "store unavailable",
			recipes: &fakeRecipes{err: errors.New("connection refused")},
			message: "Recipe store unavailable, please try again later",
		},
		{
			name: "nothing safe",
			recipes: &fakeRecipes{recipes: []domain.Recipe{
				testRecipe("satay", "Chicken", 500, 4, 300, "peanut butter"),
			}},
			message: "No recipes passed the safety checks for your profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &fakeEvents{}
			o := newTestOrchestrator(t, fakeProfiles{"u-peanut": peanutProfile()}, tt.recipes, events)

			result, err := o.Recommend(context.Background(), "u-peanut", 3)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotNil(t, result.Recommendations)
			assert.Empty(t, result.Recommendations)
			assert.Contains(t, result.Messages, tt.message)
			assert.Equal(t, domain.PeriodLunch, result.FiltersApplied.MealPeriod)
			assert.Empty(t, events.events)
		})
	}
}

func TestRecommendEventFailureIsNotFatal(t *testing.T) {
	recipes := &fakeRecipes{recipes: []domain.Recipe{
		testRecipe("oats", "Breakfast", 500, 4, 300, "rolled oats", "banana"),
	}}
	events := &fakeEvents{err: errors.New("disk full")}
	o := newTestOrchestrator(t, fakeProfiles{"u-peanut": peanutProfile()}, recipes, events)

	result, err := o.Recommend(context.Background(), "u-peanut", 1)
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 1)
}

func fiveSafeRecipes() *fakeRecipes {
	recipes := &fakeRecipes{}
	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		recipes.recipes = append(recipes.recipes, testRecipe(id, "Breakfast", 500, 4, 300, "rice", "spinach"))
	}
	return recipes
}

func newSlowRationaleOrchestrator(t *testing.T, writer domain.RationaleWriter, rationaleTimeout time.Duration, events *fakeEvents) *Orchestrator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RationaleTimeout = rationaleTimeout
	o, err := NewOrchestrator(Dependencies{
		Profiles:  fakeProfiles{"u-peanut": peanutProfile()},
		Recipes:   fiveSafeRecipes(),
		Events:    events,
		Rationale: writer,
		Clock:     func() time.Time { return lunchTime },
	}, cfg)
	require.NoError(t, err)
	return o
}

func TestRecommendSlowRationaleSharesOneBudget(t *testing.T) {
	writer := &blockingWriter{}
	events := &fakeEvents{}
	o := newSlowRationaleOrchestrator(t, writer, 50*time.Millisecond, events)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := o.Recommend(ctx, "u-peanut", 5)

	require.NoError(t, err)
	require.Len(t, result.Recommendations, 5)
	assert.Equal(t, 1, writer.calls, "later recommendations skip the exhausted budget")
	for _, rec := range result.Recommendations {
		assert.NotEmpty(t, rec.Rationale)
	}
	assert.Len(t, events.events, 5)
}

func TestRecommendKeepsFinishedResultAfterDeadline(t *testing.T) {
	writer := &blockingWriter{}
	events := &fakeEvents{}
	o := newSlowRationaleOrchestrator(t, writer, time.Minute, events)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	result, err := o.Recommend(ctx, "u-peanut", 5)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Recommendations, 5)
	for _, rec := range result.Recommendations {
		assert.NotEmpty(t, rec.Rationale)
	}
	assert.Empty(t, events.events, "event recording is skipped once the request deadline has passed")
}

func TestRecommendHonorsCancellation(t *testing.T) {
	o := newTestOrchestrator(t, fakeProfiles{"u-peanut": peanutProfile()}, &fakeRecipes{}, &fakeEvents{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Recommend(ctx, "u-peanut", 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPersonalize(t *testing.T) {
	recipes := &fakeRecipes{recipes: []domain.Recipe{
		testRecipe("oats", "Breakfast", 1500, 4, 300, "rolled oats", "almond butter"),
	}}
	o := newTestOrchestrator(t, fakeProfiles{"u-peanut": peanutProfile()}, recipes, &fakeEvents{})

	rec, err := o.Personalize(context.Background(), "u-peanut", "oats")
	require.NoError(t, err)
	assert.Equal(t, "oats", rec.ID)
	assert.True(t, rec.PortionAdapted)
	assert.Equal(t, 2, rec.OriginalServings)
	assert.Greater(t, rec.Servings, 2)
	assert.NotEmpty(t, rec.Rationale)
	assert.Len(t, rec.Steps, 2)

	_, err = o.Personalize(context.Background(), "u-peanut", "missing")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = o.Personalize(context.Background(), "nobody", "oats")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRecordFeedback(t *testing.T) {
	events := &fakeEvents{}
	o := newTestOrchestrator(t, fakeProfiles{}, &fakeRecipes{}, events)
	ctx := context.Background()

	err := o.RecordFeedback(ctx, domain.InteractionEvent{UserID: "u1", RecipeID: "r1", Event: "poke"})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	err = o.RecordFeedback(ctx, domain.InteractionEvent{RecipeID: "r1", Event: domain.EventLike})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	require.NoError(t, o.RecordFeedback(ctx, domain.InteractionEvent{UserID: "u1", RecipeID: "r1", Event: domain.EventLike}))
	require.Len(t, events.events, 1)
	assert.NotEmpty(t, events.events[0].ID)
	assert.Equal(t, lunchTime, events.events[0].CreatedAt)

	events.err = errors.New("unavailable")
	err = o.RecordFeedback(ctx, domain.InteractionEvent{UserID: "u1", RecipeID: "r1", Event: domain.EventSave})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidEvent)
}

func TestNewOrchestratorRequiresStores(t *testing.T) {
	_, err := NewOrchestrator(Dependencies{}, DefaultConfig())
	assert.Error(t, err)
}
