package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/infrastructure/config"
)

type PersistenceSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	profiles *ProfileRepository
	recipes  *RecipeRepository
	events   *EventRepository
}

func (s *PersistenceSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := SetupDatabase(s.ctx, config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DSN:         filepath.Join(s.T().TempDir(), "recipes.db"),
		AutoMigrate: true,
		Seed:        true,
	}, false)
	s.Require().NoError(err)
	s.db = db
	s.profiles = NewProfileRepository(db)
	s.recipes = NewRecipeRepository(db)
	s.events = NewEventRepository(db)
}

func (s *PersistenceSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *PersistenceSuite) TestLoadProfile() {
	p, err := s.profiles.LoadProfile(s.ctx, "demo-vegan-diabetic")
	s.Require().NoError(err)
	s.Equal(domain.DietVegan, p.DietStyle)
	s.Equal(domain.SkillBeginner, p.CookingSkill)
	s.Equal([]string{"soy"}, p.Allergies)
	s.Equal([]string{"type 2 diabetes"}, p.MedicalConditions)
	s.Equal(1600, p.DailyCalorieGoal)

	_, err = s.profiles.LoadProfile(s.ctx, "nobody")
	s.ErrorIs(err, domain.ErrProfileNotFound)
}

func (s *PersistenceSuite) TestSaveProfileOverwrites() {
	p := &domain.UserProfile{UserID: "u-new", DietStyle: domain.DietKeto, DailyCalorieGoal: 1800}
	s.Require().NoError(s.profiles.SaveProfile(s.ctx, p))

	p.Allergies = []string{"tree nuts"}
	s.Require().NoError(s.profiles.SaveProfile(s.ctx, p))

	got, err := s.profiles.LoadProfile(s.ctx, "u-new")
	s.Require().NoError(err)
	s.Equal([]string{"tree nuts"}, got.Allergies)
	s.Empty(got.MedicalConditions)
	s.NotNil(got.MedicalConditions)
}

func (s *PersistenceSuite) TestGetRecipeKeepsIngredientOrderAndNullNutrients() {
	r, err := s.recipes.GetRecipe(s.ctx, "52785")
	s.Require().NoError(err)
	s.Equal("Dal fry", r.Title)
	s.Require().Len(r.Ingredients, 6)
	s.Equal("lentils", r.Ingredients[0].Name)
	s.Equal("cumin", r.Ingredients[5].Name)
	s.Require().NotNil(r.Nutrition)
	s.Equal(320.0, *r.Nutrition.CaloriesKcal)
	s.Nil(r.Nutrition.FatG)

	r, err = s.recipes.GetRecipe(s.ctx, "53013")
	s.Require().NoError(err)
	s.Nil(r.Nutrition, "recipes without a nutrient row have no reported nutrition")

	_, err = s.recipes.GetRecipe(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrRecipeNotFound)
}

func (s *PersistenceSuite) TestFetchCandidatesExcludesForbiddenTerms() {
	recipes, err := s.recipes.FetchCandidates(s.ctx, domain.CandidateQuery{
		ExcludedTerms: []string{"peanut", "shrimp"},
		Limit:         50,
	})
	s.Require().NoError(err)

	ids := recipeIDs(recipes)
	s.NotContains(ids, "52870", "satay noodles use peanut butter")
	s.NotContains(ids, "53071", "tacos use shrimp")
	s.Contains(ids, "52900", "almond butter is not a peanut term")
}

func (s *PersistenceSuite) TestFetchCandidatesTreatsWildcardsLiterally() {
	recipes, err := s.recipes.FetchCandidates(s.ctx, domain.CandidateQuery{
		ExcludedTerms: []string{"%", "_", `\`},
		Limit:         3,
	})
	s.Require().NoError(err)
	s.Equal([]string{"52772", "52785", "52870"}, recipeIDs(recipes))
}

func (s *PersistenceSuite) TestFetchCandidatesFiltersAndOrders() {
	recipes, err := s.recipes.FetchCandidates(s.ctx, domain.CandidateQuery{
		ExcludedCategories:  []string{"Beef", "Chicken", "Seafood"},
		PreferredCategories: []string{"Breakfast"},
		MinCalories:         200,
		MaxCalories:         500,
		Limit:               50,
	})
	s.Require().NoError(err)

	ids := recipeIDs(recipes)
	s.Require().GreaterOrEqual(len(ids), 2)
	s.Equal([]string{"52900", "53082"}, ids[:2], "preferred categories first, then by id")
	s.NotContains(ids, "53050")
	s.NotContains(ids, "52955", "90 kcal is below the band")
	s.Contains(ids, "53013", "recipes without reported calories are kept")
	s.Contains(ids, "52785")
}

func (s *PersistenceSuite) TestFetchCandidatesLimit() {
	recipes, err := s.recipes.FetchCandidates(s.ctx, domain.CandidateQuery{Limit: 3})
	s.Require().NoError(err)
	s.Equal([]string{"52772", "52785", "52870"}, recipeIDs(recipes))
}

func (s *PersistenceSuite) TestRecordAndListEvents() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := s.events.RecordEvents(s.ctx, []domain.InteractionEvent{
		{UserID: "demo-peanut", RecipeID: "52785", Event: domain.EventView, CreatedAt: now},
		{UserID: "demo-peanut", RecipeID: "52900", Event: domain.EventLike, CreatedAt: now.Add(time.Minute)},
		{UserID: "demo-athlete", RecipeID: "52772", Event: domain.EventSave},
	})
	s.Require().NoError(err)
	s.NoError(s.events.RecordEvents(s.ctx, nil))

	events, err := s.events.ListEvents(s.ctx, "demo-peanut", 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(domain.EventLike, events[0].Event)
	s.Equal("52785", events[1].RecipeID)
	s.NotEmpty(events[0].ID)

	athlete, err := s.events.ListEvents(s.ctx, "demo-athlete", 0)
	s.Require().NoError(err)
	s.Require().Len(athlete, 1)
	s.False(athlete[0].CreatedAt.IsZero())
}

func (s *PersistenceSuite) TestSeedIsIdempotent() {
	s.Require().NoError(SeedDatabase(s.ctx, s.db))

	var count int64
	s.Require().NoError(s.db.Model(&RecipeModel{}).Count(&count).Error)
	s.Equal(int64(len(seedRecipes)), count)
}

func TestPersistenceSuite(t *testing.T) {
	suite.Run(t, new(PersistenceSuite))
}

func TestSetupDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := SetupDatabase(context.Background(), config.DatabaseConfig{Driver: "mysql", DSN: "x"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestStringSliceScan(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan(`["a","b"]`))
	assert.Equal(t, StringSlice{"a", "b"}, s)
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, StringSlice{}, s)
	assert.Error(t, s.Scan(42))

	v, err := StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func recipeIDs(recipes []domain.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}
