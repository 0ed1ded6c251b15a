package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/pkg/common"
)

func num(v float64) *float64 { return &v }

func ing(name, amount string) domain.Ingredient {
	return domain.Ingredient{Name: name, AmountText: amount}
}

// seedRecipes 示範用食譜，部分缺少營養資料以展示估算流程
var seedRecipes = []domain.Recipe{
	{
		ID: "52772", Title: "Teriyaki Chicken Casserole", Category: "Chicken", Cuisine: "Japanese", Servings: 4,
		Instructions: "STEP 1\r\nPreheat oven to 350F.\r\nSTEP 2\r\nCombine soy sauce, brown sugar and garlic in a small saucepan and simmer for 5 minutes.\r\nSTEP 3\r\nPlace chicken breast in a baking dish, pour over the sauce and bake for 35 minutes.\r\nSTEP 4\r\nServe over rice.",
		Ingredients: []domain.Ingredient{
			ing("soy sauce", "3/4 cup"), ing("brown sugar", "1/2 cup"), ing("garlic", "2 cloves"),
			ing("chicken breast", "900 g"), ing("rice", "2 cups"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(560), ProteinG: num(52), CarbsG: num(70), FatG: num(6), SugarG: num(28), SodiumMg: num(2400)},
	},
	{
		ID: "52785", Title: "Dal fry", Category: "Vegetarian", Cuisine: "Indian", Servings: 4,
		Instructions: "1. Wash and boil the lentils for 20 minutes.\n2. Heat oil in a pan and fry the onion until golden.\n3. Add garlic, tomato and spices and stir for 2 minutes.\n4. Mix in the lentils and simmer for 10 minutes.",
		Ingredients: []domain.Ingredient{
			ing("lentils", "1 cup"), ing("oil", "2 tbsp"), ing("onion", "1 large"),
			ing("garlic", "3 cloves"), ing("tomato", "2 medium"), ing("cumin", "1 tsp"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(320), ProteinG: num(14), CarbsG: num(44)},
	},
	{
		ID: "52870", Title: "Chicken Satay Noodles", Category: "Chicken", Cuisine: "Thai", Servings: 2,
		Instructions: "Cook the noodles. Whisk peanut butter, soy sauce and lime juice. Stir fry the chicken for 8 minutes, then toss with the noodles and sauce.",
		Ingredients: []domain.Ingredient{
			ing("noodles", "200 g"), ing("peanut butter", "3 tbsp"), ing("soy sauce", "2 tbsp"),
			ing("lime juice", "1 tbsp"), ing("chicken thigh", "300 g"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(720), ProteinG: num(45)},
	},
	{
		ID: "52900", Title: "Almond Butter Oat Bowl", Category: "Breakfast", Cuisine: "American", Servings: 1,
		Instructions: "Simmer the oats in oat milk for 5 minutes. Top with almond butter, banana and a drizzle of honey.",
		Ingredients: []domain.Ingredient{
			ing("oats", "1/2 cup"), ing("oat milk", "1 cup"), ing("almond butter", "1 tbsp"),
			ing("banana", "1"), ing("honey", "1 tsp"),
		},
	},
	{
		ID: "52955", Title: "Egg Drop Soup", Category: "Starter", Cuisine: "Chinese", Servings: 4,
		Instructions: "Bring the stock to a boil. Slowly pour in the beaten eggs while stirring. Season with soy sauce and scallions.",
		Ingredients: []domain.Ingredient{
			ing("chicken stock", "4 cups"), ing("eggs", "3"), ing("soy sauce", "1 tbsp"), ing("scallions", "2"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(90), ProteinG: num(7), SodiumMg: num(900)},
	},
	{
		ID: "52959", Title: "Baked Salmon with Fennel", Category: "Seafood", Cuisine: "Italian", Servings: 2,
		Instructions: "Preheat the oven. Slice the fennel and toss with olive oil. Roast the fennel for 15 minutes, add the salmon and bake for 12 minutes.",
		Ingredients: []domain.Ingredient{
			ing("salmon", "2 fillets"), ing("fennel", "1 bulb"), ing("olive oil", "2 tbsp"), ing("lemon", "1"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(480), ProteinG: num(40), CarbsG: num(8), FatG: num(30)},
	},
	{
		ID: "53013", Title: "Creamy Tomato Pasta", Category: "Pasta", Cuisine: "Italian", Servings: 2,
		Instructions: "1) Boil the pasta for 10 minutes.\n2) Saute the garlic in butter.\n3) Add chopped tomato and cream, simmer, then toss with pasta and parmesan.",
		Ingredients: []domain.Ingredient{
			ing("pasta", "250 g"), ing("butter", "2 tbsp"), ing("garlic", "2 cloves"),
			ing("tomato", "400 g"), ing("cream", "1/2 cup"), ing("parmesan", "40 g"),
		},
	},
	{
		ID: "53025", Title: "Chickpea Spinach Curry", Category: "Vegan", Cuisine: "Indian", Servings: 4,
		Instructions: "Fry the onion in oil, add garlic and curry powder. Stir in chickpeas, coconut milk and spinach and simmer for 15 minutes.",
		Ingredients: []domain.Ingredient{
			ing("oil", "1 tbsp"), ing("onion", "1"), ing("garlic", "2 cloves"), ing("curry powder", "2 tbsp"),
			ing("chickpeas", "2 cans"), ing("coconut milk", "1 can"), ing("spinach", "200 g"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(410), ProteinG: num(13), CarbsG: num(38), FatG: num(24), FiberG: num(11)},
	},
	{
		ID: "53050", Title: "Beef and Broccoli Stir Fry", Category: "Beef", Cuisine: "Chinese", Servings: 3,
		Instructions: "Slice the beef thinly. Stir fry the broccoli for 3 minutes, add the beef and cook 5 minutes. Add soy sauce and honey and serve with rice.",
		Ingredients: []domain.Ingredient{
			ing("beef", "500 g"), ing("broccoli", "2 cups"), ing("soy sauce", "3 tbsp"),
			ing("honey", "1 tbsp"), ing("rice", "1 cup"),
		},
	},
	{
		ID: "53060", Title: "Greek Salad", Category: "Side", Cuisine: "Greek", Servings: 2,
		Instructions: "Chop the cucumber, tomato and onion. Toss with olives, feta cheese and olive oil.",
		Ingredients: []domain.Ingredient{
			ing("cucumber", "1"), ing("tomato", "3"), ing("red onion", "1/2"), ing("olives", "1/2 cup"),
			ing("feta cheese", "100 g"), ing("olive oil", "2 tbsp"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(290), ProteinG: num(9)},
	},
	{
		ID: "53071", Title: "Shrimp Tacos", Category: "Seafood", Cuisine: "Mexican", Servings: 3,
		Instructions: "Season the shrimp and grill for 4 minutes. Warm the tortillas and fill with shrimp, cabbage and lime.",
		Ingredients: []domain.Ingredient{
			ing("shrimp", "400 g"), ing("tortillas", "6"), ing("cabbage", "2 cups"), ing("lime", "1"),
		},
		Nutrition: &domain.ReportedNutrition{CaloriesKcal: num(380), ProteinG: num(30)},
	},
	{
		ID: "53082", Title: "Banana Pancakes", Category: "Breakfast", Cuisine: "American", Servings: 2,
		Instructions: "Whisk flour, milk and eggs. Mash the banana and mix in. Fry small pancakes in butter for 2 minutes per side.",
		Ingredients: []domain.Ingredient{
			ing("flour", "1 cup"), ing("milk", "1 cup"), ing("eggs", "2"), ing("banana", "1"), ing("butter", "1 tbsp"),
		},
	},
}

// seedProfiles 示範使用者
var seedProfiles = []domain.UserProfile{
	{
		UserID: "demo-peanut", FullName: "Demo Peanut Allergy",
		Allergies: []string{"peanuts"}, DietStyle: domain.DietBalanced,
		CookingSkill: domain.SkillIntermediate, HealthGoal: domain.GoalMaintain, DailyCalorieGoal: 2000,
	},
	{
		UserID: "demo-vegan-diabetic", FullName: "Demo Vegan",
		Allergies: []string{"soy"}, MedicalConditions: []string{"type 2 diabetes"}, DietStyle: domain.DietVegan,
		CookingSkill: domain.SkillBeginner, HealthGoal: domain.GoalWeightLoss, DailyCalorieGoal: 1600,
	},
	{
		UserID: "demo-athlete", FullName: "Demo Athlete",
		DietStyle: domain.DietBalanced, CookingSkill: domain.SkillAdvanced,
		HealthGoal: domain.GoalMuscleGain, DailyCalorieGoal: 2800,
	},
}

// SeedDatabase 資料庫為空時寫入示範資料
func SeedDatabase(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipes := NewRecipeRepository(tx)
		for i := range seedRecipes {
			if err := recipes.SaveRecipe(ctx, &seedRecipes[i]); err != nil {
				return err
			}
		}
		profiles := NewProfileRepository(tx)
		for i := range seedProfiles {
			if err := profiles.SaveProfile(ctx, &seedProfiles[i]); err != nil {
				return err
			}
		}
		common.LogInfo("Seeded demo data",
			zap.Int("recipes", len(seedRecipes)),
			zap.Int("profiles", len(seedProfiles)),
		)
		return nil
	})
}
