package persistence

import (
	"recipe-recommender/internal/core/domain"
)

// ProfileToDomain 轉換健康檔案
func ProfileToDomain(m *UserHealthProfileModel) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:            m.UserID,
		FullName:          m.FullName,
		Allergies:         append([]string{}, m.Allergies...),
		MedicalConditions: append([]string{}, m.MedicalConditions...),
		DietStyle:         domain.NormalizeDietStyle(m.DietStyle),
		CookingSkill:      domain.NormalizeCookingSkill(m.CookingSkill),
		HealthGoal:        domain.NormalizeHealthGoal(m.HealthGoal),
		DailyCalorieGoal:  m.DailyCalorieGoal,
	}
}

// ProfileToModel 轉換健康檔案
func ProfileToModel(p *domain.UserProfile) *UserHealthProfileModel {
	return &UserHealthProfileModel{
		UserID:            p.UserID,
		FullName:          p.FullName,
		Allergies:         StringSlice(p.Allergies),
		MedicalConditions: StringSlice(p.MedicalConditions),
		DietStyle:         string(p.DietStyle),
		CookingSkill:      string(p.CookingSkill),
		HealthGoal:        string(p.HealthGoal),
		DailyCalorieGoal:  p.DailyCalorieGoal,
	}
}

// RecipeToDomain 轉換食譜；食材需已依 Position 排序
func RecipeToDomain(m *RecipeModel) domain.Recipe {
	r := domain.Recipe{
		ID:           m.ID,
		Title:        m.Title,
		Category:     m.Category,
		Cuisine:      m.Cuisine,
		Instructions: m.Instructions,
		Servings:     m.Servings,
		ImageURL:     m.ImageURL,
		Ingredients:  make([]domain.Ingredient, 0, len(m.Ingredients)),
	}
	for _, ing := range m.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{
			Name:          ing.Name,
			AmountText:    ing.AmountText,
			Unit:          ing.Unit,
			GramsEstimate: ing.GramsEstimate,
		})
	}
	if n := m.Nutrients; n != nil {
		r.Nutrition = &domain.ReportedNutrition{
			CaloriesKcal: n.CaloriesKcal,
			ProteinG:     n.ProteinG,
			CarbsG:       n.CarbsG,
			FatG:         n.FatG,
			FiberG:       n.FiberG,
			SugarG:       n.SugarG,
			SodiumMg:     n.SodiumMg,
		}
	}
	return r
}

// RecipeToModel 轉換食譜
func RecipeToModel(r *domain.Recipe) *RecipeModel {
	m := &RecipeModel{
		ID:           r.ID,
		Title:        r.Title,
		Category:     r.Category,
		Cuisine:      r.Cuisine,
		Instructions: r.Instructions,
		Servings:     r.Servings,
		ImageURL:     r.ImageURL,
	}
	for i, ing := range r.Ingredients {
		m.Ingredients = append(m.Ingredients, RecipeIngredientModel{
			RecipeID:      r.ID,
			Position:      i,
			Name:          ing.Name,
			AmountText:    ing.AmountText,
			Unit:          ing.Unit,
			GramsEstimate: ing.GramsEstimate,
		})
	}
	if n := r.Nutrition; n != nil {
		m.Nutrients = &RecipeNutrientModel{
			RecipeID:     r.ID,
			CaloriesKcal: n.CaloriesKcal,
			ProteinG:     n.ProteinG,
			CarbsG:       n.CarbsG,
			FatG:         n.FatG,
			FiberG:       n.FiberG,
			SugarG:       n.SugarG,
			SodiumMg:     n.SodiumMg,
		}
	}
	return m
}

// EventToModel 轉換互動事件
func EventToModel(e domain.InteractionEvent) RecipeEventModel {
	return RecipeEventModel{
		ID:        e.ID,
		UserID:    e.UserID,
		RecipeID:  e.RecipeID,
		Event:     string(e.Event),
		CreatedAt: e.CreatedAt,
	}
}

// EventToDomain 轉換互動事件
func EventToDomain(m RecipeEventModel) domain.InteractionEvent {
	return domain.InteractionEvent{
		ID:        m.ID,
		UserID:    m.UserID,
		RecipeID:  m.RecipeID,
		Event:     domain.EventType(m.Event),
		CreatedAt: m.CreatedAt,
	}
}
