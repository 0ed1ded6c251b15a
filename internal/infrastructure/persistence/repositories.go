package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-recommender/internal/core/domain"
)

// ProfileRepository 健康檔案資料存取
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 建立健康檔案資料存取
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// LoadProfile 實作 domain.ProfileStore
func (r *ProfileRepository) LoadProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var model UserHealthProfileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return ProfileToDomain(&model), nil
}

// SaveProfile 新增或覆寫健康檔案
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	if err := r.db.WithContext(ctx).Save(ProfileToModel(profile)).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// RecipeRepository 食譜資料存取
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 建立食譜資料存取
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position ASC")
		}).
		Preload("Nutrients")
}

// likeEscaper 讓使用者輸入的 % 與 _ 以字面比對
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// FetchCandidates 實作 domain.RecipeStore 的粗略篩選
//
// 排除任何食材名稱包含禁用詞的食譜、排除分類，熱量不在範圍內的食譜
// （無熱量資料者保留給估算器處理）。偏好分類排在前面，其餘依 id 排序。
func (r *RecipeRepository) FetchCandidates(ctx context.Context, query domain.CandidateQuery) ([]domain.Recipe, error) {
	q := r.withAssociations(ctx).Model(&RecipeModel{})

	for _, term := range query.ExcludedTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		q = q.Where(`NOT EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id AND LOWER(ri.name) LIKE ? ESCAPE '\')`,
			"%"+likeEscaper.Replace(term)+"%")
	}
	if len(query.ExcludedCategories) > 0 {
		q = q.Where("recipes.category NOT IN ?", query.ExcludedCategories)
	}
	if query.MaxCalories > 0 {
		q = q.Where("NOT EXISTS (SELECT 1 FROM recipe_nutrients rn WHERE rn.recipe_id = recipes.id AND rn.calories_kcal IS NOT NULL AND (rn.calories_kcal < ? OR rn.calories_kcal > ?))",
			query.MinCalories, query.MaxCalories)
	}

	if len(query.PreferredCategories) > 0 {
		q = q.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "CASE WHEN recipes.category IN ? THEN 0 ELSE 1 END, recipes.id",
			Vars: []interface{}{query.PreferredCategories},
		}})
	} else {
		q = q.Order("recipes.id")
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	var models []RecipeModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, RecipeToDomain(&models[i]))
	}
	return recipes, nil
}

// GetRecipe 實作 domain.RecipeStore
func (r *RecipeRepository) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var model RecipeModel
	err := r.withAssociations(ctx).Where("recipes.id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	recipe := RecipeToDomain(&model)
	return &recipe, nil
}

// SaveRecipe 新增食譜與其食材、營養資料
func (r *RecipeRepository) SaveRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := r.db.WithContext(ctx).Create(RecipeToModel(recipe)).Error; err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// EventRepository 互動事件資料存取
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository 建立互動事件資料存取
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// RecordEvents 實作 domain.EventRecorder；缺少 id 或時間時自動補上
func (r *EventRepository) RecordEvents(ctx context.Context, events []domain.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]RecipeEventModel, 0, len(events))
	for _, e := range events {
		m := EventToModel(e)
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
		models = append(models, m)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return fmt.Errorf("failed to record events: %w", err)
	}
	return nil
}

// ListEvents 依時間倒序列出使用者的互動事件
func (r *EventRepository) ListEvents(ctx context.Context, userID string, limit int) ([]domain.InteractionEvent, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var models []RecipeEventModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]domain.InteractionEvent, 0, len(models))
	for _, m := range models {
		events = append(events, EventToDomain(m))
	}
	return events, nil
}
