package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserHealthProfileModel 使用者健康檔案
type UserHealthProfileModel struct {
	UserID            string      `gorm:"primaryKey;size:64"`
	FullName          string      `gorm:"size:128"`
	Allergies         StringSlice `gorm:"type:json"`
	MedicalConditions StringSlice `gorm:"type:json"`
	DietStyle         string      `gorm:"size:32"`
	CookingSkill      string      `gorm:"size:32"`
	HealthGoal        string      `gorm:"size:32"`
	DailyCalorieGoal  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName 指定表名
func (UserHealthProfileModel) TableName() string {
	return "user_health_profiles"
}

// RecipeModel 食譜
type RecipeModel struct {
	ID           string                  `gorm:"primaryKey;size:64"`
	Title        string                  `gorm:"size:255;not null"`
	Category     string                  `gorm:"size:64;index"`
	Cuisine      string                  `gorm:"size:64"`
	Instructions string                  `gorm:"type:text"`
	Servings     int                     `gorm:"default:1"`
	ImageURL     string                  `gorm:"size:512"`
	Ingredients  []RecipeIngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Nutrients    *RecipeNutrientModel    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 指定表名
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeIngredientModel 食譜食材，依 Position 排序
type RecipeIngredientModel struct {
	ID            uint   `gorm:"primaryKey"`
	RecipeID      string `gorm:"size:64;index;not null"`
	Position      int
	Name          string `gorm:"size:255;not null"`
	AmountText    string `gorm:"size:128"`
	Unit          string `gorm:"size:32"`
	GramsEstimate *float64
}

// TableName 指定表名
func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

// RecipeNutrientModel 資料來源提供的每份營養值，欄位可為 NULL
type RecipeNutrientModel struct {
	RecipeID     string `gorm:"primaryKey;size:64"`
	CaloriesKcal *float64
	ProteinG     *float64
	CarbsG       *float64
	FatG         *float64
	FiberG       *float64
	SugarG       *float64
	SodiumMg     *float64
}

// TableName 指定表名
func (RecipeNutrientModel) TableName() string {
	return "recipe_nutrients"
}

// RecipeEventModel 使用者互動事件
type RecipeEventModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:64;index;not null"`
	RecipeID  string    `gorm:"size:64;index;not null"`
	Event     string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName 指定表名
func (RecipeEventModel) TableName() string {
	return "recipe_events"
}

// StringSlice 以 JSON 儲存的字串陣列
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// AllModels 需要遷移的模型
func AllModels() []interface{} {
	return []interface{}{
		&UserHealthProfileModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&RecipeNutrientModel{},
		&RecipeEventModel{},
	}
}
