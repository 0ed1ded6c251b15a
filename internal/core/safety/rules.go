package safety

// ConditionRule 病症 -> 每份營養上限與需留意食材（0 表示不設限）
type ConditionRule struct {
	Name             string   `mapstructure:"name" json:"name"`
	Aliases          []string `mapstructure:"aliases" json:"aliases"`
	MaxSugarG        float64  `mapstructure:"max_sugar_g" json:"max_sugar_g"`
	MaxCarbsG        float64  `mapstructure:"max_carbs_g" json:"max_carbs_g"`
	MaxSodiumMg      float64  `mapstructure:"max_sodium_mg" json:"max_sodium_mg"`
	MaxFatG          float64  `mapstructure:"max_fat_g" json:"max_fat_g"`
	MaxProteinG      float64  `mapstructure:"max_protein_g" json:"max_protein_g"`
	WatchIngredients []string `mapstructure:"watch_ingredients" json:"watch_ingredients"`
}

// DefaultRules 內建病症規則（經驗值，非臨床驗證）
func DefaultRules() []ConditionRule {
	return []ConditionRule{
		{
			Name:             "diabetes",
			Aliases:          []string{"type 2 diabetes", "type 1 diabetes", "prediabetes", "diabetic"},
			MaxSugarG:        10,
			MaxCarbsG:        45,
			WatchIngredients: []string{"sugar", "honey", "syrup"},
		},
		{
			Name:             "hypertension",
			Aliases:          []string{"high blood pressure"},
			MaxSodiumMg:      600,
			WatchIngredients: []string{"soy sauce", "bacon", "pickled", "cured"},
		},
		{
			Name:             "heart disease",
			Aliases:          []string{"high cholesterol", "cardiac", "cardiovascular", "heart condition"},
			MaxFatG:          20,
			WatchIngredients: []string{"butter", "cream", "lard"},
		},
		{
			Name:        "kidney disease",
			Aliases:     []string{"ckd", "chronic kidney disease", "renal disease"},
			MaxProteinG: 20,
			MaxSodiumMg: 500,
		},
	}
}

// Config 評分參數
type Config struct {
	ConditionPenalty      int     `mapstructure:"condition_penalty"`
	CaloriePenalty        int     `mapstructure:"calorie_penalty"`
	SafeThreshold         int     `mapstructure:"safe_threshold"`
	ModificationThreshold int     `mapstructure:"modification_threshold"`
	CalorieOverageRatio   float64 `mapstructure:"calorie_overage_ratio"`
	MealsPerDay           int     `mapstructure:"meals_per_day"`
}

// DefaultConfig 預設評分參數
func DefaultConfig() Config {
	return Config{
		ConditionPenalty:      25,
		CaloriePenalty:        10,
		SafeThreshold:         90,
		ModificationThreshold: 70,
		CalorieOverageRatio:   1.5,
		MealsPerDay:           3,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ConditionPenalty <= 0 {
		c.ConditionPenalty = d.ConditionPenalty
	}
	if c.CaloriePenalty < 0 {
		c.CaloriePenalty = d.CaloriePenalty
	}
	if c.SafeThreshold <= 0 {
		c.SafeThreshold = d.SafeThreshold
	}
	if c.ModificationThreshold <= 0 {
		c.ModificationThreshold = d.ModificationThreshold
	}
	if c.CalorieOverageRatio <= 0 {
		c.CalorieOverageRatio = d.CalorieOverageRatio
	}
	if c.MealsPerDay <= 0 {
		c.MealsPerDay = d.MealsPerDay
	}
	return c
}
