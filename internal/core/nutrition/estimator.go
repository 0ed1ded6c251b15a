package nutrition

import (
	"math"
	"sort"
	"strings"

	"recipe-recommender/internal/core/domain"
)

// Config 營養估算參數
type Config struct {
	// PlausibilityFloorKcal 食材加總熱量低於此值時改用類別基準值
	PlausibilityFloorKcal float64 `mapstructure:"plausibility_floor_kcal"`
	// MaxPlausibleKcal 每份熱量超過此值的來源資料視為不可信
	MaxPlausibleKcal float64 `mapstructure:"max_plausible_kcal"`
}

// DefaultConfig 預設參數
func DefaultConfig() Config {
	return Config{
		PlausibilityFloorKcal: 50,
		MaxPlausibleKcal:      5000,
	}
}

// Estimator 營養估算器（兩層備援：食材加總 -> 類別基準值）
type Estimator struct {
	cfg           Config
	referenceKeys []string
	reference     map[string]profile
	baselines     map[MealSlot]domain.NutritionFacts
	multipliers   map[string]float64
}

// NewEstimator 建立營養估算器
func NewEstimator(cfg Config) *Estimator {
	if cfg.PlausibilityFloorKcal <= 0 {
		cfg.PlausibilityFloorKcal = DefaultConfig().PlausibilityFloorKcal
	}
	if cfg.MaxPlausibleKcal <= 0 {
		cfg.MaxPlausibleKcal = DefaultConfig().MaxPlausibleKcal
	}

	keys := make([]string, 0, len(referenceTable))
	for k := range referenceTable {
		keys = append(keys, k)
	}
	// 最長詞彙優先，例如 "peanut butter" 先於 "butter"
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &Estimator{
		cfg:           cfg,
		referenceKeys: keys,
		reference:     referenceTable,
		baselines:     slotBaselines,
		multipliers:   cuisineMultipliers,
	}
}

// Estimate 估算每份營養值，結果一律標記為 estimated
func (e *Estimator) Estimate(recipe domain.Recipe) domain.NutritionEstimate {
	if facts, total, ok := e.fromIngredients(recipe); ok && total > e.cfg.PlausibilityFloorKcal && facts.CaloriesKcal >= 1 {
		return domain.NutritionEstimate{
			Facts:  round(facts),
			Source: domain.SourceEstimated,
			Method: domain.MethodIngredients,
		}
	}
	return domain.NutritionEstimate{
		Facts:  e.CategoryBaseline(recipe.Category, recipe.Cuisine),
		Source: domain.SourceEstimated,
		Method: domain.MethodCategory,
	}
}

// Resolve 優先採用可信的來源營養值，缺漏欄位以估算值補齊
func (e *Estimator) Resolve(recipe domain.Recipe) domain.NutritionEstimate {
	rep := recipe.Nutrition
	if !e.plausible(rep) {
		return e.Estimate(recipe)
	}

	var estimate *domain.NutritionEstimate
	fill := func(v *float64, pick func(domain.NutritionFacts) float64) (float64, bool) {
		if v != nil {
			return *v, false
		}
		if estimate == nil {
			est := e.Estimate(recipe)
			estimate = &est
		}
		return pick(estimate.Facts), true
	}

	var facts domain.NutritionFacts
	var missProtein, missCarbs, missFat, missFiber, missSugar, missSodium bool
	facts.CaloriesKcal = *rep.CaloriesKcal
	facts.ProteinG, missProtein = fill(rep.ProteinG, func(f domain.NutritionFacts) float64 { return f.ProteinG })
	facts.CarbsG, missCarbs = fill(rep.CarbsG, func(f domain.NutritionFacts) float64 { return f.CarbsG })
	facts.FatG, missFat = fill(rep.FatG, func(f domain.NutritionFacts) float64 { return f.FatG })
	facts.FiberG, missFiber = fill(rep.FiberG, func(f domain.NutritionFacts) float64 { return f.FiberG })
	facts.SugarG, missSugar = fill(rep.SugarG, func(f domain.NutritionFacts) float64 { return f.SugarG })
	facts.SodiumMg, missSodium = fill(rep.SodiumMg, func(f domain.NutritionFacts) float64 { return f.SodiumMg })

	result := domain.NutritionEstimate{
		Facts:  round(facts),
		Source: domain.SourceAuthoritative,
		Method: domain.MethodReported,
	}
	if missProtein || missCarbs || missFat || missFiber || missSugar || missSodium {
		result.Method = domain.MethodMerged
	}
	// 核心巨量營養素缺漏時，整體視為估算值
	if missProtein || missCarbs || missFat {
		result.Source = domain.SourceEstimated
	}
	return result
}

// CategoryBaseline 依餐別與菜系回傳基準值，同一組 (category, cuisine) 結果固定
func (e *Estimator) CategoryBaseline(category, cuisine string) domain.NutritionFacts {
	base := e.baselines[SlotFor(category)]
	multiplier, ok := e.multipliers[strings.ToLower(strings.TrimSpace(cuisine))]
	if !ok {
		multiplier = 1.0
	}
	return round(base.Scale(multiplier))
}

// SlotFor 食譜類別對應的餐別，未知類別視為正餐
func SlotFor(category string) MealSlot {
	c := strings.ToLower(strings.TrimSpace(category))
	if slot, ok := categorySlots[c]; ok {
		return slot
	}
	keys := make([]string, 0, len(categorySlots))
	for k := range categorySlots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(c, k) {
			return categorySlots[k]
		}
	}
	return SlotDinner
}

// GramsFor 估算單一食材重量（克）
func (e *Estimator) GramsFor(ing domain.Ingredient) float64 {
	if ing.GramsEstimate != nil {
		return math.Max(0, *ing.GramsEstimate)
	}

	name := strings.ToLower(ing.Name)
	class := classify(name)
	amount := ParseAmount(ing.AmountText)
	unit := amount.Unit
	if u := NormalizeUnit(ing.Unit); u != "" {
		unit = u
	}

	if !amount.HasValue {
		if strings.Contains(strings.ToLower(ing.AmountText), "to taste") || class == classSpice {
			return 1
		}
		return pieceWeight(name, class)
	}

	switch unit {
	case "cup":
		return amount.Quantity * cupGrams[class]
	case "", "piece":
		return amount.Quantity * pieceWeight(name, class)
	default:
		return amount.Quantity * gramsPerUnit[unit]
	}
}

func (e *Estimator) lookup(name string) (profile, bool) {
	lower := strings.ToLower(name)
	for _, key := range e.referenceKeys {
		if strings.Contains(lower, key) {
			return e.reference[key], true
		}
	}
	return profile{}, false
}

// fromIngredients 食材加總後除以份數；回傳每份營養值與整道菜總熱量
func (e *Estimator) fromIngredients(recipe domain.Recipe) (domain.NutritionFacts, float64, bool) {
	var total domain.NutritionFacts
	matched := false
	for _, ing := range recipe.Ingredients {
		p, ok := e.lookup(ing.Name)
		if !ok {
			continue
		}
		grams := e.GramsFor(ing)
		if grams <= 0 {
			continue
		}
		matched = true
		f := grams / 100
		total.CaloriesKcal += p.kcal * f
		total.ProteinG += p.protein * f
		total.CarbsG += p.carbs * f
		total.FatG += p.fat * f
		total.FiberG += p.fiber * f
		total.SugarG += p.sugar * f
		total.SodiumMg += p.sodium * f
	}
	if !matched {
		return domain.NutritionFacts{}, 0, false
	}
	servings := recipe.Servings
	if servings < 1 {
		servings = 1
	}
	return total.Scale(1 / float64(servings)), total.CaloriesKcal, true
}

func (e *Estimator) plausible(rep *domain.ReportedNutrition) bool {
	if rep == nil || rep.CaloriesKcal == nil {
		return false
	}
	kcal := *rep.CaloriesKcal
	if kcal <= 0 || kcal > e.cfg.MaxPlausibleKcal {
		return false
	}
	for _, v := range []*float64{rep.ProteinG, rep.CarbsG, rep.FatG, rep.FiberG, rep.SugarG, rep.SodiumMg} {
		if v != nil && *v < 0 {
			return false
		}
	}
	return true
}

func round(f domain.NutritionFacts) domain.NutritionFacts {
	r := func(v float64) float64 { return math.Round(v*10) / 10 }
	return domain.NutritionFacts{
		CaloriesKcal: r(f.CaloriesKcal),
		ProteinG:     r(f.ProteinG),
		CarbsG:       r(f.CarbsG),
		FatG:         r(f.FatG),
		FiberG:       r(f.FiberG),
		SugarG:       r(f.SugarG),
		SodiumMg:     r(f.SodiumMg),
	}
}
