package safety

import (
	"fmt"
	"strings"

	"recipe-recommender/internal/core/allergen"
	"recipe-recommender/internal/core/domain"
)

// NutritionResolver 取得食譜每份營養值
type NutritionResolver interface {
	Resolve(recipe domain.Recipe) domain.NutritionEstimate
}

// Validator 食譜安全檢查：過敏原為絕對排除，病症與熱量僅扣分與警告
type Validator struct {
	kb        *allergen.KnowledgeBase
	nutrition NutritionResolver
	rules     []ConditionRule
	index     map[string]int
	cfg       Config
}

// NewValidator 建立安全檢查器
func NewValidator(kb *allergen.KnowledgeBase, nutrition NutritionResolver, rules []ConditionRule, cfg Config) *Validator {
	v := &Validator{
		kb:        kb,
		nutrition: nutrition,
		rules:     make([]ConditionRule, len(rules)),
		index:     make(map[string]int),
		cfg:       cfg.withDefaults(),
	}
	copy(v.rules, rules)
	for i, rule := range v.rules {
		watch := make([]string, 0, len(rule.WatchIngredients))
		for _, w := range rule.WatchIngredients {
			watch = append(watch, normalize(w))
		}
		v.rules[i].WatchIngredients = watch
		v.index[normalize(rule.Name)] = i
		for _, alias := range rule.Aliases {
			v.index[normalize(alias)] = i
		}
	}
	return v
}

// Config 目前使用的評分參數
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate 以解析後的營養值評估食譜
func (v *Validator) Validate(recipe domain.Recipe, profile domain.UserProfile) domain.SafetyAssessment {
	return v.ValidateWithNutrition(recipe, v.nutrition.Resolve(recipe).Facts, profile)
}

// ValidateWithNutrition 使用呼叫端已取得的每份營養值評估食譜
func (v *Validator) ValidateWithNutrition(recipe domain.Recipe, facts domain.NutritionFacts, profile domain.UserProfile) domain.SafetyAssessment {
	a := domain.SafetyAssessment{
		Level:                 domain.LevelSafe,
		Score:                 100,
		Warnings:              []string{},
		BlockingReasons:       []string{},
		RequiredModifications: []string{},
	}

	// 無食材無法判定：標為 risky 並以 Inconclusive 排除，dangerous 只留給過敏原命中
	if !hasIngredients(recipe) {
		a.Level = domain.LevelRisky
		a.Score = 0
		a.Inconclusive = true
		a.BlockingReasons = append(a.BlockingReasons, "ingredient list is empty; safety cannot be verified")
		return a
	}

	if len(profile.Allergies) == 0 && len(profile.MedicalConditions) == 0 {
		return a
	}

	// 過敏原：包含比對，任何命中即排除
	terms := v.kb.ForbiddenTerms(profile.Allergies)
	for _, ing := range recipe.Ingredients {
		if term, ok := allergen.Match(ing.Name, terms); ok {
			a.BlockingReasons = append(a.BlockingReasons,
				fmt.Sprintf("contains %s (matches allergen term %q)", ing.Name, term))
		}
	}
	if len(a.BlockingReasons) > 0 {
		a.Level = domain.LevelDangerous
		a.Score = 0
		return a
	}

	score := 100
	seen := make(map[int]bool)
	for _, condition := range profile.MedicalConditions {
		idx, ok := v.index[normalize(condition)]
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		if v.checkCondition(v.rules[idx], recipe, facts, &a) {
			score -= v.cfg.ConditionPenalty
		}
	}

	if profile.DailyCalorieGoal > 0 {
		budget := float64(profile.DailyCalorieGoal) / float64(v.cfg.MealsPerDay)
		if facts.CaloriesKcal > budget*v.cfg.CalorieOverageRatio {
			a.Warnings = append(a.Warnings, fmt.Sprintf(
				"%.0f kcal per serving is well above your per-meal budget of %.0f kcal", facts.CaloriesKcal, budget))
			addModification(&a, "reduce portion")
			addModification(&a, "use lighter ingredients")
			score -= v.cfg.CaloriePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	a.Score = score
	a.Level = v.levelFor(score, len(a.Warnings))
	return a
}

// checkCondition 回傳是否超過該病症任一營養上限
func (v *Validator) checkCondition(rule ConditionRule, recipe domain.Recipe, facts domain.NutritionFacts, a *domain.SafetyAssessment) bool {
	breached := false
	check := func(value, limit float64, nutrient, unit, modification string) {
		if limit <= 0 || value <= limit {
			return
		}
		breached = true
		a.Warnings = append(a.Warnings, fmt.Sprintf("high %s for %s: %.0f%s per serving (limit %.0f%s)",
			nutrient, rule.Name, value, unit, limit, unit))
		addModification(a, modification)
	}

	check(facts.SugarG, rule.MaxSugarG, "sugar", "g", "reduce added sugar or use a sugar substitute")
	check(facts.CarbsG, rule.MaxCarbsG, "carbohydrates", "g", "swap refined starches for vegetables or whole grains")
	check(facts.SodiumMg, rule.MaxSodiumMg, "sodium", "mg", "use low-sodium alternatives and season with herbs")
	check(facts.FatG, rule.MaxFatG, "fat", "g", "use lean proteins and less added fat")
	check(facts.ProteinG, rule.MaxProteinG, "protein", "g", "reduce the protein portion")

	for _, ing := range recipe.Ingredients {
		if term, ok := allergen.Match(ing.Name, rule.WatchIngredients); ok {
			a.Warnings = append(a.Warnings, fmt.Sprintf("contains %s; watch this with %s", ing.Name, rule.Name))
			addModification(a, fmt.Sprintf("limit or replace %s", term))
		}
	}
	return breached
}

func (v *Validator) levelFor(score, warnings int) domain.SafetyLevel {
	switch {
	case score >= v.cfg.SafeThreshold && warnings == 0:
		return domain.LevelSafe
	case score >= v.cfg.ModificationThreshold:
		return domain.LevelSafeWithModifications
	default:
		return domain.LevelRisky
	}
}

func hasIngredients(recipe domain.Recipe) bool {
	for _, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing.Name) != "" {
			return true
		}
	}
	return false
}

func addModification(a *domain.SafetyAssessment, m string) {
	for _, existing := range a.RequiredModifications {
		if existing == m {
			return
		}
	}
	a.RequiredModifications = append(a.RequiredModifications, m)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
