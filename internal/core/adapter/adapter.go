package adapter

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"recipe-recommender/internal/core/allergen"
	"recipe-recommender/internal/core/domain"
)

// Config 調整參數
type Config struct {
	// PortionThreshold 每份熱量超過每餐目標的倍數時調整份量
	PortionThreshold float64 `mapstructure:"portion_threshold"`
	MealsPerDay      int     `mapstructure:"meals_per_day"`
}

// DefaultConfig 預設調整參數
func DefaultConfig() Config {
	return Config{PortionThreshold: 1.2, MealsPerDay: 3}
}

// Adapter 依使用者條件產生食譜副本；不修改輸入
type Adapter struct {
	kb  *allergen.KnowledgeBase
	cfg Config
}

// NewAdapter 建立食譜調整器
func NewAdapter(kb *allergen.KnowledgeBase, cfg Config) *Adapter {
	if cfg.PortionThreshold <= 0 {
		cfg.PortionThreshold = DefaultConfig().PortionThreshold
	}
	if cfg.MealsPerDay <= 0 {
		cfg.MealsPerDay = DefaultConfig().MealsPerDay
	}
	return &Adapter{kb: kb, cfg: cfg}
}

// Adapt 依份量、飲食風格與烹飪技能調整食譜；nutrition 為原食譜每份營養
func (a *Adapter) Adapt(recipe domain.Recipe, nutrition domain.NutritionFacts, profile domain.UserProfile, filters domain.DietaryFilters) domain.AdaptedRecipe {
	out := domain.AdaptedRecipe{
		Recipe:            recipe.Clone(),
		Nutrition:         nutrition,
		OriginalServings:  recipe.Servings,
		SubstitutionNotes: []string{},
		AdaptationNotes:   []string{},
	}

	a.scalePortion(&out, profile, filters)
	a.substitute(&out, profile, filters)
	if filters.CookingSkill == domain.SkillBeginner {
		text, notes, changed := simplifyInstructions(out.Recipe.Instructions)
		if changed {
			out.Recipe.Instructions = text
			out.InstructionsAdapted = true
			out.AdaptationNotes = append(out.AdaptationNotes, notes...)
		}
	}
	return out
}

func (a *Adapter) scalePortion(out *domain.AdaptedRecipe, profile domain.UserProfile, filters domain.DietaryFilters) {
	target := filters.TargetCaloriesPerMeal
	if target <= 0 && profile.DailyCalorieGoal > 0 {
		target = float64(profile.DailyCalorieGoal) / float64(a.cfg.MealsPerDay)
	}
	kcal := out.Nutrition.CaloriesKcal
	if target <= 0 || kcal <= target*a.cfg.PortionThreshold {
		return
	}

	servings := out.Recipe.Servings
	if servings <= 0 {
		servings = 1
	}
	scaled := int(math.Ceil(float64(servings) * kcal / target))
	if scaled <= servings {
		return
	}

	out.Recipe.Servings = scaled
	out.Nutrition = roundFacts(out.Nutrition.Scale(float64(servings) / float64(scaled)))
	out.PortionAdapted = true
	out.AdaptationNotes = append(out.AdaptationNotes, fmt.Sprintf(
		"split into %d servings instead of %d to fit a %.0f kcal meal target", scaled, servings, target))
}

func (a *Adapter) substitute(out *domain.AdaptedRecipe, profile domain.UserProfile, filters domain.DietaryFilters) {
	tables, ok := dietTables[filters.DietStyle]
	if !ok {
		return
	}

	forbidden := a.kb.ForbiddenTerms(profile.Allergies)
	kept := out.Recipe.Ingredients[:0]
	for _, ing := range out.Recipe.Ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name == "" || tables.protects(name) {
			kept = append(kept, ing)
			continue
		}
		sub, ok := tables.find(name)
		if !ok {
			kept = append(kept, ing)
			continue
		}
		replacement := ""
		for _, alt := range sub.alternatives {
			if _, hit := allergen.Match(alt, forbidden); !hit {
				replacement = alt
				break
			}
		}
		out.IngredientsAdapted = true
		if replacement == "" {
			out.SubstitutionNotes = append(out.SubstitutionNotes,
				fmt.Sprintf("removed %s (no allergen-safe substitute)", ing.Name))
			continue
		}
		out.SubstitutionNotes = append(out.SubstitutionNotes,
			fmt.Sprintf("replaced %s with %s", ing.Name, replacement))
		ing.Name = replacement
		ing.GramsEstimate = nil
		kept = append(kept, ing)
	}
	out.Recipe.Ingredients = kept
}

// substitutionSet 單一飲食風格適用的替換規則；初始化後唯讀
type substitutionSet struct {
	rules     []substitution
	patterns  []*regexp.Regexp
	protected []*regexp.Regexp
}

var dietTables = map[domain.DietStyle]*substitutionSet{
	domain.DietVegetarian: newSubstitutionSet(meatSubstitutions),
	domain.DietVegan:      newSubstitutionSet(meatSubstitutions, veganSubstitutions),
	domain.DietKeto:       newSubstitutionSet(lowCarbSubstitutions),
	domain.DietLowCarb:    newSubstitutionSet(lowCarbSubstitutions),
}

// newSubstitutionSet 替代品本身與複合食材列為保護詞，重複調整不會再替換
func newSubstitutionSet(tables ...[]substitution) *substitutionSet {
	set := &substitutionSet{}
	seen := make(map[string]bool)
	protect := func(term string) {
		if !seen[term] {
			seen[term] = true
			set.protected = append(set.protected, wordPattern(term))
		}
	}
	for _, term := range substitutionExclusions {
		protect(term)
	}
	for _, table := range tables {
		for _, s := range table {
			set.rules = append(set.rules, s)
			set.patterns = append(set.patterns, wordPattern(s.term))
			for _, alt := range s.alternatives {
				protect(alt)
			}
		}
	}
	return set
}

func (s *substitutionSet) protects(name string) bool {
	for _, re := range s.protected {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (s *substitutionSet) find(name string) (substitution, bool) {
	for i, re := range s.patterns {
		if re.MatchString(name) {
			return s.rules[i], true
		}
	}
	return substitution{}, false
}

func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}])` + regexp.QuoteMeta(term) + `(?:[^\p{L}]|$)`)
}

func roundFacts(n domain.NutritionFacts) domain.NutritionFacts {
	r := func(v float64) float64 { return math.Round(v*10) / 10 }
	return domain.NutritionFacts{
		CaloriesKcal: r(n.CaloriesKcal),
		ProteinG:     r(n.ProteinG),
		CarbsG:       r(n.CarbsG),
		FatG:         r(n.FatG),
		FiberG:       r(n.FiberG),
		SugarG:       r(n.SugarG),
		SodiumMg:     r(n.SodiumMg),
	}
}
