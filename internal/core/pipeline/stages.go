package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/ranking"
	"recipe-recommender/internal/infrastructure/monitoring"
	"recipe-recommender/internal/pkg/common"
)

// backfillWarning 補位食譜一律附加的提示
const backfillWarning = "Included because too few fully safe recipes were found; review the safety notes before cooking"

func (o *Orchestrator) loadProfile(ctx context.Context, st State) (Step, error) {
	if strings.TrimSpace(st.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidProfile)
	}

	p, err := o.deps.Profiles.LoadProfile(ctx, st.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile := *p
	profile.DietStyle = domain.NormalizeDietStyle(string(profile.DietStyle))
	profile.CookingSkill = domain.NormalizeCookingSkill(string(profile.CookingSkill))
	profile.HealthGoal = domain.NormalizeHealthGoal(string(profile.HealthGoal))
	if profile.Allergies == nil {
		profile.Allergies = []string{}
	}
	if profile.MedicalConditions == nil {
		profile.MedicalConditions = []string{}
	}
	if profile.DailyCalorieGoal <= 0 {
		profile.DailyCalorieGoal = o.cfg.DefaultDailyCalories
		st = st.addMessage(fmt.Sprintf("No daily calorie goal on your profile; using %d kcal", profile.DailyCalorieGoal))
	}
	if err := o.validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}

	st.Profile = profile
	return Continue{State: st}, nil
}

func (o *Orchestrator) buildFilters(_ context.Context, st State) (Step, error) {
	st.Filters = BuildFilters(st.Profile, o.deps.Clock(), o.cfg)

	parts := []string{fmt.Sprintf("%s diet", st.Filters.DietStyle)}
	if n := len(st.Filters.Allergies); n > 0 {
		parts = append(parts, fmt.Sprintf("%d allergy exclusions", n))
	}
	parts = append(parts, fmt.Sprintf("meal: %s", st.Filters.MealPeriod))
	return Continue{State: st.addMessage("Filters: " + strings.Join(parts, ", "))}, nil
}

func (o *Orchestrator) fetchCandidates(ctx context.Context, st State) (Step, error) {
	forbidden := o.deps.KnowledgeBase.ForbiddenTerms(st.Profile.Allergies)
	query := candidateQuery(st.Filters, forbidden, o.cfg.CandidateLimit)

	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	defer cancel()
	recipes, err := o.deps.Recipes.FetchCandidates(fetchCtx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		common.LogWarn("Recipe store unavailable",
			zap.String("request_id", st.RequestID),
			zap.Error(err),
		)
		return ShortCircuit{Result: st.emptyResult(o.deps.Clock(),
			"Recipe store unavailable, please try again later")}, nil
	}

	st.Candidates = recipes
	if len(recipes) == 0 {
		return ShortCircuit{Result: st.emptyResult(o.deps.Clock(),
			"No candidate recipes matched your filters")}, nil
	}
	return Continue{State: st.addMessage(fmt.Sprintf("Found %d candidate recipes", len(recipes)))}, nil
}

func (o *Orchestrator) repairNutrition(_ context.Context, st State) (Step, error) {
	estimates := make(map[string]domain.NutritionEstimate, len(st.Candidates))
	for _, r := range st.Candidates {
		est := o.deps.Estimator.Resolve(r)
		estimates[r.ID] = est
		monitoring.RecordNutritionSource(string(est.Source), string(est.Method))
	}
	st.Nutrition = estimates
	return Continue{State: st}, nil
}

// validateSafety 危險與無法判定的食譜一律排除；可行數量不足時以 risky 補位
func (o *Orchestrator) validateSafety(_ context.Context, st State) (Step, error) {
	var viable, risky []assessedRecipe
	for _, r := range st.Candidates {
		est := st.Nutrition[r.ID]
		a := o.deps.Validator.ValidateWithNutrition(r, est.Facts, st.Profile)
		monitoring.RecordSafetyLevel(string(a.Level))

		entry := assessedRecipe{Recipe: r, Nutrition: est, Assessment: a}
		switch {
		case a.Inconclusive || a.Level == domain.LevelDangerous:
			continue
		case a.Level.Viable():
			viable = append(viable, entry)
		case a.Level == domain.LevelRisky:
			risky = append(risky, entry)
		}
	}
	st.TotalSafetyValidated = len(viable)

	selected := viable
	if len(viable) < min(o.cfg.MinViable, st.Limit) {
		for _, r := range risky {
			if len(selected) >= st.Limit {
				break
			}
			r.Assessment.Backfilled = true
			r.Assessment.Warnings = append(r.Assessment.Warnings, backfillWarning)
			selected = append(selected, r)
			st.BackfilledCount++
		}
		if st.BackfilledCount > 0 {
			st = st.addMessage(fmt.Sprintf(
				"Only %d fully safe recipes found; added %d with safety warnings", len(viable), st.BackfilledCount))
		}
	}

	if len(selected) == 0 {
		return ShortCircuit{Result: st.emptyResult(o.deps.Clock(),
			"No recipes passed the safety checks for your profile")}, nil
	}
	st.Selected = selected
	return Continue{State: st}, nil
}

func (o *Orchestrator) adapt(_ context.Context, st State) (Step, error) {
	candidates := make([]ranking.Candidate, 0, len(st.Selected))
	adapted := 0
	for _, s := range st.Selected {
		out := o.deps.Adapter.Adapt(s.Recipe, s.Nutrition.Facts, st.Profile, st.Filters)
		if out.PortionAdapted || out.IngredientsAdapted || out.InstructionsAdapted {
			adapted++
		}
		candidates = append(candidates, ranking.Candidate{
			Adapted:    out,
			Assessment: s.Assessment,
			Source:     s.Nutrition.Source,
		})
	}
	st.Adapted = candidates
	st.TotalAdapted = adapted
	return Continue{State: st}, nil
}

func (o *Orchestrator) rank(_ context.Context, st State) (Step, error) {
	st.Ranked = o.deps.Ranker.Rank(st.Adapted, st.Profile, st.Filters, st.Limit)
	return Continue{State: st}, nil
}

func (o *Orchestrator) structureInstructions(_ context.Context, st State) (Step, error) {
	finalists := make([]finalist, 0, len(st.Ranked))
	for _, r := range st.Ranked {
		finalists = append(finalists, finalist{
			Ranked: r,
			Method: st.Nutrition[r.Adapted.Recipe.ID].Method,
			Steps:  o.deps.Structurer.Structure(r.Adapted.Recipe.Instructions),
		})
	}
	st.Finalists = finalists
	return Continue{State: st}, nil
}

func (o *Orchestrator) finalize(ctx context.Context, st State) (Step, error) {
	// 所有推薦共用一個理由產生預算，用完後其餘直接使用固定格式
	budget, cancel := context.WithTimeout(ctx, o.cfg.RationaleTimeout)
	defer cancel()

	recs := make([]Recommendation, 0, len(st.Finalists))
	for _, f := range st.Finalists {
		recs = append(recs, o.recommendation(budget, f, st.Filters))
	}
	if len(recs) < st.Limit {
		st = st.addMessage(fmt.Sprintf(
			"Only %d of %d requested recipes met your safety requirements", len(recs), st.Limit))
	}

	st.Result = &Result{
		UserID:               st.UserID,
		Recommendations:      recs,
		FiltersApplied:       st.Filters,
		Messages:             st.Messages,
		GeneratedAt:          o.deps.Clock(),
		TotalCandidates:      len(st.Candidates),
		TotalSafetyValidated: st.TotalSafetyValidated,
		TotalAdapted:         st.TotalAdapted,
		BackfilledCount:      st.BackfilledCount,
	}
	return Continue{State: st}, nil
}

// recordEvents 寫入失敗只記錄，不影響結果
func (o *Orchestrator) recordEvents(ctx context.Context, st State) (Step, error) {
	if st.Result == nil || len(st.Result.Recommendations) == 0 {
		return Continue{State: st}, nil
	}

	now := o.deps.Clock().UTC()
	events := make([]domain.InteractionEvent, 0, len(st.Result.Recommendations))
	for _, rec := range st.Result.Recommendations {
		events = append(events, domain.InteractionEvent{
			UserID:    st.UserID,
			RecipeID:  rec.ID,
			Event:     domain.EventView,
			CreatedAt: now,
		})
	}

	eventCtx, cancel := context.WithTimeout(ctx, o.cfg.EventTimeout)
	defer cancel()
	if err := o.deps.Events.RecordEvents(eventCtx, events); err != nil {
		monitoring.RecordEventWriteFailure()
		common.LogWarn("Failed to record recommendation events",
			zap.String("request_id", st.RequestID),
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
	return Continue{State: st}, nil
}
