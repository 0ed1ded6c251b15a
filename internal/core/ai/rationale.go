package ai

import (
	"context"
	"fmt"
	"strings"

	"recipe-recommender/internal/core/domain"
)

// Template 固定格式的推薦理由，AI 不可用時的備援
func Template(in domain.RationaleInput) string {
	diet := string(in.DietStyle)
	if diet == "" {
		diet = string(domain.DietBalanced)
	}
	diet = strings.ReplaceAll(diet, "_", "-")

	var b strings.Builder
	if len(in.ReasonParts) > 0 {
		fmt.Fprintf(&b, "This dish is %s and matches your %s diet", strings.Join(in.ReasonParts, ", "), diet)
	} else {
		fmt.Fprintf(&b, "Matches your %s diet and nutritional needs", diet)
	}
	if in.PortionScaled {
		b.WriteString("; portions were adjusted to fit your calorie target")
	}
	b.WriteString(".")
	if in.SafetyLevel == domain.LevelRisky {
		b.WriteString(" Review the safety notes before cooking.")
	}
	return b.String()
}

// TemplateWriter 只使用固定格式的理由產生器
type TemplateWriter struct{}

// WriteRationale 實作 domain.RationaleWriter
func (TemplateWriter) WriteRationale(_ context.Context, in domain.RationaleInput) (string, error) {
	return Template(in), nil
}
