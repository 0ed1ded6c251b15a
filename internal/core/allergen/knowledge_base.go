package allergen

import (
	"sort"
	"strings"
)

// KnowledgeBase 過敏原知識庫：過敏類別 -> 衍生食材詞彙
//
// 建構後不可變，可安全地在多個請求間共用。所有詞彙都是「包含比對」候選，
// 呼叫端必須以 strings.Contains(小寫食材名稱, 詞彙) 判斷。
type KnowledgeBase struct {
	derivatives map[string][]string
	aliases     map[string]string
}

// NewKnowledgeBase 以給定表格建立知識庫（會複製輸入）
func NewKnowledgeBase(table map[string][]string, aliases map[string]string) *KnowledgeBase {
	kb := &KnowledgeBase{
		derivatives: make(map[string][]string, len(table)),
		aliases:     make(map[string]string, len(aliases)),
	}
	for category, terms := range table {
		kb.derivatives[normalize(category)] = dedupeSorted(terms)
	}
	for alias, category := range aliases {
		kb.aliases[normalize(alias)] = normalize(category)
	}
	return kb
}

// Default 內建的過敏原知識庫
func Default() *KnowledgeBase {
	return NewKnowledgeBase(defaultDerivatives, defaultAliases)
}

// Canonical 將過敏類別別名轉為標準名稱
func (kb *KnowledgeBase) Canonical(category string) string {
	key := normalize(category)
	if canonical, ok := kb.aliases[key]; ok {
		return canonical
	}
	return key
}

// Categories 已知的過敏類別（排序）
func (kb *KnowledgeBase) Categories() []string {
	out := make([]string, 0, len(kb.derivatives))
	for category := range kb.derivatives {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// DerivativesOf 回傳過敏類別的衍生詞彙；未知類別回傳空集合
func (kb *KnowledgeBase) DerivativesOf(category string) []string {
	terms := kb.derivatives[kb.Canonical(category)]
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// ForbiddenTerms 展開使用者所有過敏原（衍生詞彙加上原始字串）
//
// 結果依長度由長到短排序，讓比對時優先回報最具體的詞彙。
func (kb *KnowledgeBase) ForbiddenTerms(allergies []string) []string {
	seen := make(map[string]struct{})
	for _, allergy := range allergies {
		literal := normalize(allergy)
		if literal == "" {
			continue
		}
		seen[literal] = struct{}{}
		for _, term := range kb.derivatives[kb.Canonical(literal)] {
			seen[term] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for term := range seen {
		out = append(out, term)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Match 回傳名稱中第一個命中的詞彙（子字串比對，詞彙以單數詞幹收錄即涵蓋複數）
func Match(name string, terms []string) (string, bool) {
	lower := strings.ToLower(name)
	for _, term := range terms {
		if term == "" {
			continue
		}
		hay := lower
		for _, w := range shadowingWords[term] {
			hay = strings.ReplaceAll(hay, w, " ")
		}
		if strings.Contains(hay, term) {
			return term, true
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func dedupeSorted(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = normalize(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
