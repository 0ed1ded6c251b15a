package instruction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipe-recommender/internal/core/domain"
)

// DefaultMaxSteps 預設步驟上限
const DefaultMaxSteps = 10

var (
	stepMarker    = regexp.MustCompile(`(?im)(?:^|[.!?])[ \t]*((?:step[ \t]*(\d{1,2})[ \t]*[.):\-]?|(\d{1,2})[ \t]*[.):\-])\s+)`)
	sentenceSplit = regexp.MustCompile(`[.!?]\s+|\n+`)
	leadingBullet = regexp.MustCompile(`^[\d\-\*\.]+\s*`)
	explicitTime  = regexp.MustCompile(`(?i)(\d+)(?:\s*(?:-|–|to)\s*(\d+))?\s*(minutes?|mins?|hours?|hrs?)\b`)
)

type compiledVerb struct {
	re *regexp.Regexp
	verbDuration
}

type compiledTool struct {
	name string
	re   *regexp.Regexp
}

// Structurer 將自由文字步驟轉為結構化步驟；無狀態，可併發使用
type Structurer struct {
	maxSteps int
	verbs    []compiledVerb
	tools    []compiledTool
}

// NewStructurer 建立步驟解析器；maxSteps <= 0 時使用預設值
func NewStructurer(maxSteps int) *Structurer {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	s := &Structurer{maxSteps: maxSteps}
	for _, v := range verbDurations {
		s.verbs = append(s.verbs, compiledVerb{
			re:           regexp.MustCompile(`(?i)(?:^|[^\p{L}])` + regexp.QuoteMeta(v.stem)),
			verbDuration: v,
		})
	}

	tools := append([]string(nil), equipmentVocabulary...)
	sort.SliceStable(tools, func(i, j int) bool { return len(tools[i]) > len(tools[j]) })
	for _, t := range tools {
		s.tools = append(s.tools, compiledTool{
			name: t,
			re:   regexp.MustCompile(`(?i)(?:^|[^\p{L}])` + regexp.QuoteMeta(t) + `(?:e?s)?(?:[^\p{L}]|$)`),
		})
	}
	return s
}

// Structure 解析步驟文字：已編號步驟優先，否則依句子切分
func (s *Structurer) Structure(text string) []domain.StructuredInstructionStep {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r", "\n"))

	texts := numberedSteps(text)
	if len(texts) < 2 {
		texts = sentenceSteps(text)
	}
	if len(texts) == 0 {
		texts = []string{genericStepText}
	}
	if len(texts) > s.maxSteps {
		texts = texts[:s.maxSteps]
	}

	steps := make([]domain.StructuredInstructionStep, 0, len(texts))
	for i, t := range texts {
		display, minutes := s.estimateTime(t)
		steps = append(steps, domain.StructuredInstructionStep{
			Index:            i + 1,
			Text:             t,
			EstimatedTime:    display,
			EstimatedMinutes: minutes,
			Equipment:        s.equipment(t),
		})
	}
	return steps
}

// TotalMinutes 步驟時間總和
func TotalMinutes(steps []domain.StructuredInstructionStep) int {
	total := 0
	for _, st := range steps {
		total += st.EstimatedMinutes
	}
	return total
}

// numberedSteps 依文字順序取出已編號步驟
//
// 編號與內容都和先前步驟相同時視為重複並略過；編號重複但內容不同的步驟照常保留並重新編號。
func numberedSteps(text string) []string {
	matches := stepMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 2 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for i, m := range matches {
		start := m[3]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][2]
		}
		body := strings.TrimSpace(text[start:end])
		body = strings.Join(strings.Fields(body), " ")
		if body == "" {
			continue
		}
		var number string
		if m[4] >= 0 {
			number = text[m[4]:m[5]]
		} else if m[6] >= 0 {
			number = text[m[6]:m[7]]
		}
		key := number + "|" + strings.ToLower(strings.TrimRight(body, ".!? "))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, capitalize(body))
	}
	return out
}

func sentenceSteps(text string) []string {
	var out []string
	for _, part := range sentenceSplit.Split(text, -1) {
		part = strings.TrimSpace(part)
		if len(part) < 15 {
			continue
		}
		part = strings.TrimSpace(leadingBullet.ReplaceAllString(part, ""))
		if part == "" {
			continue
		}
		out = append(out, capitalize(strings.Join(strings.Fields(part), " ")))
	}
	return out
}

// estimateTime 明確時間優先，其次動詞預設，最後 5 分鐘
func (s *Structurer) estimateTime(text string) (string, int) {
	if m := explicitTime.FindStringSubmatch(text); m != nil {
		low, _ := strconv.Atoi(m[1])
		high := low
		if m[2] != "" {
			high, _ = strconv.Atoi(m[2])
		}
		unit, factor := "min", 1
		if strings.HasPrefix(strings.ToLower(m[3]), "h") {
			unit, factor = "hr", 60
		}
		if high > low {
			return fmt.Sprintf("%d-%d %s", low, high, unit), high * factor
		}
		return fmt.Sprintf("%d %s", low, unit), low * factor
	}

	for _, v := range s.verbs {
		if v.re.MatchString(text) {
			return v.display, v.minutes
		}
	}
	return defaultStepTime, defaultStepMinutes
}

// equipment 長詞先比對，命中部分遮蔽避免重複計入（如 frying pan 與 pan）
func (s *Structurer) equipment(text string) []string {
	work := strings.ToLower(text)
	found := []string{}
	for _, tool := range s.tools {
		loc := tool.re.FindStringIndex(work)
		if loc == nil {
			continue
		}
		found = append(found, tool.name)
		for loc != nil {
			work = work[:loc[0]] + strings.Repeat(" ", loc[1]-loc[0]) + work[loc[1]:]
			loc = tool.re.FindStringIndex(work)
		}
	}
	sort.Strings(found)
	return found
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
