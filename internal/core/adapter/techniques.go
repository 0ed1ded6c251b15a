package adapter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// technique 進階烹飪用語 -> 初學者說法；變化形在前
type technique struct {
	pattern     string
	replacement string
}

var beginnerTechniques = []technique{
	{`saut[ée]ed`, "pan-cooked"},
	{`saut[ée]ing`, "cooking in a pan with a little oil"},
	{`saut[ée]`, "cook in a pan with a little oil"},
	{`julienned`, "cut into thin strips"},
	{`julienne`, "cut into thin strips"},
	{`deglaze`, "add a splash of liquid and scrape the bottom of the pan"},
	{`blanched`, "briefly boiled then cooled in cold water"},
	{`blanch`, "briefly boil then cool in cold water"},
	{`braised`, "slowly cooked in a covered pot with a little liquid"},
	{`braise`, "cook slowly in a covered pot with a little liquid"},
	{`fold in`, "gently stir in"},
	{`seared`, "browned over high heat"},
	{`sear`, "brown over high heat"},
	{`minced`, "very finely chopped"},
	{`mince`, "chop very finely"},
	{`caramelized`, "cooked slowly until golden brown"},
	{`caramelize`, "cook slowly until golden brown"},
	{`poached`, "gently cooked in simmering liquid"},
	{`poach`, "cook gently in simmering liquid"},
	{`dredge`, "coat lightly"},
	{`chiffonade`, "slice into thin ribbons"},
	{`flamb[ée]`, "finish cooking over the heat"},
	{`emulsify`, "whisk until smooth and combined"},
}

type compiledTechnique struct {
	re          *regexp.Regexp
	replacement string
}

var compiledTechniques = compileTechniques(beginnerTechniques)

func compileTechniques(list []technique) []compiledTechnique {
	out := make([]compiledTechnique, 0, len(list))
	for _, t := range list {
		out = append(out, compiledTechnique{
			re:          regexp.MustCompile(`(?i)(?:^|[^\p{L}])(` + t.pattern + `)(?:[^\p{L}]|$)`),
			replacement: t.replacement,
		})
	}
	return out
}

// simplifyInstructions 將進階用語換成初學者說法，回傳是否有變更
func simplifyInstructions(text string) (string, []string, bool) {
	var notes []string
	changed := false
	for _, t := range compiledTechniques {
		next, found, ok := replaceWord(text, t.re, t.replacement)
		if !ok {
			continue
		}
		text = next
		changed = true
		notes = append(notes, "simplified \""+strings.ToLower(found)+"\" for a beginner cook")
	}
	return text, notes, changed
}

// replaceWord 以字母邊界取代；RE2 無 lookbehind，逐段掃描
func replaceWord(text string, re *regexp.Regexp, replacement string) (string, string, bool) {
	var b strings.Builder
	first := ""
	pos := 0
	for pos < len(text) {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[2], pos+loc[3]
		if first == "" {
			first = text[start:end]
		}
		b.WriteString(text[pos:start])
		b.WriteString(matchCase(text[start:end], replacement))
		pos = end
	}
	if first == "" {
		return text, "", false
	}
	b.WriteString(text[pos:])
	return b.String(), first, true
}

func matchCase(original, replacement string) string {
	r, _ := utf8.DecodeRuneInString(original)
	if !unicode.IsUpper(r) {
		return replacement
	}
	return capitalize(replacement)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
