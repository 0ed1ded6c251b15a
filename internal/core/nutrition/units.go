package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount 解析後的份量
type Amount struct {
	Quantity float64
	Unit     string
	HasValue bool
}

var unicodeFractions = map[string]string{
	"½": " 1/2", "⅓": " 1/3", "⅔": " 2/3", "¼": " 1/4", "¾": " 3/4",
	"⅕": " 1/5", "⅛": " 1/8", "⅜": " 3/8", "⅝": " 5/8", "⅞": " 7/8",
}

var (
	mixedPattern    = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)`)
	fractionPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)`)
	decimalPattern  = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)`)
	rangePattern    = regexp.MustCompile(`^\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)`)
	unitPattern     = regexp.MustCompile(`^\s*([a-z]+)\.?`)
)

// unitAliases 單位別名 -> 標準單位
var unitAliases = map[string]string{
	"t": "tsp", "tsp": "tsp", "tsps": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tbl": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"c": "cup", "cup": "cup", "cups": "cup",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"g": "g", "gr": "g", "gram": "g", "grams": "g", "gramme": "g", "grammes": "g",
	"kg": "kg", "kgs": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"clove": "clove", "cloves": "clove",
	"slice": "slice", "slices": "slice",
	"can": "can", "cans": "can", "tin": "can", "tins": "can",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"handful": "handful", "handfuls": "handful",
	"bunch": "bunch", "bunches": "bunch",
	"stick": "stick", "sticks": "stick",
	"pint": "pint", "pints": "pint",
	"quart": "quart", "quarts": "quart",
	"sprig": "sprig", "sprigs": "sprig",
	"leaf": "leaf", "leaves": "leaf",
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece", "whole": "piece",
	"large": "piece", "medium": "piece", "small": "piece",
}

// gramsPerUnit 每單位克數；cup 與 piece 依食材類別另外計算
var gramsPerUnit = map[string]float64{
	"tsp":     5,
	"tbsp":    15,
	"oz":      28.35,
	"lb":      453.6,
	"g":       1,
	"kg":      1000,
	"ml":      1,
	"l":       1000,
	"clove":   5,
	"slice":   30,
	"can":     400,
	"pinch":   0.5,
	"dash":    0.5,
	"handful": 30,
	"bunch":   100,
	"stick":   113,
	"pint":    473,
	"quart":   946,
	"sprig":   1,
	"leaf":    0.5,
}

// NormalizeUnit 將單位別名統一；未知單位回傳空字串
func NormalizeUnit(unit string) string {
	u := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".")
	return unitAliases[u]
}

// ParseAmount 解析自由文字份量，例如 "1 1/2 cups"、"½ tsp"、"200g"、"2-3 cloves"
func ParseAmount(text string) Amount {
	s := strings.ToLower(strings.TrimSpace(text))
	for frac, repl := range unicodeFractions {
		s = strings.ReplaceAll(s, frac, repl)
	}
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "a ") || strings.HasPrefix(s, "an ") {
		s = "1 " + strings.SplitN(s, " ", 2)[1]
	}

	var qty float64
	matched := ""
	if m := mixedPattern.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den > 0 {
			qty = whole + num/den
		}
		matched = m[0]
	} else if m := fractionPattern.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den > 0 {
			qty = num / den
		}
		matched = m[0]
	} else if m := decimalPattern.FindStringSubmatch(s); m != nil {
		qty, _ = strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		matched = m[0]
	}

	amount := Amount{}
	rest := s
	if matched != "" {
		amount.HasValue = true
		amount.Quantity = qty
		rest = s[len(matched):]
		// 範圍取中間值
		if m := rangePattern.FindStringSubmatch(rest); m != nil {
			if upper, err := strconv.ParseFloat(m[1], 64); err == nil && upper > qty {
				amount.Quantity = (qty + upper) / 2
			}
			rest = rest[len(m[0]):]
		}
	}

	if m := unitPattern.FindStringSubmatch(rest); m != nil {
		amount.Unit = NormalizeUnit(m[1])
		if !amount.HasValue && (amount.Unit == "pinch" || amount.Unit == "dash" || amount.Unit == "handful" || amount.Unit == "bunch") {
			amount.Quantity = 1
			amount.HasValue = true
		}
	}
	return amount
}
