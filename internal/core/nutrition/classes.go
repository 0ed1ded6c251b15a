package nutrition

import "strings"

type ingredientClass int

const (
	classOther ingredientClass = iota
	classLiquid
	classFlour
	classGrain
	classSugar
	classFat
	classProduce
	classCheese
	classNut
	classProtein
	classSpice
)

// classKeywords 依序比對，先命中者為準
var classKeywords = []struct {
	class ingredientClass
	terms []string
}{
	{classSpice, []string{"sea salt", "kosher salt", "table salt", "black pepper", "white pepper", "powder", "paprika",
		"cumin", "cinnamon", "oregano", "dried basil", "thyme", "spice", "seasoning", "flakes", "nutmeg", "turmeric", "cayenne"}},
	{classCheese, []string{"cheese", "parmesan", "mozzarella", "cheddar", "feta"}},
	{classLiquid, []string{"milk", "water", "stock", "broth", "juice", "wine", "sauce", "vinegar", "cream", "yogurt"}},
	{classFat, []string{"oil", "butter", "lard", "ghee", "margarine"}},
	{classSugar, []string{"sugar", "honey", "syrup"}},
	{classFlour, []string{"flour", "starch", "cornmeal"}},
	{classGrain, []string{"rice", "oats", "quinoa", "couscous", "pasta", "lentil", "beans", "barley", "bulgur"}},
	{classNut, []string{"almond", "walnut", "peanut", "cashew", "pecan", "seed", "nut"}},
	{classProtein, []string{"chicken", "beef", "pork", "lamb", "fish", "salmon", "tuna", "shrimp", "tofu", "turkey", "mince"}},
	{classProduce, []string{"onion", "tomato", "carrot", "spinach", "pepper", "potato", "berries", "apple", "banana",
		"lettuce", "mushroom", "broccoli", "zucchini", "cabbage", "kale", "peas", "corn", "celery"}},
}

func classify(name string) ingredientClass {
	switch strings.TrimSpace(name) {
	case "salt", "pepper", "salt and pepper":
		return classSpice
	}
	for _, group := range classKeywords {
		for _, term := range group.terms {
			if strings.Contains(name, term) {
				return group.class
			}
		}
	}
	return classOther
}

func pieceWeight(name string, class ingredientClass) float64 {
	for _, pw := range pieceWeights {
		if strings.Contains(name, pw.term) {
			return pw.grams
		}
	}
	if class == classSpice {
		return 1
	}
	return 100
}
