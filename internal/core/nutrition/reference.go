package nutrition

import "recipe-recommender/internal/core/domain"

// profile 每 100g 營養值
type profile struct {
	kcal, protein, carbs, fat, fiber, sugar, sodium float64
}

// referenceTable 常見食材每 100g 營養值（近似值）
var referenceTable = map[string]profile{
	"chicken breast":   {165, 31, 0, 3.6, 0, 0, 74},
	"chicken thigh":    {209, 26, 0, 10.9, 0, 0, 84},
	"chicken":          {190, 27, 0, 8, 0, 0, 80},
	"turkey":           {135, 29, 0, 1.5, 0, 0, 70},
	"beef":             {250, 26, 0, 15, 0, 0, 72},
	"steak":            {271, 25, 0, 19, 0, 0, 54},
	"pork":             {242, 27, 0, 14, 0, 0, 62},
	"bacon":            {541, 37, 1.4, 42, 0, 0, 1717},
	"ham":              {145, 21, 1.5, 6, 0, 0, 1200},
	"sausage":          {301, 12, 2, 27, 0, 1, 800},
	"lamb":             {294, 25, 0, 21, 0, 0, 72},
	"salmon":           {208, 20, 0, 13, 0, 0, 59},
	"tuna":             {132, 28, 0, 1, 0, 0, 47},
	"cod":              {82, 18, 0, 0.7, 0, 0, 54},
	"shrimp":           {99, 24, 0.2, 0.3, 0, 0, 111},
	"fish":             {120, 21, 0, 3.5, 0, 0, 60},
	"eggplant":         {25, 1, 6, 0.2, 3, 3.5, 2},
	"egg":              {143, 12.6, 0.7, 9.5, 0, 0.4, 142},
	"tofu":             {76, 8, 1.9, 4.8, 0.3, 0.6, 7},
	"tempeh":           {192, 20, 7.6, 11, 0, 0, 9},
	"lentil":           {116, 9, 20, 0.4, 8, 1.8, 2},
	"chickpea":         {164, 8.9, 27, 2.6, 7.6, 4.8, 7},
	"black beans":      {132, 8.9, 24, 0.5, 8.7, 0.3, 1},
	"beans":            {127, 8.7, 22.8, 0.5, 6.4, 0.3, 2},
	"milk":             {61, 3.2, 4.8, 3.3, 0, 5, 43},
	"coconut milk":     {230, 2.3, 6, 24, 2.2, 3.3, 15},
	"oat milk":         {45, 1, 6.6, 1.5, 0.8, 4, 42},
	"cream":            {340, 2.8, 2.7, 36, 0, 2.9, 38},
	"yogurt":           {59, 10, 3.6, 0.4, 0, 3.2, 36},
	"cheese":           {402, 25, 1.3, 33, 0, 0.5, 621},
	"parmesan":         {431, 38, 4.1, 29, 0, 0.9, 1529},
	"butter":           {717, 0.9, 0.1, 81, 0, 0.1, 11},
	"peanut butter":    {588, 25, 20, 50, 6, 9, 459},
	"almond butter":    {614, 21, 19, 56, 10, 4.4, 7},
	"olive oil":        {884, 0, 0, 100, 0, 0, 2},
	"oil":              {884, 0, 0, 100, 0, 0, 0},
	"flour":            {364, 10, 76, 1, 2.7, 0.3, 2},
	"rice":             {130, 2.7, 28, 0.3, 0.4, 0.1, 1},
	"cauliflower rice": {25, 1.9, 5, 0.3, 2, 1.9, 30},
	"pasta":            {131, 5, 25, 1.1, 1.8, 0.6, 6},
	"spaghetti":        {158, 5.8, 31, 0.9, 1.8, 0.6, 1},
	"noodles":          {138, 4.5, 25, 2, 1.2, 0.4, 5},
	"bread":            {265, 9, 49, 3.2, 2.7, 5, 491},
	"tortilla":         {310, 8, 52, 8, 3.5, 2, 600},
	"oats":             {389, 17, 66, 7, 10.6, 1, 2},
	"quinoa":           {120, 4.4, 21, 1.9, 2.8, 0.9, 7},
	"potato":           {77, 2, 17, 0.1, 2.2, 0.8, 6},
	"sweet potato":     {86, 1.6, 20, 0.1, 3, 4.2, 55},
	"sugar":            {387, 0, 100, 0, 0, 100, 1},
	"honey":            {304, 0.3, 82, 0, 0.2, 82, 4},
	"maple syrup":      {260, 0, 67, 0.1, 0, 60, 12},
	"syrup":            {290, 0, 75, 0, 0, 70, 10},
	"chocolate":        {546, 4.9, 61, 31, 7, 48, 24},
	"onion":            {40, 1.1, 9.3, 0.1, 1.7, 4.2, 4},
	"garlic":           {149, 6.4, 33, 0.5, 2.1, 1, 17},
	"tomato":           {18, 0.9, 3.9, 0.2, 1.2, 2.6, 5},
	"carrot":           {41, 0.9, 10, 0.2, 2.8, 4.7, 69},
	"broccoli":         {34, 2.8, 7, 0.4, 2.6, 1.7, 33},
	"cauliflower":      {25, 1.9, 5, 0.3, 2, 1.9, 30},
	"spinach":          {23, 2.9, 3.6, 0.4, 2.2, 0.4, 79},
	"lettuce":          {15, 1.4, 2.9, 0.2, 1.3, 0.8, 28},
	"pepper":           {31, 1, 6, 0.3, 2.1, 4.2, 4},
	"mushroom":         {22, 3.1, 3.3, 0.3, 1, 2, 5},
	"zucchini":         {17, 1.2, 3.1, 0.3, 1, 2.5, 8},
	"cucumber":         {15, 0.7, 3.6, 0.1, 0.5, 1.7, 2},
	"avocado":          {160, 2, 8.5, 14.7, 6.7, 0.7, 7},
	"banana":           {89, 1.1, 23, 0.3, 2.6, 12, 1},
	"apple":            {52, 0.3, 14, 0.2, 2.4, 10, 1},
	"lemon":            {29, 1.1, 9, 0.3, 2.8, 2.5, 2},
	"berries":          {57, 0.7, 14, 0.3, 2.4, 10, 1},
	"almond":           {579, 21, 22, 50, 12.5, 4.4, 1},
	"walnut":           {654, 15, 14, 65, 6.7, 2.6, 2},
	"peanut":           {567, 26, 16, 49, 8.5, 4.7, 18},
	"soy sauce":        {53, 8, 4.9, 0.6, 0.8, 0.4, 5493},
	"stock":            {7, 1, 0.4, 0.2, 0, 0.2, 343},
	"broth":            {7, 1, 0.4, 0.2, 0, 0.2, 343},
	"salt":             {0, 0, 0, 0, 0, 0, 38758},
	"water":            {0, 0, 0, 0, 0, 0, 0},
}

// MealSlot 類別基準值使用的餐別
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
	SlotDessert   MealSlot = "dessert"
)

// slotBaselines 各餐別每份基準營養值（巨量營養素熱量與總熱量一致）
var slotBaselines = map[MealSlot]domain.NutritionFacts{
	SlotBreakfast: {CaloriesKcal: 350, ProteinG: 15, CarbsG: 45, FatG: 12, FiberG: 5, SugarG: 10, SodiumMg: 400},
	SlotLunch:     {CaloriesKcal: 500, ProteinG: 28, CarbsG: 55, FatG: 18, FiberG: 7, SugarG: 8, SodiumMg: 700},
	SlotDinner:    {CaloriesKcal: 600, ProteinG: 35, CarbsG: 60, FatG: 23, FiberG: 8, SugarG: 8, SodiumMg: 800},
	SlotSnack:     {CaloriesKcal: 200, ProteinG: 6, CarbsG: 25, FatG: 8, FiberG: 3, SugarG: 10, SodiumMg: 200},
	SlotDessert:   {CaloriesKcal: 350, ProteinG: 5, CarbsG: 50, FatG: 15, FiberG: 2, SugarG: 32, SodiumMg: 150},
}

// cuisineMultipliers 菜系熱量係數
var cuisineMultipliers = map[string]float64{
	"american":      1.15,
	"british":       1.1,
	"canadian":      1.1,
	"french":        1.15,
	"italian":       1.1,
	"mexican":       1.1,
	"irish":         1.1,
	"indian":        1.05,
	"chinese":       1.0,
	"korean":        0.95,
	"thai":          0.95,
	"greek":         0.95,
	"mediterranean": 0.95,
	"japanese":      0.9,
	"vietnamese":    0.9,
}

// categorySlots 食譜類別 -> 餐別
var categorySlots = map[string]MealSlot{
	"breakfast": SlotBreakfast,
	"dessert":   SlotDessert,
	"snack":     SlotSnack,
	"side":      SlotSnack,
	"starter":   SlotSnack,
	"appetizer": SlotSnack,
	"salad":     SlotLunch,
	"sandwich":  SlotLunch,
	"soup":      SlotLunch,
	"lunch":     SlotLunch,
}

// cupGrams 每杯克數，依食材類別
var cupGrams = map[ingredientClass]float64{
	classLiquid:  240,
	classFlour:   150,
	classGrain:   185,
	classSugar:   200,
	classFat:     220,
	classProduce: 150,
	classCheese:  150,
	classNut:     150,
	classProtein: 200,
	classSpice:   150,
	classOther:   200,
}

// pieceWeights 一個/一顆的重量估計
var pieceWeights = []struct {
	term  string
	grams float64
}{
	{"chicken breast", 170},
	{"chicken thigh", 110},
	{"sweet potato", 150},
	{"bell pepper", 120},
	{"eggplant", 300},
	{"egg", 50},
	{"clove", 5},
	{"garlic", 5},
	{"shallot", 40},
	{"onion", 150},
	{"tomato", 120},
	{"potato", 170},
	{"carrot", 60},
	{"lemon", 60},
	{"lime", 45},
	{"apple", 180},
	{"banana", 120},
	{"chili", 15},
	{"pepper", 120},
	{"fillet", 150},
	{"zucchini", 200},
	{"cucumber", 300},
	{"avocado", 150},
	{"tortilla", 45},
}
