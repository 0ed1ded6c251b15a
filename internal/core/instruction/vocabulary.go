package instruction

// verbDuration 烹飪動詞 -> 預設時間；依時間長短排序，先命中者為準
type verbDuration struct {
	stem    string
	display string
	minutes int
}

var verbDurations = []verbDuration{
	{"marinat", "30 min", 30},
	{"roast", "30-40 min", 40},
	{"bak", "25-30 min", 30},
	{"simmer", "15-20 min", 20},
	{"grill", "10-12 min", 12},
	{"boil", "10 min", 10},
	{"preheat", "10 min", 10},
	{"fry", "5-8 min", 8},
	{"fried", "5-8 min", 8},
	{"saut", "5 min", 5},
	{"chop", "5 min", 5},
	{"dice", "5 min", 5},
	{"slice", "5 min", 5},
	{"whisk", "2 min", 2},
	{"stir", "2 min", 2},
	{"mix", "2 min", 2},
	{"serv", "1 min", 1},
}

const (
	defaultStepTime    = "5 min"
	defaultStepMinutes = 5
	genericStepText    = "Prepare the ingredients and cook as directed."
)

// equipmentVocabulary 廚具詞彙；比對時長詞優先
var equipmentVocabulary = []string{
	"baking sheet", "baking dish", "baking tray", "baking pan", "cake tin", "loaf tin", "muffin tin",
	"mixing bowl", "frying pan", "dutch oven", "slow cooker", "pressure cooker", "food processor",
	"stand mixer", "hand mixer", "cutting board", "rolling pin", "wire rack", "casserole dish",
	"saucepan", "skillet", "wok", "oven", "pot", "bowl", "whisk", "blender", "grill", "colander",
	"sieve", "knife", "spatula", "microwave", "pan", "tray", "grater", "ladle", "thermometer",
	"mixer", "steamer", "griddle", "tongs", "peeler", "mortar",
}
