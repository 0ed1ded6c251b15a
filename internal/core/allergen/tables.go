package allergen

var defaultAliases = map[string]string{
	"milk":           "dairy",
	"milk/dairy":     "dairy",
	"lactose":        "dairy",
	"dairy products": "dairy",
	"wheat":          "gluten",
	"wheat/gluten":   "gluten",
	"celiac":         "gluten",
	"tree nuts":      "nuts",
	"tree nut":       "nuts",
	"nut":            "nuts",
	"peanut":         "peanuts",
	"egg":            "eggs",
	"seafood":        "shellfish",
	"crustacean":     "shellfish",
	"crustaceans":    "shellfish",
	"mollusc":        "shellfish",
	"soya":           "soy",
	"soybean":        "soy",
	"soybeans":       "soy",
	"sesame seeds":   "sesame",
	"finned fish":    "fish",
}

// shadowingWords 含有詞彙字串卻與其無關的常見字，比對前先移除
var shadowingWords = map[string][]string{
	"oat":    {"goat", "coat", "boat", "float", "bloat"},
	"noodle": {"zucchini noodle", "shirataki noodle"},
}

// "til"、"eel"、"swiss" 這類過短詞彙會誤中 lentil、peeled、swiss chard，改用較具體的寫法
var defaultDerivatives = map[string][]string{
	"dairy": {
		"milk", "cheese", "butter", "cream", "yogurt", "yoghurt", "whey", "casein",
		"lactose", "ghee", "paneer", "ricotta", "mozzarella", "parmesan", "cheddar",
		"brie", "camembert", "feta", "gouda", "swiss cheese", "provolone", "cottage cheese",
		"cream cheese", "sour cream", "half and half", "buttermilk", "condensed milk",
		"evaporated milk", "powdered milk", "milk powder", "ice cream", "gelato",
		"custard", "pudding", "kefir", "lassi", "dairy", "milky", "cheesy", "creamy",
		"lactalbumin", "lactoglobulin", "curds", "whipped cream", "heavy cream",
		"light cream", "half-and-half", "nonfat milk", "skim milk", "whole milk",
		"malted milk", "milk fat", "milk solids", "rennet casein", "sodium caseinate",
		"calcium caseinate", "hydrolyzed casein", "acidophilus milk", "dulce de leche",
	},
	"gluten": {
		"wheat", "flour", "bread", "pasta", "noodle", "barley", "rye", "oat",
		"semolina", "couscous", "bulgur", "farro", "spelt", "kamut", "triticale",
		"durum", "seitan", "crouton", "breadcrumbs", "panko", "tortilla", "pita",
		"naan", "bagel", "muffin", "cake", "cookie", "biscuit", "cracker", "pretzel",
		"cereal", "pancake", "waffle", "soy sauce", "teriyaki", "malt", "einkorn",
		"emmer", "graham", "vital wheat gluten", "wheat germ", "wheat bran",
		"wheat starch", "modified wheat starch", "hydrolyzed wheat protein",
		"wheat berries", "udon", "ramen", "orzo", "matzo", "matzah", "spaghetti",
		"macaroni", "lasagne", "lasagna", "fettuccine", "penne",
	},
	"nuts": {
		"almond", "walnut", "cashew", "pistachio", "pecan", "hazelnut", "macadamia",
		"brazil nut", "pine nut", "chestnut", "nut butter", "almond butter",
		"cashew butter", "peanut", "peanut butter", "nutella", "praline", "marzipan",
		"nougat", "nut oil", "nut milk", "almond milk", "cashew milk", "nut flour",
		"almond flour", "almond meal", "hazelnut spread", "walnut oil", "almond oil",
		"pistachio butter", "pecan oil", "mixed nuts", "tree nuts", "nut paste",
		"nut extract", "almond extract", "natural nut flavor", "gianduja", "filberts",
	},
	"eggs": {
		"egg", "eggs", "egg white", "egg yolk", "mayonnaise", "mayo", "meringue",
		"aioli", "hollandaise", "béarnaise", "bearnaise", "custard", "quiche", "frittata",
		"omelette", "scrambled", "fried egg", "poached egg", "egg wash", "albumin",
		"globulin", "livetin", "lysozyme", "ovalbumin", "ovomucin", "ovomucoid",
		"ovovitellin", "powdered egg", "dried egg", "egg solids", "egg substitute",
		"eggnog", "surimi", "lecithin",
	},
	"shellfish": {
		"shrimp", "prawn", "crab", "lobster", "crayfish", "crawfish", "scallop",
		"clam", "mussel", "oyster", "squid", "calamari", "octopus", "shellfish",
		"abalone", "cockle", "conch", "limpet", "periwinkle", "sea urchin", "snail",
		"escargot", "langoustine", "krill", "barnacle", "geoduck", "whelk",
	},
	"fish": {
		"fish", "salmon", "tuna", "cod", "tilapia", "halibut", "trout", "sardine",
		"anchovy", "anchovies", "mackerel", "herring", "snapper", "bass", "catfish", "flounder",
		"sole", "haddock", "pollock", "fish sauce", "worcestershire", "mahi mahi",
		"swordfish", "grouper", "perch", "pike", "carp", "smoked eel", "eel fillet", "unagi",
		"monkfish", "orange roughy", "rockfish", "sturgeon", "caviar", "roe", "fish oil",
		"bonito", "surimi", "dashi", "fish stock", "fish paste",
	},
	"soy": {
		"soy", "soya", "tofu", "tempeh", "edamame", "miso", "soy sauce", "soy milk",
		"soy protein", "soybean", "tamari", "teriyaki", "soy lecithin", "lecithin",
		"textured vegetable protein", "tvp", "textured soy protein", "soy flour",
		"soy fiber", "soy albumin", "soy concentrate", "soy isolate", "soy nuts",
		"soy sprouts", "shoyu", "natto", "okara", "yuba", "hydrolyzed soy protein",
		"hydrolyzed plant protein", "hydrolyzed vegetable protein", "hvp",
		"natural flavoring", "vegetable broth", "vegetable gum", "vegetable starch",
		"miso paste", "bean curd", "kinako", "soy cheese", "soy yogurt", "soy ice cream",
	},
	"peanuts": {
		"peanut", "peanuts", "peanut butter", "peanut oil", "peanut flour",
		"arachis oil", "groundnut", "groundnuts", "monkey nuts", "earth nuts",
		"goober peas", "mandelonas", "peanut protein", "hydrolyzed peanut protein",
	},
	"sesame": {
		"sesame", "sesame seed", "sesame oil", "tahini", "halvah", "halva",
		"hummus", "sesame paste", "sesame flour", "benne seeds", "gingelly oil",
		"simsim",
	},
}
