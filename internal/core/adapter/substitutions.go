package adapter

// substitution 原食材關鍵字 -> 依序嘗試的替代品
type substitution struct {
	term         string
	alternatives []string
}

// meatSubstitutions 素食/純素共用，長詞在前
var meatSubstitutions = []substitution{
	{"chicken breast", []string{"extra-firm tofu", "chickpeas"}},
	{"chicken thigh", []string{"extra-firm tofu", "chickpeas"}},
	{"chicken stock", []string{"vegetable stock"}},
	{"chicken broth", []string{"vegetable broth"}},
	{"beef stock", []string{"mushroom stock", "vegetable stock"}},
	{"beef broth", []string{"mushroom broth", "vegetable broth"}},
	{"ground beef", []string{"brown lentils", "crumbled tempeh"}},
	{"minced beef", []string{"brown lentils", "crumbled tempeh"}},
	{"ground pork", []string{"crumbled tempeh", "brown lentils"}},
	{"fish sauce", []string{"soy sauce", "coconut aminos"}},
	{"anchovies", []string{"capers", "chopped olives"}},
	{"anchovy", []string{"capers", "chopped olives"}},
	{"prawns", []string{"king oyster mushrooms", "hearts of palm"}},
	{"shrimp", []string{"king oyster mushrooms", "hearts of palm"}},
	{"salmon", []string{"marinated tofu", "roasted carrots"}},
	{"bacon", []string{"smoked tempeh", "smoked mushrooms"}},
	{"chicken", []string{"extra-firm tofu", "chickpeas"}},
	{"turkey", []string{"seitan", "extra-firm tofu"}},
	{"sausage", []string{"plant-based sausage", "smoked tempeh"}},
	{"steak", []string{"portobello mushrooms", "seitan"}},
	{"beef", []string{"seitan", "portobello mushrooms"}},
	{"pork", []string{"jackfruit", "seitan"}},
	{"lamb", []string{"eggplant", "portobello mushrooms"}},
	{"mutton", []string{"eggplant", "portobello mushrooms"}},
	{"goat", []string{"eggplant", "portobello mushrooms"}},
	{"ham", []string{"smoked tofu", "smoked tempeh"}},
	{"tuna", []string{"mashed chickpeas", "marinated tofu"}},
	{"cod", []string{"marinated tofu", "hearts of palm"}},
	{"fish", []string{"marinated tofu", "hearts of palm"}},
	{"crab", []string{"hearts of palm", "jackfruit"}},
	{"mince", []string{"brown lentils", "crumbled tempeh"}},
}

// veganSubstitutions 純素額外替換的動物性食材
var veganSubstitutions = []substitution{
	{"heavy cream", []string{"coconut cream", "cashew cream"}},
	{"double cream", []string{"coconut cream", "cashew cream"}},
	{"sour cream", []string{"coconut yogurt", "cashew cream"}},
	{"cream cheese", []string{"cashew cream cheese", "silken tofu"}},
	{"parmesan", []string{"nutritional yeast", "toasted breadcrumbs"}},
	{"mozzarella", []string{"plant-based mozzarella", "silken tofu"}},
	{"cheddar", []string{"plant-based cheddar", "nutritional yeast"}},
	{"cheese", []string{"nutritional yeast", "plant-based cheese"}},
	{"butter", []string{"olive oil", "vegan butter"}},
	{"yogurt", []string{"coconut yogurt", "oat yogurt"}},
	{"cream", []string{"coconut cream", "oat cream"}},
	{"milk", []string{"oat milk", "soy milk", "coconut milk"}},
	{"egg noodles", []string{"rice noodles", "soba noodles"}},
	{"egg yolks", []string{"silken tofu", "cornstarch slurry"}},
	{"egg whites", []string{"aquafaba", "cornstarch slurry"}},
	{"eggs", []string{"flax eggs", "chia eggs"}},
	{"egg", []string{"flax egg", "chia egg"}},
	{"honey", []string{"maple syrup", "agave syrup"}},
	{"gelatin", []string{"agar agar", "pectin"}},
	{"ghee", []string{"coconut oil", "olive oil"}},
}

// lowCarbSubstitutions keto / low_carb 的澱粉替換
var lowCarbSubstitutions = []substitution{
	{"basmati rice", []string{"cauliflower rice", "riced broccoli"}},
	{"jasmine rice", []string{"cauliflower rice", "riced broccoli"}},
	{"rice", []string{"cauliflower rice", "riced broccoli"}},
	{"spaghetti", []string{"zucchini noodles", "shirataki noodles"}},
	{"noodles", []string{"zucchini noodles", "shirataki noodles"}},
	{"pasta", []string{"zucchini noodles", "shirataki noodles"}},
	{"potatoes", []string{"cauliflower florets", "turnips"}},
	{"potato", []string{"cauliflower", "turnip"}},
	{"tortillas", []string{"lettuce wraps", "low-carb tortillas"}},
	{"tortilla", []string{"lettuce wrap", "low-carb tortilla"}},
	{"breadcrumbs", []string{"almond flour", "crushed pork rinds"}},
	{"bread", []string{"lettuce wraps", "low-carb bread"}},
	{"flour", []string{"almond flour", "coconut flour"}},
	{"sugar", []string{"erythritol", "stevia"}},
}

// substitutionExclusions 看似命中但實際上不需替換的食材
var substitutionExclusions = []string{
	"peanut butter", "almond butter", "cashew butter", "apple butter", "cocoa butter", "butter beans",
	"coconut milk", "almond milk", "oat milk", "soy milk", "rice milk", "cashew milk", "cream of tartar",
	"rice vinegar", "rice paper", "sweet potato", "sweet potatoes", "vegan", "plant-based",
	"low-carb", "coconut sugar", "sugar snap", "sugar-free", "tofu", "tempeh", "seitan", "cod liver oil",
}
