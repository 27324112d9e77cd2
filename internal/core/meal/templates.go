package meal

import "pantry-planner/internal/core/inventory"

// 餐點模板 ID
const (
	TemplateProteinStarchVegetable = "protein-starch-vegetable"
	TemplateHelperMeal             = "helper-meal"
	TemplatePastaMeal              = "pasta-meal"
	TemplateRiceBowl               = "rice-bowl"
	TemplateSoupSandwich           = "soup-sandwich"
	TemplateHotDogMeal             = "hot-dog-meal"
	TemplateBurgerMeal             = "burger-meal"
	TemplateChickenConvenience     = "chicken-convenience-meal"
	TemplateConvenienceMeal        = "convenience-meal"
	TemplateProteinGravyStarch     = "protein-gravy-starch"
	TemplateGrilledCheese          = "grilled-cheese"
)

// DefaultEstimatedMinutes 未列在時間表中的模板
const DefaultEstimatedMinutes = 30

// Template 餐點模板
type Template struct {
	ID                 string   `json:"id"`
	RequiredCategories []string `json:"requiredCategories"`
	OptionalCategories []string `json:"optionalCategories"`
	Icon               string   `json:"icon"`
	Description        string   `json:"description"`
}

var templates = []Template{
	{
		ID:                 TemplateProteinStarchVegetable,
		RequiredCategories: []string{inventory.CategoryProtein, inventory.CategoryStarch, inventory.CategoryVegetable},
		OptionalCategories: []string{inventory.CategorySauce, inventory.CategorySeasoning},
		Icon:               "🍽️",
		Description:        "Classic plate with a protein, a starch and a vegetable",
	},
	{
		ID:                 TemplateHelperMeal,
		RequiredCategories: []string{inventory.CategoryHelperMeal},
		OptionalCategories: []string{inventory.CategoryVegetable},
		Icon:               "📦",
		Description:        "Boxed meal kit completed with its protein",
	},
	{
		ID:                 TemplatePastaMeal,
		RequiredCategories: []string{inventory.CategoryPasta, inventory.CategorySauce},
		OptionalCategories: []string{inventory.CategoryProtein, inventory.CategoryCheese, inventory.CategoryVegetable},
		Icon:               "🍝",
		Description:        "Pasta tossed with sauce",
	},
	{
		ID:                 TemplateRiceBowl,
		RequiredCategories: []string{inventory.CategoryRice, inventory.CategoryProtein},
		OptionalCategories: []string{inventory.CategoryVegetable, inventory.CategorySauce},
		Icon:               "🍚",
		Description:        "Rice bowl topped with protein",
	},
	{
		ID:                 TemplateSoupSandwich,
		RequiredCategories: []string{inventory.CategorySoup, inventory.CategoryBread},
		OptionalCategories: []string{inventory.CategoryCheese},
		Icon:               "🥣",
		Description:        "Soup served with bread or a sandwich",
	},
	{
		ID:                 TemplateHotDogMeal,
		RequiredCategories: []string{inventory.CategoryHotDogProtein, inventory.CategoryHotDogBuns},
		OptionalCategories: []string{inventory.CategoryCondiment},
		Icon:               "🌭",
		Description:        "Hot dogs in buns",
	},
	{
		ID:                 TemplateBurgerMeal,
		RequiredCategories: []string{inventory.CategoryBurgerPatties, inventory.CategoryHamburgerBuns},
		OptionalCategories: []string{inventory.CategoryCheese, inventory.CategoryCondiment, inventory.CategoryVegetable},
		Icon:               "🍔",
		Description:        "Burgers on buns",
	},
	{
		ID:                 TemplateChickenConvenience,
		RequiredCategories: []string{inventory.CategoryChickenConvenience},
		OptionalCategories: []string{inventory.CategoryStarch, inventory.CategoryVegetable},
		Icon:               "🍗",
		Description:        "Nuggets or patties with a side",
	},
	{
		ID:                 TemplateConvenienceMeal,
		RequiredCategories: []string{inventory.CategoryStandaloneConvenience},
		Icon:               "⏱️",
		Description:        "Ready-to-eat meal",
	},
	{
		ID:                 TemplateProteinGravyStarch,
		RequiredCategories: []string{inventory.CategoryProtein, inventory.CategoryGravy, inventory.CategoryStarch},
		OptionalCategories: []string{inventory.CategoryVegetable},
		Icon:               "🥘",
		Description:        "Protein smothered in gravy over a starch",
	},
	{
		ID:                 TemplateGrilledCheese,
		RequiredCategories: []string{inventory.CategoryBread, inventory.CategoryCheese},
		OptionalCategories: []string{inventory.CategorySoup},
		Icon:               "🧀",
		Description:        "Grilled cheese sandwich",
	},
}

var estimatedMinutes = map[string]int{
	TemplateProteinStarchVegetable: 45,
	TemplateHelperMeal:             20,
	TemplatePastaMeal:              25,
	TemplateRiceBowl:               30,
	TemplateSoupSandwich:           15,
	TemplateHotDogMeal:             15,
	TemplateBurgerMeal:             20,
	TemplateChickenConvenience:     20,
	TemplateConvenienceMeal:        10,
	TemplateProteinGravyStarch:     40,
	TemplateGrilledCheese:          15,
}

// Templates 回傳模板目錄的副本
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID 依 ID 查詢模板
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// EstimateTime 模板的預估時間（分鐘）
func EstimateTime(templateID string) int {
	if m, ok := estimatedMinutes[templateID]; ok {
		return m
	}
	return DefaultEstimatedMinutes
}
