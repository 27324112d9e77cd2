package meal

import (
	"regexp"
	"strings"

	"pantry-planner/internal/core/inventory"
)

var sauceWord = regexp.MustCompile(`(?i)\bsauce\b`)

// FormatMealName 依模板組出餐點名稱
func FormatMealName(s Suggestion) string {
	names := filledNames(s)
	if len(names) == 0 {
		return ""
	}

	switch s.TemplateID {
	case TemplateHelperMeal:
		helper := itemName(s, inventory.CategoryHelperMeal)
		protein := helperProteinName(s)
		if helper != "" && protein != "" {
			return helper + " with " + protein
		}

	case TemplateProteinStarchVegetable:
		parts := nonEmpty(
			itemName(s, inventory.CategoryProtein),
			itemName(s, inventory.CategoryStarch),
			itemName(s, inventory.CategoryVegetable),
		)
		switch len(parts) {
		case 1:
			return parts[0]
		case 2:
			return parts[0] + " with " + parts[1]
		case 3:
			return parts[0] + " with " + parts[1] + " and " + parts[2]
		}

	case TemplatePastaMeal:
		pasta := itemName(s, inventory.CategoryPasta)
		if pasta != "" {
			name := pasta
			if sauce := itemName(s, inventory.CategorySauce); sauce != "" {
				stripped := strings.Join(strings.Fields(sauceWord.ReplaceAllString(sauce, " ")), " ")
				if stripped == "" {
					stripped = sauce
				}
				name += " with " + stripped + " Sauce"
			}
			if protein := itemName(s, inventory.CategoryProtein); protein != "" {
				name += " and " + protein
			}
			return name
		}

	case TemplateHotDogMeal:
		if dog, bun := itemName(s, inventory.CategoryHotDogProtein), itemName(s, inventory.CategoryHotDogBuns); dog != "" && bun != "" {
			return dog + " on " + bun
		}

	case TemplateBurgerMeal:
		if patty, bun := itemName(s, inventory.CategoryBurgerPatties), itemName(s, inventory.CategoryHamburgerBuns); patty != "" && bun != "" {
			return patty + " on " + bun
		}

	case TemplateGrilledCheese:
		if cheese := itemName(s, inventory.CategoryCheese); cheese != "" {
			return "Grilled " + cheese + " Sandwich"
		}

	case TemplateConvenienceMeal:
		return names[0]
	}

	return joinNames(names)
}

// 逗號連接最多三個名稱，最後一個前面加 and
func joinNames(names []string) string {
	if len(names) > 3 {
		names = names[:3]
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func filledNames(s Suggestion) []string {
	var out []string
	for _, c := range s.Components {
		if c.Item != nil && c.Item.Label() != "" {
			out = append(out, c.Item.Label())
		}
	}
	return out
}

func itemName(s Suggestion, category string) string {
	for _, c := range s.Components {
		if c.Category == category && !c.HelperRequirement && c.Item != nil {
			return c.Item.Label()
		}
	}
	return ""
}

func helperProteinName(s Suggestion) string {
	for _, c := range s.Components {
		if c.HelperRequirement && c.Item != nil {
			return c.Item.Label()
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
