package recipe

import (
	"strings"

	"pantry-planner/internal/pkg/common"
)

// 飲食篩選條件
const (
	DietVegan      = "vegan"
	DietVegetarian = "vegetarian"
	DietGlutenFree = "gluten-free"
	DietKeto       = "keto"
)

var dietMarkers = map[string][]string{
	DietVegan:      {"vegan"},
	DietVegetarian: {"vegetarian", "vegan"},
	DietGlutenFree: {"gluten-free", "gluten free"},
	DietKeto:       {"keto", "low carb", "low-carb"},
}

// DietaryFilter 食譜層級的飲食篩選
// Include 任一符合即保留；Exclude 任一符合即剔除；Avoid 出現在文字或食材中即剔除
type DietaryFilter struct {
	Include []string `json:"include,omitempty" validate:"dive,oneof=vegan vegetarian gluten-free keto"`
	Exclude []string `json:"exclude,omitempty" validate:"dive,oneof=vegan vegetarian gluten-free keto"`
	Avoid   []string `json:"avoid,omitempty"`
}

// Empty 沒有任何條件
func (f DietaryFilter) Empty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0 && len(f.Avoid) == 0
}

// Allows 食譜是否通過篩選
func (f DietaryFilter) Allows(r common.Recipe) bool {
	if f.Empty() {
		return true
	}
	text := strings.ToLower(r.Title + " " + strings.Join(r.Tags, " ") + " " + r.Description)

	if len(f.Include) > 0 {
		matched := false
		for _, diet := range f.Include {
			if hasDietMarker(text, diet) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, diet := range f.Exclude {
		if hasDietMarker(text, diet) {
			return false
		}
	}

	if len(f.Avoid) > 0 {
		names := make([]string, 0)
		for _, ing := range r.AllIngredients() {
			names = append(names, strings.ToLower(ing.Name))
		}
		ingredients := strings.Join(names, " ")
		for _, avoid := range f.Avoid {
			a := strings.ToLower(strings.TrimSpace(avoid))
			if a == "" {
				continue
			}
			if strings.Contains(text, a) || strings.Contains(ingredients, a) {
				return false
			}
		}
	}
	return true
}

func hasDietMarker(text, diet string) bool {
	for _, marker := range dietMarkers[strings.ToLower(diet)] {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
