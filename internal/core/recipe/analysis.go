package recipe

import (
	"pantry-planner/internal/pkg/common"
)

// IngredientStatus 食材與其比對結果
type IngredientStatus struct {
	common.RecipeIngredient
	Match MatchResult `json:"match"`
}

// PartAvailability 多段式食譜每一段的可用狀況
type PartAvailability struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	CanMake   bool   `json:"canMake"`
}

// Analysis 食譜對庫存的分析
type Analysis struct {
	MatchPercentage      float64            `json:"matchPercentage"`
	AvailableIngredients []IngredientStatus `json:"availableIngredients"`
	MissingIngredients   []IngredientStatus `json:"missingIngredients"`
	CanMake              bool               `json:"canMake"`
	RequiredMissing      int                `json:"requiredMissing"`
	TotalIngredients     int                `json:"totalIngredients"`
	Parts                []PartAvailability `json:"parts,omitempty"`
}

// AnalyzeRecipe 對整份食譜執行比對
func (m *Matcher) AnalyzeRecipe(r common.Recipe, inventory []common.InventoryItem) Analysis {
	return m.AnalyzeIn(r, m.Prepare(inventory))
}

// AnalyzeIn 在已正規化的庫存上分析食譜
func (m *Matcher) AnalyzeIn(r common.Recipe, pantry *Pantry) Analysis {
	all := r.AllIngredients()
	a := Analysis{
		AvailableIngredients: []IngredientStatus{},
		MissingIngredients:   []IngredientStatus{},
		TotalIngredients:     len(all),
	}
	if len(all) == 0 {
		return a
	}

	var required, availableRequired int
	parts := make(map[string]*PartAvailability)
	var partOrder []string

	for _, ing := range all {
		res := m.ResolveIn(ing, pantry)
		status := IngredientStatus{RecipeIngredient: ing, Match: res}

		if !ing.Optional {
			required++
		}
		if res.Found {
			a.AvailableIngredients = append(a.AvailableIngredients, status)
			if !ing.Optional {
				availableRequired++
			}
		} else {
			a.MissingIngredients = append(a.MissingIngredients, status)
			if !ing.Optional {
				a.RequiredMissing++
			}
		}

		if ing.PartName == "" {
			continue
		}
		p, ok := parts[ing.PartName]
		if !ok {
			p = &PartAvailability{Name: ing.PartName, CanMake: true}
			parts[ing.PartName] = p
			partOrder = append(partOrder, ing.PartName)
		}
		p.Total++
		if res.Found {
			p.Available++
		} else if !ing.Optional {
			p.CanMake = false
		}
	}

	a.MatchPercentage = float64(len(a.AvailableIngredients)) / float64(len(all))
	a.CanMake = availableRequired >= required
	for _, name := range partOrder {
		a.Parts = append(a.Parts, *parts[name])
	}
	return a
}
