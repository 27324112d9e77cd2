package meal

import (
	"testing"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 固定回傳索引的隨機來源
type stubRandom struct {
	index int
	calls int
}

func (s *stubRandom) IntN(n int) int {
	s.calls++
	if s.index >= n {
		return n - 1
	}
	return s.index
}

func items(names ...string) []common.InventoryItem {
	out := make([]common.InventoryItem, 0, len(names))
	for _, n := range names {
		out = append(out, common.InventoryItem{Name: n})
	}
	return out
}

func TestSelectRandomIngredientSingleCandidate(t *testing.T) {
	rnd := &stubRandom{}
	e := NewEngine(WithRandom(rnd))

	only := common.InventoryItem{Name: "Canned Corn"}
	got, ok := e.SelectRandomIngredient([]common.InventoryItem{only}, inventory.CategoryVegetable)
	require.True(t, ok)
	assert.Equal(t, only, got)
	assert.Zero(t, rnd.calls)

	_, ok = e.SelectRandomIngredient(nil, inventory.CategoryVegetable)
	assert.False(t, ok)
}

func TestSelectRandomIngredientPreferences(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		candidates []common.InventoryItem
		allowed    []string
	}{
		{"vegetable prefers fresh", inventory.CategoryVegetable, items("Canned Green Beans", "Broccoli", "Carrots"), []string{"Broccoli", "Carrots"}},
		{"starch prefers non rice", inventory.CategoryStarch, items("Rice Pilaf", "Potatoes"), []string{"Potatoes"}},
		{"protein prefers whole cuts", inventory.CategoryProtein, items("Eggs", "Chicken Breast", "Pork Chops"), []string{"Chicken Breast", "Pork Chops"}},
		{"falls back to all candidates", inventory.CategoryVegetable, items("Canned Corn", "Canned Peas"), []string{"Canned Corn", "Canned Peas"}},
		{"no preference for category", inventory.CategoryCheese, items("Cheddar", "Swiss"), []string{"Cheddar", "Swiss"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for idx := 0; idx < len(tt.candidates); idx++ {
				e := NewEngine(WithRandom(&stubRandom{index: idx}))
				got, ok := e.SelectRandomIngredient(tt.candidates, tt.category)
				require.True(t, ok)
				assert.Contains(t, tt.allowed, got.Name)
			}
		})
	}
}

func TestInstantiateHelperMealWithoutProteinIsRejected(t *testing.T) {
	e := NewEngine(WithRandom(&stubRandom{}))
	buckets := inventory.Categorize([]common.InventoryItem{
		{Name: "Hamburger Helper Cheesy Beef", Brand: "Hamburger Helper"},
		{Name: "Chicken Breast"},
	})

	tmpl, ok := TemplateByID(TemplateHelperMeal)
	require.True(t, ok)
	assert.Nil(t, e.Instantiate(tmpl, buckets))
}

func TestInstantiateHelperMealPicksFirstSatisfiedHelper(t *testing.T) {
	e := NewEngine(WithRandom(&stubRandom{}))
	buckets := inventory.Categorize([]common.InventoryItem{
		{Name: "Tuna Helper Creamy Pasta", Brand: "Tuna Helper"},
		{Name: "Hamburger Helper Cheeseburger Macaroni", Brand: "Hamburger Helper"},
		{Name: "Lean Ground Beef"},
	})

	tmpl, _ := TemplateByID(TemplateHelperMeal)
	s := e.Instantiate(tmpl, buckets)
	require.NotNil(t, s)
	assert.True(t, s.CanMake)

	require.GreaterOrEqual(t, len(s.Components), 2)
	assert.Equal(t, "Hamburger Helper Cheeseburger Macaroni", s.Components[0].Item.Name)
	assert.True(t, s.Components[1].HelperRequirement)
	assert.Equal(t, "Lean Ground Beef", s.Components[1].Item.Name)
	assert.Equal(t, "Hamburger Helper Cheeseburger Macaroni with Lean Ground Beef", FormatMealName(*s))
}

func TestInstantiateMissingRequiredContinues(t *testing.T) {
	e := NewEngine(WithRandom(&stubRandom{}))
	buckets := map[string][]common.InventoryItem{
		inventory.CategoryProtein:   items("Chicken Breast"),
		inventory.CategoryVegetable: items("Broccoli"),
	}

	tmpl, _ := TemplateByID(TemplateProteinStarchVegetable)
	s := e.Instantiate(tmpl, buckets)
	require.NotNil(t, s)
	assert.False(t, s.CanMake)
	assert.False(t, s.IsComplete)
	assert.Len(t, s.Components, 5)
	assert.Nil(t, s.Components[1].Item)
	assert.Equal(t, inventory.CategoryStarch, s.Components[1].Category)
}

func TestCheckHelperMealRequirements(t *testing.T) {
	helper := common.InventoryItem{Name: "Hamburger Helper", RequiredProtein: inventory.ProteinGroundBeef}
	tests := []struct {
		protein string
		ok      bool
	}{
		{"Ground Beef", true},
		{"Hamburger", true},
		{"Ground Chuck Beef", true},
		{"Beef Stew Meat", false},
		{"Ground Turkey", false},
	}
	for _, tt := range tests {
		t.Run(tt.protein, func(t *testing.T) {
			buckets := map[string][]common.InventoryItem{inventory.CategoryProtein: items(tt.protein)}
			_, ok := CheckHelperMealRequirements(helper, buckets)
			assert.Equal(t, tt.ok, ok)
		})
	}

	tuna := common.InventoryItem{Name: "Tuna Helper", RequiredProtein: inventory.ProteinTuna}
	got, ok := CheckHelperMealRequirements(tuna, map[string][]common.InventoryItem{
		inventory.CategoryProtein: items("Chicken Thighs", "Chunk Light Tuna"),
	})
	require.True(t, ok)
	assert.Equal(t, "Chunk Light Tuna", got.Name)
}

func TestGenerateMealSuggestionsExcludesUnsatisfiedHelper(t *testing.T) {
	e := NewEngine(WithRandom(&stubRandom{}))
	suggestions := e.GenerateMealSuggestions([]common.InventoryItem{
		{Name: "Tuna Helper", Brand: "Tuna Helper"},
	})
	for _, s := range suggestions {
		assert.NotEqual(t, TemplateHelperMeal, s.TemplateID)
	}
}

func TestGenerateMealSuggestionsOrdering(t *testing.T) {
	e := NewEngine(WithRandom(&stubRandom{}))
	suggestions := e.GenerateMealSuggestions([]common.InventoryItem{
		{Name: "Spaghetti"},
		{Name: "Marinara Sauce"},
		{Name: "Chicken Breast"},
		{Name: "Russet Potatoes"},
		{Name: "Broccoli"},
		{Name: "Garlic Powder"},
		{Name: "Mozzarella Cheese"},
		{Name: "Ketchup"},
	})
	require.NotEmpty(t, suggestions)

	for i, s := range suggestions {
		assert.True(t, s.CanMake)
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.Equal(t, EstimateTime(s.TemplateID), s.EstimatedTimeMinutes)
		if i == 0 {
			continue
		}
		prev := suggestions[i-1]
		if prev.IsComplete == s.IsComplete {
			assert.GreaterOrEqual(t, prev.FilledCount(), s.FilledCount())
		} else {
			assert.True(t, prev.IsComplete)
		}
	}

	ids := make(map[string]bool)
	for _, s := range suggestions {
		ids[s.TemplateID] = true
	}
	assert.True(t, ids[TemplatePastaMeal])
	assert.True(t, ids[TemplateProteinStarchVegetable])
}

func TestEstimateTime(t *testing.T) {
	assert.Equal(t, 45, EstimateTime(TemplateProteinStarchVegetable))
	assert.Equal(t, 20, EstimateTime(TemplateHelperMeal))
	assert.Equal(t, 25, EstimateTime(TemplatePastaMeal))
	assert.Equal(t, DefaultEstimatedMinutes, EstimateTime("unknown"))
}

func TestFormatMealName(t *testing.T) {
	item := func(name string) *common.InventoryItem { return &common.InventoryItem{Name: name} }

	pasta := Suggestion{TemplateID: TemplatePastaMeal, Components: []Component{
		{Category: inventory.CategoryPasta, Item: item("Penne")},
		{Category: inventory.CategorySauce, Item: item("Vodka Sauce")},
		{Category: inventory.CategoryProtein, Item: item("Italian Sausage")},
	}}
	assert.Equal(t, "Penne with Vodka Sauce and Italian Sausage", FormatMealName(pasta))

	psv := Suggestion{TemplateID: TemplateProteinStarchVegetable, Components: []Component{
		{Category: inventory.CategoryProtein, Item: item("Pork Chops")},
		{Category: inventory.CategoryStarch, Item: item("Potatoes")},
		{Category: inventory.CategoryVegetable, Item: item("Green Beans")},
	}}
	assert.Equal(t, "Pork Chops with Potatoes and Green Beans", FormatMealName(psv))

	fallback := Suggestion{TemplateID: TemplateRiceBowl, Components: []Component{
		{Category: inventory.CategoryRice, Item: item("Jasmine Rice")},
		{Category: inventory.CategoryProtein, Item: item("Chicken Thighs")},
		{Category: inventory.CategoryVegetable, Item: item("Peas")},
		{Category: inventory.CategorySauce, Item: item("Teriyaki Sauce")},
	}}
	assert.Equal(t, "Jasmine Rice, Chicken Thighs and Peas", FormatMealName(fallback))

	assert.Equal(t, "", FormatMealName(Suggestion{TemplateID: TemplateRiceBowl}))
}
