package recipe

import (
	"testing"

	"pantry-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inv(names ...string) []common.InventoryItem {
	out := make([]common.InventoryItem, 0, len(names))
	for _, n := range names {
		out = append(out, common.InventoryItem{Name: n})
	}
	return out
}

func ing(name string) common.RecipeIngredient {
	return common.RecipeIngredient{Name: name}
}

func TestResolveTiers(t *testing.T) {
	tests := []struct {
		name      string
		ingred    common.RecipeIngredient
		inventory []common.InventoryItem
		wantType  MatchType
		wantItem  string
	}{
		{"exact after normalization", ing("broccoli"), inv("Frozen Broccoli"), MatchExact, "Frozen Broccoli"},
		{"variation table", ing("chicken breast"), inv("Boneless Skinless Chicken Breast"), MatchVariation, "Boneless Skinless Chicken Breast"},
		{"variation over guard", ing("butter"), inv("Peanut Butter", "Salted Butter"), MatchVariation, "Salted Butter"},
		{"smart partial on cores", ing("spinach"), inv("Baby Spinach"), MatchSmartPartial, "Baby Spinach"},
		{"keyword overlap", ing("red chili flakes"), inv("Crushed Red Chili Pepper Flakes"), MatchKeyword, "Crushed Red Chili Pepper Flakes"},
		{
			"alternative",
			common.RecipeIngredient{Name: "crème fraîche", Alternatives: []string{"sour cream"}},
			inv("Daisy Sour Cream"),
			MatchAlternative,
			"Daisy Sour Cream",
		},
		{"lowest tier wins", ing("broccoli"), inv("Broccoli Florets", "Broccoli"), MatchExact, "Broccoli"},
	}

	m := NewMatcher(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Resolve(tt.ingred, tt.inventory)
			require.True(t, res.Found)
			require.NotNil(t, res.InventoryItem)
			assert.Equal(t, tt.wantType, res.MatchType)
			assert.Equal(t, tt.wantItem, res.InventoryItem.Name)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name      string
		ingred    common.RecipeIngredient
		inventory []common.InventoryItem
	}{
		{"nothing similar", ing("saffron"), inv("Broccoli")},
		{"empty inventory", ing("salt"), nil},
		{"too short for exact", ing("ox"), inv("ox")},
		{"cross match guard", ing("butter"), inv("Peanut Butter")},
		{"guard on sugar", ing("sugar"), inv("Brown Sugar")},
		{"specialty only exact", ing("milk"), inv("Almond Milk")},
		{"specialty recipe side", ing("cake flour"), inv("Flour")},
		{"cross species", ing("pork chops"), inv("Chicken Chops")},
		{"blank inventory name", ing("salt"), inv("")},
	}

	m := NewMatcher(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Resolve(tt.ingred, tt.inventory)
			assert.False(t, res.Found)
			assert.Nil(t, res.InventoryItem)
			assert.Empty(t, res.MatchType)
		})
	}
}

func TestResolveDietaryExclusivity(t *testing.T) {
	veganNames := []string{"vegan sausage", "Beyond Meat Burger", "Impossible Ground Beef", "tofu crumbles", "plant-based chicken"}
	animalNames := []string{"Pork Sausage", "Ground Beef", "chicken breast", "Beef Burger", "Smoked Ham"}

	m := NewMatcher(DefaultThresholds())
	for _, v := range veganNames {
		for _, a := range animalNames {
			res := m.Resolve(ing(v), inv(a))
			assert.False(t, res.Found, "recipe %q matched item %q", v, a)

			res = m.Resolve(ing(a), inv(v))
			assert.False(t, res.Found, "recipe %q matched item %q", a, v)

			alt := common.RecipeIngredient{Name: v, Alternatives: []string{a}}
			res = m.Resolve(alt, inv(a))
			assert.False(t, res.Found, "alternative %q matched item %q", a, v)
		}
	}
}

func TestResolveVeganBrandOnItem(t *testing.T) {
	m := NewMatcher(DefaultThresholds())
	item := []common.InventoryItem{{Name: "Burger Patties", Brand: "Beyond Meat"}}

	res := m.Resolve(ing("beef burger patties"), item)
	assert.False(t, res.Found)
}

func TestResolveVeganRecipeFindsBrandedVeganItem(t *testing.T) {
	m := NewMatcher(DefaultThresholds())
	item := []common.InventoryItem{{Name: "Chicken Strips", Brand: "Gardein"}}

	for _, name := range []string{"vegan chicken strips", "plant-based chicken strips"} {
		res := m.Resolve(ing(name), item)
		assert.True(t, res.Found, name)
	}

	res := m.Resolve(ing("chicken breast"), item)
	assert.False(t, res.Found)
}

func TestResolveHamburgerBuns(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	res := m.Resolve(ing("hamburger buns"), inv("Vegan Hamburger Buns"))
	assert.True(t, res.Found)

	res = m.Resolve(ing("hamburger"), inv("Vegan Hamburger Buns"))
	assert.False(t, res.Found)
}

func TestAnalyzeRecipeExample(t *testing.T) {
	r := common.Recipe{
		Title: "Chicken and Broccoli",
		Ingredients: []common.RecipeIngredient{
			{Name: "chicken breast"},
			{Name: "broccoli"},
		},
	}
	a := AnalyzeRecipe(r, inv("Boneless Skinless Chicken Breast", "Frozen Broccoli"))

	assert.Equal(t, 1.0, a.MatchPercentage)
	assert.True(t, a.CanMake)
	assert.Zero(t, a.RequiredMissing)
	require.Len(t, a.AvailableIngredients, 2)
	assert.Equal(t, MatchVariation, a.AvailableIngredients[0].Match.MatchType)
	assert.Empty(t, a.MissingIngredients)
}

func TestAnalyzeRecipeOptionalAndEmpty(t *testing.T) {
	empty := AnalyzeRecipe(common.Recipe{Title: "Nothing"}, inv("Salt"))
	assert.Equal(t, 0.0, empty.MatchPercentage)
	assert.False(t, empty.CanMake)

	r := common.Recipe{
		Title: "Buttered Noodles",
		Ingredients: []common.RecipeIngredient{
			{Name: "egg noodles"},
			{Name: "butter"},
			{Name: "parsley", Optional: true},
			{Name: "parmesan cheese", Optional: true},
		},
	}
	a := AnalyzeRecipe(r, inv("Wide Egg Noodles", "Butter", "Parmesan"))
	assert.InDelta(t, 0.75, a.MatchPercentage, 1e-9)
	assert.True(t, a.CanMake)
	assert.Zero(t, a.RequiredMissing)
	require.Len(t, a.MissingIngredients, 1)
	assert.Equal(t, "parsley", a.MissingIngredients[0].Name)

	b := AnalyzeRecipe(r, inv("Parsley", "Parmesan"))
	assert.InDelta(t, 0.5, b.MatchPercentage, 1e-9)
	assert.False(t, b.CanMake)
	assert.Equal(t, 2, b.RequiredMissing)
}

func TestAnalyzeMultiPartRecipe(t *testing.T) {
	r := common.Recipe{
		Title:       "Chicken Pot Pie",
		IsMultiPart: true,
		Parts: []common.RecipePart{
			{Name: "Filling", Ingredients: []common.RecipeIngredient{{Name: "chicken breast"}, {Name: "frozen peas"}}},
			{Name: "Crust", Ingredients: []common.RecipeIngredient{{Name: "flour"}, {Name: "butter"}}},
		},
	}
	a := AnalyzeRecipe(r, inv("Chicken Breasts", "Peas", "Butter"))

	assert.Equal(t, 4, a.TotalIngredients)
	assert.InDelta(t, 0.75, a.MatchPercentage, 1e-9)
	assert.False(t, a.CanMake)
	require.Len(t, a.Parts, 2)
	assert.Equal(t, PartAvailability{Name: "Filling", Total: 2, Available: 2, CanMake: true}, a.Parts[0])
	assert.Equal(t, PartAvailability{Name: "Crust", Total: 2, Available: 1, CanMake: false}, a.Parts[1])
	require.Len(t, a.MissingIngredients, 1)
	assert.Equal(t, "Crust", a.MissingIngredients[0].PartName)
}

func TestAnalyzeMonotonic(t *testing.T) {
	recipes := []common.Recipe{
		{Title: "Stir Fry", Ingredients: []common.RecipeIngredient{
			{Name: "chicken breast"}, {Name: "broccoli"}, {Name: "soy sauce"}, {Name: "garlic"}, {Name: "white rice"},
		}},
		{Title: "Pancakes", Ingredients: []common.RecipeIngredient{
			{Name: "flour"}, {Name: "milk"}, {Name: "eggs"}, {Name: "sugar"}, {Name: "butter", Alternatives: []string{"vegetable oil"}},
		}},
	}
	full := inv("Boneless Skinless Chicken Breast", "Frozen Broccoli", "Kikkoman Soy Sauce", "Garlic Cloves",
		"Long Grain White Rice", "All-Purpose Flour", "Whole Milk", "Large Eggs", "Brown Sugar", "Canola Oil", "Peanut Butter")

	m := NewMatcher(DefaultThresholds())
	for _, r := range recipes {
		prev := -1.0
		for n := 0; n <= len(full); n++ {
			a := m.AnalyzeRecipe(r, full[:n])
			assert.GreaterOrEqual(t, a.MatchPercentage, prev, "%s with %d items", r.Title, n)
			prev = a.MatchPercentage
		}
	}
}

func TestNewMatcherDefaults(t *testing.T) {
	m := NewMatcher(Thresholds{})
	assert.Equal(t, DefaultThresholds(), m.Thresholds())

	custom := NewMatcher(Thresholds{PartialRatio: 0.8, KeywordRatio: 0.9, KeywordMinTokens: 3})
	assert.Equal(t, 0.8, custom.Thresholds().PartialRatio)
}
