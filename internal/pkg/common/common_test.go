package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsCustomError(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrCatalogUnavailable.Wrap(errors.New("dial tcp")))
	ce := AsCustomError(wrapped)
	assert.Equal(t, "CATALOG_UNAVAILABLE", ce.Code)
	assert.Equal(t, http.StatusBadGateway, ce.Status)
	assert.Contains(t, ce.Error(), "dial tcp")

	ce = AsCustomError(NewValidationError("title: required"))
	assert.Equal(t, ErrCodeInvalidRequest, ce.Code)

	ce = AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, ce.Code)
}

func TestWrapKeepsIdentityUnwrappable(t *testing.T) {
	root := errors.New("root")
	err := ErrQueueFull.Wrap(root)
	assert.ErrorIs(t, err, root)
	assert.Equal(t, ErrQueueFull.Code, err.Code)
	assert.Nil(t, ErrQueueFull.Err)
}

func TestValidateStruct(t *testing.T) {
	ok := Recipe{Title: "Tacos", Ingredients: []RecipeIngredient{{Name: "beef"}}}
	assert.NoError(t, ValidateStruct(ok))

	err := ValidateStruct(Recipe{Ingredients: []RecipeIngredient{{Name: ""}}})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "Recipe.Title")
	assert.Contains(t, err.Error(), "Recipe.Ingredients[0].Name")
}

func TestParseJSONBytes(t *testing.T) {
	var r Recipe
	require.NoError(t, ParseJSONBytes([]byte(`{"title":"Soup"}`), &r))
	assert.Equal(t, "Soup", r.Title)

	assert.Error(t, ParseJSONBytes([]byte(`{"title":"Soup"} {}`), &r))
	assert.Error(t, ParseJSONBytes([]byte(`{"title":`), &r))
}

func TestHashJSONStable(t *testing.T) {
	a, err := HashJSON(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	b, err := HashJSON(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestAllIngredientsTagsParts(t *testing.T) {
	r := Recipe{
		Ingredients: []RecipeIngredient{{Name: "salt"}},
		IsMultiPart: true,
		Parts: []RecipePart{
			{Name: "Dough", Ingredients: []RecipeIngredient{{Name: "flour"}}},
			{Name: "Sauce", Ingredients: []RecipeIngredient{{Name: "tomatoes"}}},
		},
	}
	all := r.AllIngredients()
	require.Len(t, all, 3)
	assert.Empty(t, all[0].PartName)
	assert.Equal(t, "Dough", all[1].PartName)
	assert.Equal(t, "Sauce", all[2].PartName)
	assert.Empty(t, r.Parts[0].Ingredients[0].PartName)

	r.IsMultiPart = false
	assert.Len(t, r.AllIngredients(), 1)
}
