package common

import (
	"strings"
)

// InventoryItem 庫存品項
// 分類器附加的欄位（RequiredProtein 等）只會寫在副本上，不會改動來源資料
type InventoryItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`

	RequiredProtein   string `json:"requiredProtein,omitempty"`
	RequiredComponent string `json:"requiredComponent,omitempty"`
	ConvenienceType   string `json:"convenienceType,omitempty"`
}

// Label 品項顯示名稱
func (i InventoryItem) Label() string {
	return strings.TrimSpace(i.Name)
}

// RecipeIngredient 食譜食材
type RecipeIngredient struct {
	Name         string   `json:"name" validate:"required"`
	Amount       string   `json:"amount,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Optional     bool     `json:"optional"`
	Alternatives []string `json:"alternatives,omitempty"`
	PartName     string   `json:"partName,omitempty"`
}

// RecipePart 多段式食譜的其中一段（例如：麵團、醬汁）
type RecipePart struct {
	Name        string             `json:"name"`
	Type        string             `json:"type,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients" validate:"dive"`
}

// Recipe 食譜
type Recipe struct {
	ID          string             `json:"id,omitempty"`
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description,omitempty"`
	Category    string             `json:"category,omitempty"`
	Difficulty  string             `json:"difficulty,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	PrepTime    int                `json:"prepTime,omitempty"`
	CookTime    int                `json:"cookTime,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients" validate:"dive"`
	IsMultiPart bool               `json:"isMultiPart,omitempty"`
	Parts       []RecipePart       `json:"parts,omitempty" validate:"dive"`
}

// AllIngredients 攤平單段與多段食材，多段的食材會標記所屬段落
func (r Recipe) AllIngredients() []RecipeIngredient {
	all := make([]RecipeIngredient, 0, len(r.Ingredients))
	all = append(all, r.Ingredients...)
	if !r.IsMultiPart {
		return all
	}
	for _, part := range r.Parts {
		for _, ing := range part.Ingredients {
			ing.PartName = part.Name
			all = append(all, ing)
		}
	}
	return all
}

// TotalTime 準備加烹調時間（分鐘）
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}
