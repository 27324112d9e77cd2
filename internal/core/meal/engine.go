package meal

import (
	"sort"
	"strings"

	"pantry-planner/internal/core/ingredient"
	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Component 餐點中的一個組成
type Component struct {
	Category          string                `json:"category"`
	Item              *common.InventoryItem `json:"item"`
	Required          bool                  `json:"required"`
	HelperRequirement bool                  `json:"helperRequirement,omitempty"`
}

// Suggestion 餐點建議，每次分類重新產生
type Suggestion struct {
	ID                   string      `json:"id"`
	TemplateID           string      `json:"templateId"`
	Name                 string      `json:"name"`
	Icon                 string      `json:"icon"`
	Description          string      `json:"description"`
	Components           []Component `json:"components"`
	CanMake              bool        `json:"canMake"`
	IsComplete           bool        `json:"isComplete"`
	EstimatedTimeMinutes int         `json:"estimatedTimeMinutes"`
}

// FilledCount 已選到品項的組成數量
func (s Suggestion) FilledCount() int {
	n := 0
	for _, c := range s.Components {
		if c.Item != nil {
			n++
		}
	}
	return n
}

// Categorizer 將庫存分桶
type Categorizer interface {
	Categorize(items []common.InventoryItem) map[string][]common.InventoryItem
}

// Engine 餐點模板引擎
type Engine struct {
	rnd         RandomSource
	categorizer Categorizer
	templates   []Template
}

// Option 引擎選項
type Option func(*Engine)

// WithRandom 注入隨機來源
func WithRandom(r RandomSource) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithCategorizer 注入分類器
func WithCategorizer(c Categorizer) Option {
	return func(e *Engine) { e.categorizer = c }
}

// NewEngine 建立引擎
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rnd:         globalSource{},
		categorizer: inventory.Default(),
		templates:   templates,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Instantiate 嘗試以分桶結果組出模板；調理包找不到所需蛋白質時整個模板回傳 nil
func (e *Engine) Instantiate(t Template, buckets map[string][]common.InventoryItem) *Suggestion {
	s := &Suggestion{
		TemplateID:           t.ID,
		Icon:                 t.Icon,
		Description:          t.Description,
		CanMake:              true,
		EstimatedTimeMinutes: EstimateTime(t.ID),
	}

	for _, category := range t.RequiredCategories {
		if category == inventory.CategoryHelperMeal {
			helper, protein, ok := firstSatisfiedHelper(buckets)
			if !ok {
				common.LogDebug("模板已拒絕",
					zap.String("template", t.ID),
					zap.String("reason", "no helper meal with its required protein"),
				)
				return nil
			}
			s.Components = append(s.Components,
				Component{Category: category, Item: &helper, Required: true},
				Component{Category: componentCategory(helper), Item: &protein, Required: true, HelperRequirement: true},
			)
			continue
		}

		picked, ok := e.SelectRandomIngredient(buckets[category], category)
		if !ok {
			s.CanMake = false
			s.Components = append(s.Components, Component{Category: category, Required: true})
			continue
		}
		s.Components = append(s.Components, Component{Category: category, Item: &picked, Required: true})
	}

	complete := s.CanMake
	for _, category := range t.OptionalCategories {
		picked, ok := e.SelectRandomIngredient(buckets[category], category)
		if !ok {
			complete = false
			s.Components = append(s.Components, Component{Category: category})
			continue
		}
		s.Components = append(s.Components, Component{Category: category, Item: &picked})
	}
	s.IsComplete = complete
	return s
}

func firstSatisfiedHelper(buckets map[string][]common.InventoryItem) (common.InventoryItem, common.InventoryItem, bool) {
	for _, helper := range buckets[inventory.CategoryHelperMeal] {
		if protein, ok := CheckHelperMealRequirements(helper, buckets); ok {
			return helper, protein, true
		}
	}
	return common.InventoryItem{}, common.InventoryItem{}, false
}

func componentCategory(helper common.InventoryItem) string {
	if helper.RequiredComponent != "" {
		return helper.RequiredComponent
	}
	return inventory.CategoryProtein
}

// CheckHelperMealRequirements 在蛋白質分類中找出調理包所需的蛋白質
func CheckHelperMealRequirements(helper common.InventoryItem, buckets map[string][]common.InventoryItem) (common.InventoryItem, bool) {
	required := strings.ToLower(strings.TrimSpace(helper.RequiredProtein))
	candidates := buckets[componentCategory(helper)]
	if required == "" {
		if len(candidates) == 0 {
			return common.InventoryItem{}, false
		}
		return candidates[0], true
	}
	for _, c := range candidates {
		if proteinSatisfies(required, c.Name) {
			return c, true
		}
	}
	return common.InventoryItem{}, false
}

func proteinSatisfies(required, name string) bool {
	n := ingredient.Simplify(name)
	switch required {
	case inventory.ProteinGroundBeef:
		return strings.Contains(n, "ground beef") || strings.Contains(n, "hamburger") ||
			(strings.Contains(n, "ground") && strings.Contains(n, "beef"))
	case inventory.ProteinGroundTurkey:
		return strings.Contains(n, "ground turkey") ||
			(strings.Contains(n, "ground") && strings.Contains(n, "turkey"))
	case inventory.ProteinChicken:
		return strings.Contains(n, "chicken")
	case inventory.ProteinTuna:
		return strings.Contains(n, "tuna")
	default:
		return strings.Contains(n, ingredient.Simplify(required))
	}
}

// GenerateMealSuggestions 分類庫存並回傳可製作的餐點建議
func (e *Engine) GenerateMealSuggestions(items []common.InventoryItem) []Suggestion {
	buckets := e.categorizer.Categorize(items)

	var out []Suggestion
	for _, t := range e.templates {
		s := e.Instantiate(t, buckets)
		if s == nil || !s.CanMake {
			continue
		}
		s.ID = common.GenerateUUID()
		s.Name = FormatMealName(*s)
		out = append(out, *s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsComplete != out[j].IsComplete {
			return out[i].IsComplete
		}
		return out[i].FilledCount() > out[j].FilledCount()
	})

	common.LogDebug("餐點建議已產生",
		zap.Int("inventory", len(items)),
		zap.Int("suggestions", len(out)),
	)
	return out
}
