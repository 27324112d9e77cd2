package inventory

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"pantry-planner/internal/core/ingredient"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// 分類名稱
const (
	CategoryHelperMeal            = "helper_meal"
	CategoryStandaloneConvenience = "standalone_convenience"
	CategoryBurgerPatties         = "burger_patties"
	CategoryChickenConvenience    = "chicken_convenience"

	CategoryHotDogProtein = "hot_dog_protein"
	CategoryHamburgerBuns = "hamburger_buns"
	CategoryHotDogBuns    = "hot_dog_buns"
	CategorySeasoning     = "seasoning"
	CategoryGravy         = "gravy"
	CategorySoup          = "soup"
	CategoryPasta         = "pasta"
	CategoryRice          = "rice"
	CategoryBread         = "bread"
	CategorySauce         = "sauce"
	CategoryCondiment     = "condiment"
	CategoryCheese        = "cheese"
	CategoryProtein       = "protein"
	CategoryFruits        = "fruits"
	CategoryVegetable     = "vegetable"
	CategoryStarch        = "starch"
	CategoryIngredients   = "ingredients"
)

//go:embed rules.yaml
var rulesYAML []byte

// Rule 一條標準分類規則
type Rule struct {
	Category   string   `yaml:"category"`
	Exact      []string `yaml:"exact"`
	Keywords   []string `yaml:"keywords"`
	Exclude    []string `yaml:"exclude"`
	RequireAny []string `yaml:"require_any"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Matches 依序檢查完全相符、關鍵字、排除字與額外驗證
func (r Rule) Matches(simplified string) bool {
	if simplified == "" {
		return false
	}
	if !containsString(r.Exact, simplified) && !anyWordPrefix(simplified, r.Keywords) {
		return false
	}
	if anyWordPrefix(simplified, r.Exclude) {
		return false
	}
	if len(r.RequireAny) > 0 && !anyWordPrefix(simplified, r.RequireAny) {
		return false
	}
	return true
}

// Result 一次分類的完整結果
type Result struct {
	Buckets       map[string][]common.InventoryItem `json:"buckets"`
	Uncategorized []common.InventoryItem            `json:"uncategorized"`
	Skipped       int                               `json:"skipped"`
}

// Classifier 品項分類器，規則表唯讀，可並行使用
type Classifier struct {
	rules []Rule
}

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
)

// Default 取得內嵌規則表的分類器
func Default() *Classifier {
	defaultOnce.Do(func() {
		c, err := NewClassifier(rulesYAML)
		if err != nil {
			panic(fmt.Sprintf("內嵌分類規則解析失敗: %v", err))
		}
		defaultClassifier = c
	})
	return defaultClassifier
}

// NewClassifier 從 YAML 建立分類器
func NewClassifier(data []byte) (*Classifier, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse category rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("parse category rules: no rules defined")
	}
	seen := make(map[string]bool, len(file.Rules))
	for i, r := range file.Rules {
		if r.Category == "" {
			return nil, fmt.Errorf("rule %d: category is required", i)
		}
		if seen[r.Category] {
			return nil, fmt.Errorf("rule %d: duplicate category %q", i, r.Category)
		}
		seen[r.Category] = true
		file.Rules[i] = simplifyRule(r)
	}
	return &Classifier{rules: file.Rules}, nil
}

// Rules 依優先序回傳規則
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify 分類單一品項；回傳附加分析欄位的副本
func (c *Classifier) Classify(item common.InventoryItem) (string, common.InventoryItem, bool) {
	brand := AnalyzeBrand(item)
	switch {
	case brand.IsHelperMeal:
		item.RequiredProtein = brand.RequiredProtein
		item.RequiredComponent = brand.RequiredComponent
		return CategoryHelperMeal, item, true
	case brand.IsConvenienceProtein:
		item.ConvenienceType = brand.ConvenienceType
		if brand.ConvenienceType == ConvenienceBurgerPatties {
			return CategoryBurgerPatties, item, true
		}
		return CategoryChickenConvenience, item, true
	case brand.IsStandaloneConvenience:
		item.ConvenienceType = brand.ConvenienceType
		return CategoryStandaloneConvenience, item, true
	}

	name := ingredient.Simplify(item.Name)
	for _, r := range c.rules {
		if r.Matches(name) {
			return r.Category, item, true
		}
	}
	return "", item, false
}

// Categorize 將庫存分到各分類，每個品項最多出現在一個分類
func (c *Classifier) Categorize(items []common.InventoryItem) map[string][]common.InventoryItem {
	return c.Run(items).Buckets
}

// Run 分類整份庫存，並保留未分類與略過的品項資訊
func (c *Classifier) Run(items []common.InventoryItem) Result {
	res := Result{Buckets: make(map[string][]common.InventoryItem)}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			res.Skipped++
			common.LogWarn("ClassificationSkipped",
				zap.Int("index", i),
				zap.String("id", item.ID),
				zap.String("reason", "missing name"),
			)
			continue
		}

		category, annotated, ok := c.Classify(item)
		if !ok {
			res.Uncategorized = append(res.Uncategorized, item)
			common.LogDebug("品項未分類", zap.String("name", item.Name))
			continue
		}
		res.Buckets[category] = append(res.Buckets[category], annotated)
		common.LogDebug("品項已分類",
			zap.String("name", item.Name),
			zap.String("category", category),
		)
	}
	return res
}

// Categorize 以內嵌規則分類庫存
func Categorize(items []common.InventoryItem) map[string][]common.InventoryItem {
	return Default().Categorize(items)
}

func simplifyRule(r Rule) Rule {
	return Rule{
		Category:   r.Category,
		Exact:      simplifyAll(r.Exact),
		Keywords:   simplifyAll(r.Keywords),
		Exclude:    simplifyAll(r.Exclude),
		RequireAny: simplifyAll(r.RequireAny),
	}
}

func simplifyAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if s := ingredient.Simplify(w); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func anyWordPrefix(s string, words []string) bool {
	for _, w := range words {
		if hasWordPrefix(s, w) {
			return true
		}
	}
	return false
}

// hasWordPrefix 片語須從詞首開始出現
func hasWordPrefix(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+s, " "+phrase)
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
