package recipe

import (
	"strings"

	"pantry-planner/internal/core/ingredient"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// MatchType 命中的比對層級
type MatchType string

const (
	MatchExact        MatchType = "exact"
	MatchVariation    MatchType = "variation"
	MatchSmartPartial MatchType = "smart_partial"
	MatchKeyword      MatchType = "keyword"
	MatchAlternative  MatchType = "alternative"
)

// MatchResult 單一食材的比對結果
type MatchResult struct {
	Found         bool                  `json:"found"`
	InventoryItem *common.InventoryItem `json:"inventoryItem"`
	MatchType     MatchType             `json:"matchType,omitempty"`
}

// Thresholds 模糊比對門檻
type Thresholds struct {
	PartialRatio     float64
	KeywordRatio     float64
	KeywordMinTokens int
}

// DefaultThresholds 預設門檻
func DefaultThresholds() Thresholds {
	return Thresholds{PartialRatio: 0.5, KeywordRatio: 0.6, KeywordMinTokens: 2}
}

// Matcher 五層食材比對器；規則表唯讀，可並行使用
type Matcher struct {
	tables     *ingredient.Tables
	thresholds Thresholds
}

// NewMatcher 建立比對器，零值門檻套用預設
func NewMatcher(th Thresholds) *Matcher {
	def := DefaultThresholds()
	if th.PartialRatio <= 0 {
		th.PartialRatio = def.PartialRatio
	}
	if th.KeywordRatio <= 0 {
		th.KeywordRatio = def.KeywordRatio
	}
	if th.KeywordMinTokens <= 0 {
		th.KeywordMinTokens = def.KeywordMinTokens
	}
	return &Matcher{tables: ingredient.DefaultTables(), thresholds: th}
}

// Thresholds 目前使用的門檻
func (m *Matcher) Thresholds() Thresholds {
	return m.thresholds
}

type preparedItem struct {
	item       common.InventoryItem
	normalized string
	core       string
	tokens     []string
	profile    ingredient.Profile
}

// Pantry 已正規化的庫存，可重複用於多份食譜
type Pantry struct {
	items []preparedItem
}

// Len 庫存品項數
func (p *Pantry) Len() int {
	return len(p.items)
}

// Prepare 每個庫存名稱只正規化一次
func (m *Matcher) Prepare(inventory []common.InventoryItem) *Pantry {
	p := &Pantry{items: make([]preparedItem, 0, len(inventory))}
	for _, item := range inventory {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		normalized := ingredient.Normalize(item.Name)
		core := ingredient.Core(normalized)
		p.items = append(p.items, preparedItem{
			item:       item,
			normalized: normalized,
			core:       core,
			tokens:     ingredient.Tokens(core),
			profile:    ingredient.ProfileOf(item.Name, item.Brand),
		})
	}
	return p
}

// Resolve 以五層比對找出庫存中的食材
func (m *Matcher) Resolve(ing common.RecipeIngredient, inventory []common.InventoryItem) MatchResult {
	return m.ResolveIn(ing, m.Prepare(inventory))
}

// ResolveIn 在已正規化的庫存中比對食材；同層級取第一個相容的品項
func (m *Matcher) ResolveIn(ing common.RecipeIngredient, pantry *Pantry) MatchResult {
	normalized := ingredient.Normalize(ing.Name)
	core := ingredient.Core(normalized)
	tokens := ingredient.Tokens(core)
	profile := ingredient.ProfileOf(ing.Name)

	type tier struct {
		kind  MatchType
		fuzzy bool
		test  func(p *preparedItem) bool
	}
	tiers := []tier{
		{MatchExact, false, func(p *preparedItem) bool {
			return len(normalized) > 2 && normalized == p.normalized
		}},
		{MatchVariation, false, func(p *preparedItem) bool {
			_, ok := m.tables.Variation(normalized, p.normalized)
			return ok
		}},
		{MatchSmartPartial, true, func(p *preparedItem) bool {
			return m.smartPartial(core, p.core)
		}},
		{MatchKeyword, true, func(p *preparedItem) bool {
			return m.keywordOverlap(tokens, p.tokens)
		}},
	}

	for _, t := range tiers {
		for i := range pantry.items {
			p := &pantry.items[i]
			if !ingredient.Compatible(profile, p.profile) {
				continue
			}
			if t.fuzzy && !m.fuzzyAllowed(ing.Name, p.item.Name) {
				continue
			}
			if t.test(p) {
				return m.hit(ing, p, t.kind)
			}
		}
	}

	for _, alt := range ing.Alternatives {
		altNormalized := ingredient.Normalize(alt)
		if len(altNormalized) <= 2 {
			continue
		}
		altProfile := ingredient.ProfileOf(alt)
		for i := range pantry.items {
			p := &pantry.items[i]
			if !ingredient.Compatible(profile, p.profile) || !ingredient.Compatible(altProfile, p.profile) {
				continue
			}
			if !m.fuzzyAllowed(alt, p.item.Name) || len(p.normalized) <= 2 {
				continue
			}
			if strings.Contains(p.normalized, altNormalized) || strings.Contains(altNormalized, p.normalized) {
				return m.hit(ing, p, MatchAlternative)
			}
		}
	}

	common.LogDebug("食材未找到", zap.String("ingredient", ing.Name))
	return MatchResult{}
}

func (m *Matcher) hit(ing common.RecipeIngredient, p *preparedItem, kind MatchType) MatchResult {
	item := p.item
	common.LogDebug("食材已比對",
		zap.String("ingredient", ing.Name),
		zap.String("item", item.Name),
		zap.String("tier", string(kind)),
	)
	return MatchResult{Found: true, InventoryItem: &item, MatchType: kind}
}

// 互斥表與特殊食材只限制模糊層級
func (m *Matcher) fuzzyAllowed(recipeName, itemName string) bool {
	return !m.tables.Blocked(recipeName, itemName) && !m.tables.SpecialtyConflict(recipeName, itemName)
}

func (m *Matcher) smartPartial(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	if a != b && !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	short, long := len(a), len(b)
	if short > long {
		short, long = long, short
	}
	return float64(short)/float64(long) >= m.thresholds.PartialRatio
}

func (m *Matcher) keywordOverlap(recipeTokens, itemTokens []string) bool {
	total := len(recipeTokens)
	if total == 0 || len(itemTokens) == 0 {
		return false
	}
	count := 0
	for _, rt := range recipeTokens {
		for _, it := range itemTokens {
			if strings.Contains(rt, it) || strings.Contains(it, rt) {
				count++
				break
			}
		}
	}
	need := m.thresholds.KeywordMinTokens
	if total < need {
		need = total
	}
	return count >= need && float64(count)/float64(total) >= m.thresholds.KeywordRatio
}
