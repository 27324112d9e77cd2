package meal

import (
	"math/rand/v2"
	"strings"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// RandomSource 隨機來源，*rand.Rand 即符合
type RandomSource interface {
	IntN(n int) int
}

// 全域 math/rand/v2 來源，可並行使用
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

var (
	wholeCutWords   = []string{"breast", "thigh", "steak", "chop", "roast", "tenderloin", "fillet", "filet", "loin", "ground", "drumstick", "wing"}
	completeMealKey = []string{"dinner", "meal", "entree", "bowl", "lean cuisine", "stouffer", "marie callender", "hungry man", "banquet", "healthy choice"}
)

// 各分類的偏好條件
var preferences = map[string]func(common.InventoryItem) bool{
	inventory.CategoryProtein: func(it common.InventoryItem) bool {
		return containsAny(strings.ToLower(it.Name), wholeCutWords)
	},
	inventory.CategoryVegetable: func(it common.InventoryItem) bool {
		return !strings.Contains(strings.ToLower(it.Name), "canned")
	},
	inventory.CategoryStandaloneConvenience: func(it common.InventoryItem) bool {
		if it.ConvenienceType == inventory.ConvenienceFrozenMeal {
			return true
		}
		return containsAny(strings.ToLower(it.Brand+" "+it.Name), completeMealKey)
	},
	inventory.CategoryStarch: func(it common.InventoryItem) bool {
		return !strings.Contains(strings.ToLower(it.Name), "rice")
	},
}

// SelectRandomIngredient 從候選中挑選一個；只有一個候選時直接回傳
func (e *Engine) SelectRandomIngredient(candidates []common.InventoryItem, category string) (common.InventoryItem, bool) {
	switch len(candidates) {
	case 0:
		return common.InventoryItem{}, false
	case 1:
		return candidates[0], true
	}

	pool := candidates
	if prefer, ok := preferences[category]; ok {
		var preferred []common.InventoryItem
		for _, c := range candidates {
			if prefer(c) {
				preferred = append(preferred, c)
			}
		}
		if len(preferred) > 0 {
			pool = preferred
		}
	}

	picked := pool[e.rnd.IntN(len(pool))]
	common.LogDebug("隨機挑選食材",
		zap.String("category", category),
		zap.Int("candidates", len(candidates)),
		zap.Int("preferred", len(pool)),
		zap.String("picked", picked.Name),
	)
	return picked, true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
