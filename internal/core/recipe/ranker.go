package recipe

import (
	"fmt"
	"sort"
	"strings"

	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// SortMode 排序方式
type SortMode string

const (
	SortByMatch      SortMode = "match"
	SortByTime       SortMode = "time"
	SortByDifficulty SortMode = "difficulty"
)

// CategoryAll 不篩選分類
const CategoryAll = "all"

// ParseSortMode 解析排序方式，空字串視為 match
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByMatch:
		return SortByMatch, nil
	case SortByTime:
		return SortByTime, nil
	case SortByDifficulty:
		return SortByDifficulty, nil
	}
	return "", common.ErrInvalidSortMode.Wrap(fmt.Errorf("sort mode %q", s))
}

var difficultyOrder = map[string]int{"easy": 1, "medium": 2, "hard": 3}

// 未標示難度的食譜排在最後
func difficultyRank(d string) int {
	if r, ok := difficultyOrder[strings.ToLower(strings.TrimSpace(d))]; ok {
		return r
	}
	return len(difficultyOrder) + 1
}

// RankOptions 排名條件
type RankOptions struct {
	Threshold float64       `json:"threshold"`
	Category  string        `json:"category,omitempty"`
	SortBy    SortMode      `json:"sortBy,omitempty"`
	Dietary   DietaryFilter `json:"dietary"`
}

// ScoredRecipe 附帶分析結果的食譜
type ScoredRecipe struct {
	Recipe   common.Recipe `json:"recipe"`
	Analysis Analysis      `json:"analysis"`
}

// Rank 分析、過濾並排序食譜
func (m *Matcher) Rank(recipes []common.Recipe, inventory []common.InventoryItem, opts RankOptions) []ScoredRecipe {
	candidates := filterRecipes(recipes, opts)
	pantry := m.Prepare(inventory)

	analyses := make([]Analysis, len(candidates))
	for i, r := range candidates {
		analyses[i] = m.AnalyzeIn(r, pantry)
	}
	return finishRanking(candidates, analyses, opts)
}

// Rank 以預設門檻排名
func Rank(recipes []common.Recipe, inventory []common.InventoryItem, threshold float64, category string, sortBy SortMode) []ScoredRecipe {
	return NewMatcher(DefaultThresholds()).Rank(recipes, inventory, RankOptions{
		Threshold: threshold,
		Category:  category,
		SortBy:    sortBy,
	})
}

// AnalyzeRecipe 以預設門檻分析食譜
func AnalyzeRecipe(r common.Recipe, inventory []common.InventoryItem) Analysis {
	return NewMatcher(DefaultThresholds()).AnalyzeRecipe(r, inventory)
}

func filterRecipes(recipes []common.Recipe, opts RankOptions) []common.Recipe {
	category := strings.TrimSpace(opts.Category)
	out := make([]common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if category != "" && category != CategoryAll && r.Category != category {
			continue
		}
		if !opts.Dietary.Allows(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func finishRanking(recipes []common.Recipe, analyses []Analysis, opts RankOptions) []ScoredRecipe {
	out := make([]ScoredRecipe, 0, len(recipes))
	for i, r := range recipes {
		// 門檻為 NaN 時不保留任何食譜
		if !(analyses[i].MatchPercentage >= opts.Threshold) {
			continue
		}
		out = append(out, ScoredRecipe{Recipe: r, Analysis: analyses[i]})
	}

	sortMode, err := ParseSortMode(string(opts.SortBy))
	if err != nil {
		sortMode = SortByMatch
	}
	sort.SliceStable(out, lessFor(out, sortMode))

	common.LogInfo("食譜排名完成",
		zap.Int("recipes", len(recipes)),
		zap.Int("retained", len(out)),
		zap.Float64("threshold", opts.Threshold),
		zap.String("sortBy", string(sortMode)),
	)
	return out
}

func lessFor(out []ScoredRecipe, mode SortMode) func(i, j int) bool {
	switch mode {
	case SortByTime:
		return func(i, j int) bool {
			return out[i].Recipe.TotalTime() < out[j].Recipe.TotalTime()
		}
	case SortByDifficulty:
		return func(i, j int) bool {
			return difficultyRank(out[i].Recipe.Difficulty) < difficultyRank(out[j].Recipe.Difficulty)
		}
	default:
		return func(i, j int) bool {
			return out[i].Analysis.MatchPercentage > out[j].Analysis.MatchPercentage
		}
	}
}
