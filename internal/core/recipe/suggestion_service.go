package recipe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"pantry-planner/internal/core/cache"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Catalog 提供庫存與食譜資料的外部來源
type Catalog interface {
	Inventory(ctx context.Context) ([]common.InventoryItem, error)
	Recipes(ctx context.Context) ([]common.Recipe, error)
}

// SuggestionService 食譜推薦服務
type SuggestionService struct {
	matcher *Matcher
	catalog Catalog
	cache   cache.Store
	pool    Submitter
}

// NewSuggestionService 創建新的食譜推薦服務；cache 與 pool 可為 nil
func NewSuggestionService(matcher *Matcher, catalog Catalog, store cache.Store, pool Submitter) *SuggestionService {
	if matcher == nil {
		matcher = NewMatcher(DefaultThresholds())
	}
	return &SuggestionService{
		matcher: matcher,
		catalog: catalog,
		cache:   store,
		pool:    pool,
	}
}

// Matcher 目前使用的匹配器
func (s *SuggestionService) Matcher() *Matcher {
	return s.matcher
}

// ValidateOptions 檢查排名條件
func ValidateOptions(opts RankOptions) error {
	if math.IsNaN(opts.Threshold) || opts.Threshold < 0 || opts.Threshold > 1 {
		return common.ErrInvalidThreshold.Wrap(fmt.Errorf("threshold %v", opts.Threshold))
	}
	if _, err := ParseSortMode(string(opts.SortBy)); err != nil {
		return err
	}
	return common.ValidateStruct(opts.Dietary)
}

type rankCacheInput struct {
	Recipes   []common.Recipe        `json:"recipes"`
	Inventory []common.InventoryItem `json:"inventory"`
	Options   RankOptions            `json:"options"`
}

// Rank 排名指定的食譜，相同輸入會命中快取
func (s *SuggestionService) Rank(ctx context.Context, recipes []common.Recipe, inventory []common.InventoryItem, opts RankOptions) ([]ScoredRecipe, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	key, err := cache.Key("rank", rankCacheInput{Recipes: recipes, Inventory: inventory, Options: opts})
	if err != nil {
		return nil, err
	}
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	var ranked []ScoredRecipe
	if s.pool != nil {
		ranked, err = s.matcher.RankParallel(ctx, s.pool, recipes, inventory, opts)
		if err != nil {
			return nil, fmt.Errorf("rank recipes: %w", err)
		}
	} else {
		ranked = s.matcher.Rank(recipes, inventory, opts)
	}
	common.LogDebug("食譜分析完成",
		zap.Int("recipes", len(recipes)),
		zap.Int("inventory", len(inventory)),
		zap.Duration("duration", time.Since(start)),
	)

	s.toCache(ctx, key, ranked)
	return ranked, nil
}

// Suggest 從資料服務載入庫存與食譜後排名
func (s *SuggestionService) Suggest(ctx context.Context, opts RankOptions) ([]ScoredRecipe, error) {
	if s.catalog == nil {
		return nil, common.ErrCatalogUnavailable
	}
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	inventory, err := s.catalog.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	recipes, err := s.catalog.Recipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	return s.Rank(ctx, recipes, inventory, opts)
}

func (s *SuggestionService) fromCache(ctx context.Context, key string) ([]ScoredRecipe, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) && !errors.Is(err, common.ErrCacheDisabled) {
			common.LogWarn("讀取快取失敗", zap.Error(err))
		}
		return nil, false
	}

	var out []ScoredRecipe
	if err := common.ParseJSONBytes([]byte(val), &out); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (s *SuggestionService) toCache(ctx context.Context, key string, ranked []ScoredRecipe) {
	if s.cache == nil {
		return
	}
	val, err := common.ToJSON(ranked)
	if err != nil {
		common.LogWarn("快取內容序列化失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, val); err != nil {
		common.LogWarn("寫入快取失敗", zap.Error(err))
	}
}
