package recipe

import (
	"context"
	"sync"

	"pantry-planner/internal/pkg/common"
)

// Submitter 可接收工作的佇列
type Submitter interface {
	Submit(ctx context.Context, task func()) error
}

// RankParallel 將每份食譜的分析分派到工作池，結果與 Rank 相同
func (m *Matcher) RankParallel(ctx context.Context, pool Submitter, recipes []common.Recipe, inventory []common.InventoryItem, opts RankOptions) ([]ScoredRecipe, error) {
	candidates := filterRecipes(recipes, opts)
	pantry := m.Prepare(inventory)
	analyses := make([]Analysis, len(candidates))

	var wg sync.WaitGroup
	var submitErr error
	for i := range candidates {
		idx := i
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			analyses[idx] = m.AnalyzeIn(candidates[idx], pantry)
		})
		if err == nil {
			continue
		}
		if common.AsCustomError(err).Code == common.ErrQueueFull.Code {
			// 佇列滿了就在目前的 goroutine 執行
			analyses[idx] = m.AnalyzeIn(candidates[idx], pantry)
			wg.Done()
			continue
		}
		wg.Done()
		submitErr = err
		break
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	return finishRanking(candidates, analyses, opts), nil
}
