package recipe

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	recipeService "pantry-planner/internal/core/recipe"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeRequest 分析單一食譜；分析不使用標題，可省略
type AnalyzeRequest struct {
	Recipe    common.Recipe          `json:"recipe" validate:"-"`
	Inventory []common.InventoryItem `json:"inventory"`
}

type analyzeIngredients struct {
	Ingredients []common.RecipeIngredient `validate:"dive"`
}

// RankRequest 排名一組食譜
type RankRequest struct {
	Recipes   []common.Recipe             `json:"recipes" validate:"dive"`
	Inventory []common.InventoryItem      `json:"inventory"`
	Threshold *float64                    `json:"threshold,omitempty"`
	Category  string                      `json:"category,omitempty"`
	SortBy    string                      `json:"sortBy,omitempty"`
	Dietary   recipeService.DietaryFilter `json:"dietary"`
}

// RankResponse 排名結果
type RankResponse struct {
	Recipes []recipeService.ScoredRecipe `json:"recipes"`
	Count   int                          `json:"count"`
}

// Handler 食譜比對與排名
type Handler struct {
	suggestions      *recipeService.SuggestionService
	defaultThreshold float64
}

// NewHandler 創建新的食譜處理程序
func NewHandler(suggestions *recipeService.SuggestionService, defaultThreshold float64) *Handler {
	return &Handler{
		suggestions:      suggestions,
		defaultThreshold: defaultThreshold,
	}
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	if err := common.ValidateStruct(v); err != nil {
		common.LogWarn("請求驗證失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, err)
		return false
	}
	return true
}

// HandleAnalyze 分析食譜對庫存的可製作程度
func (h *Handler) HandleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := common.ValidateStruct(analyzeIngredients{Ingredients: req.Recipe.AllIngredients()}); err != nil {
		h.fail(c, "請求驗證失敗", err)
		return
	}

	analysis := h.suggestions.Matcher().AnalyzeRecipe(req.Recipe, req.Inventory)

	common.LogInfo("食譜分析完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("recipe", req.Recipe.Title),
		zap.Float64("match", analysis.MatchPercentage),
		zap.Bool("can_make", analysis.CanMake),
	)
	c.JSON(http.StatusOK, analysis)
}

// HandleRank 排名請求中附帶的食譜
func (h *Handler) HandleRank(c *gin.Context) {
	var req RankRequest
	if !bindJSON(c, &req) {
		return
	}

	threshold := h.defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	opts := recipeService.RankOptions{
		Threshold: threshold,
		Category:  req.Category,
		SortBy:    recipeService.SortMode(req.SortBy),
		Dietary:   req.Dietary,
	}

	ranked, err := h.suggestions.Rank(c.Request.Context(), req.Recipes, req.Inventory, opts)
	if err != nil {
		h.fail(c, "食譜排名失敗", err)
		return
	}
	c.JSON(http.StatusOK, RankResponse{Recipes: nonNil(ranked), Count: len(ranked)})
}

// HandleSuggestions 從資料服務載入資料並排名
func (h *Handler) HandleSuggestions(c *gin.Context) {
	opts, err := h.optionsFromQuery(c)
	if err != nil {
		h.fail(c, "查詢參數無效", err)
		return
	}

	ranked, err := h.suggestions.Suggest(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, "食譜推薦失敗", err)
		return
	}

	common.LogInfo("食譜推薦成功",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("count", len(ranked)),
	)
	c.JSON(http.StatusOK, RankResponse{Recipes: nonNil(ranked), Count: len(ranked)})
}

func (h *Handler) optionsFromQuery(c *gin.Context) (recipeService.RankOptions, error) {
	opts := recipeService.RankOptions{
		Threshold: h.defaultThreshold,
		Category:  c.Query("category"),
		SortBy:    recipeService.SortMode(c.Query("sortBy")),
		Dietary: recipeService.DietaryFilter{
			Include: splitList(c.Query("include")),
			Exclude: splitList(c.Query("exclude")),
			Avoid:   splitList(c.Query("avoid")),
		},
	}
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, common.ErrInvalidThreshold.Wrap(fmt.Errorf("threshold %q: %w", raw, err))
		}
		opts.Threshold = v
	}
	return opts, nil
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	ce := common.AsCustomError(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", ce.Code),
		zap.String("request_id", requestid.Get(c)),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError(msg, fields...)
	} else {
		common.LogWarn(msg, fields...)
	}
	common.WriteError(c, err)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nonNil(ranked []recipeService.ScoredRecipe) []recipeService.ScoredRecipe {
	if ranked == nil {
		return []recipeService.ScoredRecipe{}
	}
	return ranked
}
