package pantry

import (
	"net/http"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/meal"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Request 以庫存為輸入的請求
type Request struct {
	Inventory []common.InventoryItem `json:"inventory" binding:"required"`
}

// CategorizeResponse 分類結果
type CategorizeResponse struct {
	Categories    map[string][]common.InventoryItem `json:"categories"`
	Uncategorized []string                          `json:"uncategorized"`
	Skipped       int                               `json:"skipped"`
}

// MealsResponse 餐點建議
type MealsResponse struct {
	Suggestions []meal.Suggestion `json:"suggestions"`
	Count       int               `json:"count"`
}

// Handler 庫存分類與餐點建議
type Handler struct {
	classifier *inventory.Classifier
	meals      *meal.Engine
}

// NewHandler 建立處理程序
func NewHandler(classifier *inventory.Classifier, meals *meal.Engine) *Handler {
	return &Handler{classifier: classifier, meals: meals}
}

func bindInventory(c *gin.Context) (*Request, bool) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return nil, false
	}
	return &req, true
}

// HandleCategorize 將庫存分到各類別
func (h *Handler) HandleCategorize(c *gin.Context) {
	req, ok := bindInventory(c)
	if !ok {
		return
	}

	res := h.classifier.Run(req.Inventory)
	uncategorized := make([]string, 0, len(res.Uncategorized))
	for _, item := range res.Uncategorized {
		uncategorized = append(uncategorized, item.Label())
	}

	common.LogInfo("庫存分類完成",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("items", len(req.Inventory)),
		zap.Int("categories", len(res.Buckets)),
		zap.Int("uncategorized", len(uncategorized)),
	)

	c.JSON(http.StatusOK, CategorizeResponse{
		Categories:    res.Buckets,
		Uncategorized: uncategorized,
		Skipped:       res.Skipped,
	})
}

// HandleMealSuggestions 依庫存組合餐點
func (h *Handler) HandleMealSuggestions(c *gin.Context) {
	req, ok := bindInventory(c)
	if !ok {
		return
	}

	suggestions := h.meals.GenerateMealSuggestions(req.Inventory)
	if suggestions == nil {
		suggestions = []meal.Suggestion{}
	}

	common.LogInfo("餐點建議完成",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("items", len(req.Inventory)),
		zap.Int("suggestions", len(suggestions)),
	)

	c.JSON(http.StatusOK, MealsResponse{Suggestions: suggestions, Count: len(suggestions)})
}
