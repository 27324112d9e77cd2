package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 外部庫存/食譜資料服務客戶端
type Client struct {
	client *resty.Client
}

type inventoryResponse struct {
	Inventory []common.InventoryItem `json:"inventory"`
}

type recipesResponse struct {
	Recipes []common.Recipe `json:"recipes"`
}

// NewClient 建立資料服務客戶端
func NewClient(cfg config.CatalogConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &Client{client: client}
}

// Inventory 取得使用者庫存
func (c *Client) Inventory(ctx context.Context) ([]common.InventoryItem, error) {
	var out inventoryResponse
	if err := c.get(ctx, "/inventory", &out); err != nil {
		return nil, err
	}
	return out.Inventory, nil
}

// Recipes 取得食譜目錄；不合法的食譜略過並記錄
func (c *Client) Recipes(ctx context.Context) ([]common.Recipe, error) {
	var out recipesResponse
	if err := c.get(ctx, "/recipes", &out); err != nil {
		return nil, err
	}

	valid := make([]common.Recipe, 0, len(out.Recipes))
	for _, r := range out.Recipes {
		if err := common.ValidateStruct(r); err != nil {
			common.LogWarn("略過不合法的食譜",
				zap.String("id", r.ID),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, r)
	}
	return valid, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		err = common.ErrCatalogUnavailable.Wrap(fmt.Errorf("request %s: %w", path, err))
		common.LogCatalogCall(path, time.Since(start), err)
		return err
	}

	if resp.StatusCode() != http.StatusOK {
		err = common.ErrCatalogUnavailable.Wrap(fmt.Errorf("%s returned %d: %s", path, resp.StatusCode(), resp.String()))
		common.LogCatalogCall(path, time.Since(start), err)
		return err
	}

	if err := common.ParseJSONBytes(resp.Body(), out); err != nil {
		err = common.ErrCatalogUnavailable.Wrap(fmt.Errorf("decode %s: %w", path, err))
		common.LogCatalogCall(path, time.Since(start), err)
		return err
	}

	common.LogCatalogCall(path, time.Since(start), nil)
	return nil
}
