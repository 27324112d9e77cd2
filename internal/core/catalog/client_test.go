package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.CatalogConfig{BaseURL: srv.URL, APIKey: "test-key-123456", Timeout: 2 * time.Second})
}

func TestInventory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory", r.URL.Path)
		assert.Equal(t, "Bearer test-key-123456", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"inventory":[{"name":"Ground Beef","brand":"Kroger"},{"name":"Broccoli"}]}`))
	})

	items, err := c.Inventory(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Kroger", items[0].Brand)
}

func TestRecipesSkipsInvalid(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recipes":[
			{"id":"1","title":"Tacos","ingredients":[{"name":"ground beef"}]},
			{"id":"2","title":"","ingredients":[]},
			{"id":"3","title":"Pie","ingredients":[{"name":""}]}
		]}`))
	})

	recipes, err := c.Recipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tacos", recipes[0].Title)
}

func TestUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Inventory(context.Background())
	require.Error(t, err)
	assert.Equal(t, common.ErrCatalogUnavailable.Code, common.AsCustomError(err).Code)
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recipes":`))
	})

	_, err := c.Recipes(context.Background())
	require.Error(t, err)
	assert.Equal(t, common.ErrCatalogUnavailable.Code, common.AsCustomError(err).Code)
}
