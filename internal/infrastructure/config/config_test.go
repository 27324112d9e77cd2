package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 0.5, cfg.Matcher.PartialRatio)
	assert.Equal(t, 0.6, cfg.Matcher.KeywordRatio)
	assert.Equal(t, 2, cfg.Matcher.KeywordMinTokens)
	assert.Equal(t, 0.5, cfg.Matcher.DefaultThreshold)
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = 0 }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheBackendRedis; c.Cache.RedisAddr = "" }},
		{"no workers", func(c *Config) { c.Queue.Workers = 0 }},
		{"partial ratio out of range", func(c *Config) { c.Matcher.PartialRatio = 1.5 }},
		{"keyword ratio zero", func(c *Config) { c.Matcher.KeywordRatio = 0 }},
		{"threshold negative", func(c *Config) { c.Matcher.DefaultThreshold = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("APP_MATCHER_KEYWORD_RATIO", "0.7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.7, cfg.Matcher.KeywordRatio)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
