package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile_Defaults(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/RAW_recipes.csv", cfg.Corpus.Path)
	assert.Equal(t, 5, cfg.Recommend.DefaultTopN)
	assert.Equal(t, 10, cfg.Recommend.MaxTopN)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
}

func TestLoadConfigFile_EnvAliases(t *testing.T) {
	t.Setenv("CORPUS_PATH", "https://example.com/recipes.csv")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_RECOMMEND_MAX_TOP_N", "25")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfigFile("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/recipes.csv", cfg.Corpus.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.Recommend.MaxTopN)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadConfigFile_DotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("REDIS_ADDR=redis:6380\nCACHE_BACKEND=redis\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("CACHE_BACKEND")
	})

	cfg, err := LoadConfigFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Corpus:    CorpusConfig{Path: "recipes.csv"},
			Recommend: RecommendConfig{DefaultTopN: 5, MaxTopN: 10},
			Cache: CacheConfig{
				Enabled: true, Backend: CacheBackendMemory,
				MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Minute,
			},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
		}
	}
	require.NoError(t, validateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"corpus path", func(c *Config) { c.Corpus.Path = " " }},
		{"default top_n", func(c *Config) { c.Recommend.DefaultTopN = 0 }},
		{"max below default", func(c *Config) { c.Recommend.MaxTopN = 3 }},
		{"cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"redis addr", func(c *Config) { c.Cache.Backend = CacheBackendRedis; c.Redis.Addr = "" }},
		{"rate limit", func(c *Config) { c.RateLimit.Requests = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}
