package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("HERMES_ENV", "local")
	t.Setenv("HERMES_INTERVAL", "10m")
	t.Setenv("HERMES_PROVIDER_TYPE", "google")
	t.Setenv("HERMES_PROVIDER_KEY", "testAPIKey")
	t.Setenv("HERMES_ALGORITHM", "bfs")
	t.Setenv("HERMES_MAX_EXPANSIONS", "5000")
	t.Setenv("HERMES_DIRECTED", "false")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, config.PostgresConfig{
		Host: "testHost", Port: "12345", User: "admin", Password: "adminpass", Name: "testName",
	}, cfg.Database)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "google", cfg.Provider.Type)
	assert.Equal(t, "testAPIKey", cfg.Provider.APIKey)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, config.RoutingConfig{
		Algorithm: "bfs", WeightKey: "length", DefaultEdgeWeight: 1, MaxExpansions: 5000, Directed: false,
	}, cfg.Routing)
	assert.Equal(t, config.RedisConfig{Addr: "localhost:6379", TTL: 24 * time.Hour}, cfg.Redis)
}

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "nominatim", cfg.Provider.Type)
	assert.Equal(t, "astar", cfg.Routing.Algorithm)
	assert.True(t, cfg.Routing.Directed)
	assert.InDelta(t, 1.0, cfg.Routing.DefaultEdgeWeight, 0)
	assert.Equal(t, config.StockConfig{}, cfg.Stock)
	assert.Equal(t, 30*time.Second, cfg.Interval)
}

func Test_MustLoadFromDotEnv(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")
	filet.File(t, filepath.Join(dir, ".env"), "HERMES_WEIGHT_KEY=weight\nHERMES_RANDOM_STOCK=true\nHERMES_STOCK_SEED=42\n")
	t.Chdir(dir)
	// Registered so the values godotenv writes are restored after the test.
	for _, key := range []string{"HERMES_WEIGHT_KEY", "HERMES_RANDOM_STOCK", "HERMES_STOCK_SEED"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("HERMES_STOCK_SEED", "7")

	cfg := config.MustLoad()

	assert.Equal(t, "weight", cfg.Routing.WeightKey)
	assert.Equal(t, config.StockConfig{Random: true, Seed: 7}, cfg.Stock, "environment wins over .env")
}

func TestMustLoad_Errors(t *testing.T) {
	tests := []struct {
		key   string
		value string
		panic string
	}{
		{"HERMES_INTERVAL", "error_value", "failed to parse interval from configuration"},
		{"HERMES_HEALTH_PORT", "error_value", "failed to parse port for monitoring server from configuration"},
		{"HERMES_WORKERS", "0", "failed to parse workers from configuration, must be a positive integer"},
		{"HERMES_ALGORITHM", "dijkstra", "unsupported routing algorithm in configuration, must be astar or bfs"},
		{
			"HERMES_DEFAULT_EDGE_WEIGHT", "-1",
			"failed to parse default edge weight from configuration, must be a non-negative number",
		},
		{"HERMES_MAX_EXPANSIONS", "-3", "failed to parse max expansions from configuration"},
		{"HERMES_DIRECTED", "sometimes", "failed to parse directed flag from configuration"},
		{"HERMES_RANDOM_STOCK", "maybe", "failed to parse random stock flag from configuration"},
		{"HERMES_STOCK_SEED", "seed", "failed to parse stock seed from configuration"},
		{"HERMES_GEOCODE_CACHE_TTL", "forever", "failed to parse geocode cache ttl from configuration"},
		{"REDIS_DB", "first", "failed to parse redis database index from configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			assert.PanicsWithValue(t, tt.panic, func() {
				config.MustLoad()
			})
		})
	}
}
