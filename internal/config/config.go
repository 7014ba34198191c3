package config

import (
	"math"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the routing service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - Provider: Which geocoder resolves requester addresses.
// - Workers: The number of concurrent workers for processing route requests.
// - Interval: The duration between polls of the request queue.
// - Routing: Search and graph ingestion settings.
// - Stock: Where facility stock comes from.
// - Database: Configuration settings for the PostgreSQL database.
// - Redis: Optional geocode cache.
type Config struct {
	Env        string
	Port       int
	Provider   ProviderConfig
	Workers    int
	Interval   time.Duration
	AddrPrefix string // Address prefix for more accurate geocoding
	Routing    RoutingConfig
	Stock      StockConfig
	Database   PostgresConfig
	Redis      RedisConfig
}

// ProviderConfig selects and configures the geocoding provider.
type ProviderConfig struct {
	Type     string // google or nominatim
	APIKey   string
	Language string
	BaseURL  string // self-hosted Nominatim search endpoint
}

// RoutingConfig holds search settings.
type RoutingConfig struct {
	Algorithm         string  // astar or bfs
	WeightKey         string  // edge attribute read as weight
	DefaultEdgeWeight float64 // cost of an edge without the weight attribute
	MaxExpansions     int     // 0 means unbounded
	Directed          bool
}

// StockConfig chooses between stored and randomly generated facility stock.
type StockConfig struct {
	Random bool
	Seed   uint64
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RedisConfig configures the geocode cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

var defaults = map[string]string{
	"HERMES_ENV":                 "production",
	"HERMES_HEALTH_PORT":         "8080",
	"HERMES_PROVIDER_TYPE":       "nominatim",
	"HERMES_PROVIDER_LANGUAGE":   "en",
	"HERMES_WORKERS":             "4",
	"HERMES_INTERVAL":            "30s",
	"HERMES_ALGORITHM":           "astar",
	"HERMES_WEIGHT_KEY":          "length",
	"HERMES_DEFAULT_EDGE_WEIGHT": "1",
	"HERMES_MAX_EXPANSIONS":      "0",
	"HERMES_DIRECTED":            "true",
	"HERMES_RANDOM_STOCK":        "false",
	"HERMES_STOCK_SEED":          "0",
	"HERMES_GEOCODE_CACHE_TTL":   "24h",
	"DB_PORT":                    "5432",
	"REDIS_DB":                   "0",
}

// MustLoad reads a .env file when present, then the environment, and panics on malformed values.
// Variables already set in the environment win over the .env file.
func MustLoad() *Config {
	_ = godotenv.Load()

	env := viper.New()
	env.AutomaticEnv()
	for key, value := range defaults {
		env.SetDefault(key, value)
	}

	interval, err := time.ParseDuration(env.GetString("HERMES_INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(env.GetString("HERMES_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(env.GetString("HERMES_WORKERS"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	algorithm := env.GetString("HERMES_ALGORITHM")
	if algorithm != "astar" && algorithm != "bfs" {
		panic("unsupported routing algorithm in configuration, must be astar or bfs")
	}

	defaultWeight, err := strconv.ParseFloat(env.GetString("HERMES_DEFAULT_EDGE_WEIGHT"), 64)
	if err != nil || defaultWeight < 0 || math.IsInf(defaultWeight, 0) || math.IsNaN(defaultWeight) {
		panic("failed to parse default edge weight from configuration, must be a non-negative number")
	}

	maxExpansions, err := strconv.Atoi(env.GetString("HERMES_MAX_EXPANSIONS"))
	if err != nil || maxExpansions < 0 {
		panic("failed to parse max expansions from configuration")
	}

	directed, err := strconv.ParseBool(env.GetString("HERMES_DIRECTED"))
	if err != nil {
		panic("failed to parse directed flag from configuration")
	}

	randomStock, err := strconv.ParseBool(env.GetString("HERMES_RANDOM_STOCK"))
	if err != nil {
		panic("failed to parse random stock flag from configuration")
	}

	stockSeed, err := strconv.ParseUint(env.GetString("HERMES_STOCK_SEED"), 10, 64)
	if err != nil {
		panic("failed to parse stock seed from configuration")
	}

	cacheTTL, err := time.ParseDuration(env.GetString("HERMES_GEOCODE_CACHE_TTL"))
	if err != nil {
		panic("failed to parse geocode cache ttl from configuration")
	}

	redisDB, err := strconv.Atoi(env.GetString("REDIS_DB"))
	if err != nil {
		panic("failed to parse redis database index from configuration")
	}

	return &Config{
		Env:  env.GetString("HERMES_ENV"),
		Port: healthPort,
		Provider: ProviderConfig{
			Type:     env.GetString("HERMES_PROVIDER_TYPE"),
			APIKey:   env.GetString("HERMES_PROVIDER_KEY"),
			Language: env.GetString("HERMES_PROVIDER_LANGUAGE"),
			BaseURL:  env.GetString("HERMES_NOMINATIM_URL"),
		},
		Workers:    workers,
		Interval:   interval,
		AddrPrefix: env.GetString("HERMES_ADDRESS_PREFIX"),
		Routing: RoutingConfig{
			Algorithm:         algorithm,
			WeightKey:         env.GetString("HERMES_WEIGHT_KEY"),
			DefaultEdgeWeight: defaultWeight,
			MaxExpansions:     maxExpansions,
			Directed:          directed,
		},
		Stock: StockConfig{Random: randomStock, Seed: stockSeed},
		Database: PostgresConfig{
			Host:     env.GetString("DB_HOST"),
			Port:     env.GetString("DB_PORT"),
			User:     env.GetString("DB_USERNAME"),
			Password: env.GetString("DB_PASSWORD"),
			Name:     env.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     env.GetString("REDIS_ADDR"),
			Password: env.GetString("REDIS_PASSWORD"),
			DB:       redisDB,
			TTL:      cacheTTL,
		},
	}
}
