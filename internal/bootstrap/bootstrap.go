// Package bootstrap assembles the pieces both binaries share: logging, the road network, the
// facility inventory and the geocoder.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/UnknownOlympus/hermes/internal/bloodbank"
	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/geocoding"
	"github.com/UnknownOlympus/hermes/internal/graph"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/UnknownOlympus/hermes/internal/service"
	"github.com/redis/go-redis/v9"
)

// Constants for different environment types.
const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"
)

// SetupLogger initializes and returns a logger based on the environment provided.
func SetupLogger(env string, out io.Writer) *slog.Logger {
	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case EnvLocal:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
	case EnvDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case EnvProd:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn, ReplaceAttr: dropTime}))
	default:
		log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: dropTime}))
		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
		return log
	}
}

// LoadNetwork reads the road network from the repository.
func LoadNetwork(ctx context.Context, repo repository.Interface, routing config.RoutingConfig) (*graph.RoadNetwork, error) {
	opts := []graph.Option{graph.WithWeightKey(routing.WeightKey)}
	if !routing.Directed {
		opts = append(opts, graph.Undirected())
	}

	builder := graph.NewBuilder(opts...)
	if err := repo.LoadRoadNetwork(ctx, builder); err != nil {
		return nil, fmt.Errorf("failed to load road network: %w", err)
	}

	return builder.Build(), nil
}

// LoadInventory reads the facilities and, when configured, replaces their stock with random draws.
// Facilities placed on nodes missing from network are dropped with a warning.
func LoadInventory(
	ctx context.Context,
	log *slog.Logger,
	repo repository.Interface,
	network *graph.RoadNetwork,
	stock config.StockConfig,
) (*bloodbank.Inventory, error) {
	facilities, err := repo.FetchFacilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load facilities: %w", err)
	}

	placed := make([]bloodbank.Facility, 0, len(facilities))
	for _, facility := range facilities {
		if !network.Has(facility.NodeID) {
			log.WarnContext(ctx, "Facility is not on the road network", "node", facility.NodeID, "name", facility.Name)
			continue
		}
		placed = append(placed, facility)
	}

	if stock.Random {
		placed = bloodbank.WithRandomStock(stock.Seed, placed)
		log.InfoContext(ctx, "Facility stock generated randomly", "seed", stock.Seed)
	}

	return bloodbank.NewInventory(placed), nil
}

// NewGeocoder builds the configured provider and puts a Redis cache in front of it when an
// address is configured. The returned closer releases the cache connection.
func NewGeocoder(cfg *config.Config, log *slog.Logger) (geocoding.Provider, io.Closer, error) {
	const googleRateLimit = 50

	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Provider.Type),
		APIKey:    cfg.Provider.APIKey,
		RateLimit: googleRateLimit / cfg.Workers,
		Language:  cfg.Provider.Language,
		BaseURL:   cfg.Provider.BaseURL,
		Logger:    log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create geocoding provider: %w", err)
	}

	if cfg.Redis.Addr == "" {
		return provider, noopCloser{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cache := geocoding.NewRedisCache(client, cfg.Redis.TTL)

	return geocoding.NewCachedProvider(provider, cache, log), client, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// ServiceSettings maps configuration onto routing service settings.
func ServiceSettings(cfg *config.Config) service.Settings {
	defaultWeight := cfg.Routing.DefaultEdgeWeight

	return service.Settings{
		Algorithm:         models.Algorithm(cfg.Routing.Algorithm),
		DefaultEdgeWeight: &defaultWeight,
		MaxExpansions:     cfg.Routing.MaxExpansions,
		Workers:           cfg.Workers,
		PollInterval:      cfg.Interval,
		AddressPrefix:     cfg.AddrPrefix,
	}
}
