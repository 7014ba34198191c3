package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/hermes/internal/bootstrap"
	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/UnknownOlympus/hermes/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var errOriginFlags = errors.New("one of --address, --lat with --lon or --random-origin is required")

// router is what the commands need from the routing service.
type router interface {
	Route(ctx context.Context, query models.RouteQuery) (*models.Route, error)
	Compare(ctx context.Context, query models.RouteQuery) (*models.Comparison, error)
	RandomOrigin(seed uint64) (int64, error)
}

// routerLoader builds a router and returns a function releasing its resources.
type routerLoader func(ctx context.Context) (router, func(), error)

type queryFlags struct {
	address      string
	lat, lon     float64
	randomOrigin bool
	seed         uint64
	bloodType    string
	algorithm    string
}

func newRootCmd(load routerLoader) *cobra.Command {
	root := &cobra.Command{
		Use:          "hermesctl",
		Short:        "Find the nearest blood center able to supply a recipient",
		SilenceUsage: true,
	}
	root.AddCommand(newRouteCmd(load), newCompareCmd(load))

	return root
}

func newRouteCmd(load routerLoader) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Route a recipient to the nearest eligible blood center",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := flags.query(cmd)
			if err != nil {
				return err
			}
			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			if err = flags.pickOrigin(svc, &query); err != nil {
				return err
			}

			route, err := svc.Route(cmd.Context(), query)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), route)
		},
	}
	flags.register(cmd, true)

	return cmd
}

func newCompareCmd(load routerLoader) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run A* and BFS on the same query and print both routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := flags.query(cmd)
			if err != nil {
				return err
			}
			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			if err = flags.pickOrigin(svc, &query); err != nil {
				return err
			}

			comparison, err := svc.Compare(cmd.Context(), query)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), comparison)
		},
	}
	flags.register(cmd, false)

	return cmd
}

func (f *queryFlags) register(cmd *cobra.Command, withAlgorithm bool) {
	cmd.Flags().StringVar(&f.address, "address", "", "requester address to geocode")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "requester latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "requester longitude")
	cmd.Flags().BoolVar(&f.randomOrigin, "random-origin", false, "start from a random network node")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for --random-origin, 0 picks a different node every run")
	cmd.Flags().StringVar(&f.bloodType, "blood-type", "", "recipient blood type, e.g. AB+")
	_ = cmd.MarkFlagRequired("blood-type")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	cmd.MarkFlagsMutuallyExclusive("address", "lat", "random-origin")
	if withAlgorithm {
		cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "astar or bfs, defaults to HERMES_ALGORITHM")
	}
}

func (f *queryFlags) query(cmd *cobra.Command) (models.RouteQuery, error) {
	query := models.RouteQuery{
		Address:   f.address,
		BloodType: f.bloodType,
		Algorithm: models.Algorithm(f.algorithm),
	}
	if cmd.Flags().Changed("lat") {
		query.Coordinates = &models.Coordinates{Latitude: f.lat, Longitude: f.lon}
	}
	if query.Coordinates == nil && query.Address == "" && !f.randomOrigin {
		return models.RouteQuery{}, errOriginFlags
	}

	return query, nil
}

// pickOrigin starts the query from a random network node when --random-origin is set.
func (f *queryFlags) pickOrigin(svc router, query *models.RouteQuery) error {
	if !f.randomOrigin {
		return nil
	}
	node, err := svc.RandomOrigin(f.seed)
	if err != nil {
		return err
	}
	query.OriginNode = &node

	return nil
}

func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return nil
}

// loadRouter reads the configuration and the routing data the same way the service does.
func loadRouter(ctx context.Context) (router, func(), error) {
	cfg := config.MustLoad()
	logger := bootstrap.SetupLogger(cfg.Env, os.Stderr)

	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	repo := repository.NewRepository(dtb, logger)

	network, err := bootstrap.LoadNetwork(ctx, repo, cfg.Routing)
	if err != nil {
		dtb.Close()
		return nil, nil, err
	}
	inventory, err := bootstrap.LoadInventory(ctx, logger, repo, network, cfg.Stock)
	if err != nil {
		dtb.Close()
		return nil, nil, err
	}
	geoProvider, cacheCloser, err := bootstrap.NewGeocoder(cfg, logger)
	if err != nil {
		dtb.Close()
		return nil, nil, err
	}

	svc := service.NewRoutingService(logger, repo, geoProvider, network, inventory,
		metrics.NewMetrics(prometheus.NewRegistry()), bootstrap.ServiceSettings(cfg))
	release := func() {
		_ = cacheCloser.Close()
		dtb.Close()
	}

	return svc, release, nil
}
