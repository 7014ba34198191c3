package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/hermes/internal/bloodbank"
	"github.com/UnknownOlympus/hermes/internal/geocoding"
	"github.com/UnknownOlympus/hermes/internal/graph"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/UnknownOlympus/hermes/internal/search"
	"golang.org/x/sync/errgroup"
)

// Errors returned by Route and Compare.
var (
	ErrNoEligibleFacility = errors.New("no facility holds compatible blood")
	ErrUnknownAlgorithm   = errors.New("unknown search algorithm")
	ErrNoOrigin           = errors.New("request has neither coordinates nor address")
	ErrOriginOffNetwork   = errors.New("origin cannot be placed on the road network")
)

// Settings tunes a RoutingService.
type Settings struct {
	Algorithm         models.Algorithm // used when a query names none
	DefaultEdgeWeight *float64         // cost of an unweighted edge, nil means search.DefaultEdgeWeight
	MaxExpansions     int
	Workers           int
	PollInterval      time.Duration
	BatchSize         int
	AddressPrefix     string // prepended to requester addresses for more accurate geocoding
}

// RoutingService finds the nearest facility able to supply a recipient, either on demand or by
// draining the queued route requests.
type RoutingService struct {
	log       *slog.Logger
	repo      repository.Interface
	provider  geocoding.Provider
	network   *graph.RoadNetwork
	inventory *bloodbank.Inventory
	metrics   *metrics.Metrics
	settings  Settings
}

// routePlan is everything both algorithms share for one query.
type routePlan struct {
	origin       models.Coordinates
	originNode   graph.NodeID
	destinations search.Destinations[graph.NodeID]
}

// NewRoutingService wires a service over an immutable network and inventory. repo may be nil when
// only Route and Compare are used.
func NewRoutingService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	network *graph.RoadNetwork,
	inventory *bloodbank.Inventory,
	metrics *metrics.Metrics,
	settings Settings,
) *RoutingService {
	if settings.Algorithm == "" {
		settings.Algorithm = models.AlgorithmAStar
	}
	if settings.DefaultEdgeWeight == nil {
		weight := search.DefaultEdgeWeight
		settings.DefaultEdgeWeight = &weight
	}
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.PollInterval <= 0 {
		settings.PollInterval = 30 * time.Second
	}
	if settings.BatchSize < 1 {
		settings.BatchSize = 100
	}

	return &RoutingService{
		log:       log,
		repo:      repo,
		provider:  provider,
		network:   network,
		inventory: inventory,
		metrics:   metrics,
		settings:  settings,
	}
}

// Route answers a single query with the algorithm it names, or the configured one.
func (rs *RoutingService) Route(ctx context.Context, query models.RouteQuery) (*models.Route, error) {
	algorithm := query.Algorithm
	if algorithm == "" {
		algorithm = rs.settings.Algorithm
	}
	if !algorithm.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	plan, err := rs.plan(ctx, query)
	if err != nil {
		return nil, err
	}

	return rs.search(ctx, plan, algorithm)
}

// Compare runs both algorithms concurrently on the same origin and destinations.
func (rs *RoutingService) Compare(ctx context.Context, query models.RouteQuery) (*models.Comparison, error) {
	plan, err := rs.plan(ctx, query)
	if err != nil {
		return nil, err
	}

	var comparison models.Comparison
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		route, errSearch := rs.search(groupCtx, plan, models.AlgorithmAStar)
		comparison.AStar = route
		return errSearch
	})
	group.Go(func() error {
		route, errSearch := rs.search(groupCtx, plan, models.AlgorithmBFS)
		comparison.BFS = route
		return errSearch
	})
	if err = group.Wait(); err != nil {
		return nil, err
	}

	return &comparison, nil
}

func (rs *RoutingService) plan(ctx context.Context, query models.RouteQuery) (*routePlan, error) {
	bloodType, err := bloodbank.ParseBloodType(query.BloodType)
	if err != nil {
		return nil, err
	}

	eligible := rs.inventory.EligibleFacilities(bloodType)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: recipient %s", ErrNoEligibleFacility, bloodType)
	}

	origin, originNode, err := rs.placeOrigin(ctx, query)
	if err != nil {
		return nil, err
	}
	rs.log.DebugContext(ctx, "Origin placed on network",
		"latitude", origin.Latitude, "longitude", origin.Longitude, "node", originNode,
		"eligible_facilities", len(eligible))

	return &routePlan{
		origin:       origin,
		originNode:   originNode,
		destinations: search.Destinations[graph.NodeID](eligible),
	}, nil
}

// placeOrigin returns the requester position and the network node the search starts from.
func (rs *RoutingService) placeOrigin(
	ctx context.Context,
	query models.RouteQuery,
) (models.Coordinates, graph.NodeID, error) {
	if query.OriginNode != nil {
		node := *query.OriginNode
		if !rs.network.Has(node) {
			return models.Coordinates{}, 0, fmt.Errorf("%w: unknown node %d", ErrOriginOffNetwork, node)
		}
		coords, _ := rs.network.Coordinates(node)
		return coords, node, nil
	}

	origin, err := rs.resolveOrigin(ctx, query)
	if err != nil {
		return models.Coordinates{}, 0, err
	}
	node, ok := rs.network.NearestNode(origin)
	if !ok {
		return models.Coordinates{}, 0, ErrOriginOffNetwork
	}

	return origin, node, nil
}

// RandomOrigin picks a network node to start from, reproducibly for a non-zero seed.
func (rs *RoutingService) RandomOrigin(seed uint64) (graph.NodeID, error) {
	nodes := rs.network.RandomNodes(1, seed)
	if len(nodes) == 0 {
		return 0, fmt.Errorf("%w: network is empty", ErrOriginOffNetwork)
	}

	return nodes[0], nil
}

func (rs *RoutingService) resolveOrigin(ctx context.Context, query models.RouteQuery) (models.Coordinates, error) {
	if query.Coordinates != nil {
		if !query.Coordinates.Valid() {
			return models.Coordinates{}, fmt.Errorf("%w: (%v, %v)",
				geocoding.ErrInvalidCoordinates, query.Coordinates.Latitude, query.Coordinates.Longitude)
		}
		return *query.Coordinates, nil
	}

	if strings.TrimSpace(query.Address) == "" {
		return models.Coordinates{}, ErrNoOrigin
	}

	coords, err := rs.provider.Geocode(ctx, rs.settings.AddressPrefix+query.Address)
	if err != nil {
		rs.metrics.GeocoderErrors.Inc()
		return models.Coordinates{}, fmt.Errorf("failed to geocode requester address: %w", err)
	}

	return *coords, nil
}

func (rs *RoutingService) search(
	ctx context.Context,
	plan *routePlan,
	algorithm models.Algorithm,
) (*models.Route, error) {
	resolver := search.EdgeCostResolver{DefaultWeight: *rs.settings.DefaultEdgeWeight}
	opts := []search.Option{
		search.WithEdgeCostResolver(resolver),
		search.WithMaxExpansions(rs.settings.MaxExpansions),
	}

	var (
		result search.Result[graph.NodeID]
		err    error
	)
	switch algorithm {
	case models.AlgorithmAStar:
		result, err = search.AStar(ctx, rs.network, plan.originNode, plan.destinations, opts...)
	case models.AlgorithmBFS:
		result, err = search.BFS(ctx, rs.network, plan.originNode, plan.destinations, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("%s search from node %d failed: %w", algorithm, plan.originNode, err)
	}

	rs.metrics.SearchSeconds.WithLabelValues(string(algorithm)).Observe(result.Elapsed.Seconds())
	rs.metrics.ExpandedNodes.WithLabelValues(string(algorithm)).Observe(float64(result.ExpandedNodes))

	distance, err := search.PathCost(rs.network, resolver, result.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to measure route: %w", err)
	}

	facility, _ := rs.inventory.Facility(result.Destination)

	return &models.Route{
		Algorithm:      algorithm,
		Origin:         plan.origin,
		OriginNode:     plan.originNode,
		FacilityNode:   result.Destination,
		FacilityName:   facility.Name,
		Path:           result.Path,
		DistanceMeters: distance,
		Hops:           result.Hops,
		NodesTraversed: len(result.Path),
		ExpandedNodes:  result.ExpandedNodes,
		Duration:       result.Elapsed,
	}, nil
}
