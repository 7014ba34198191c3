package search

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used by Haversine.
const EarthRadiusMeters = 6371000.0

// Heuristic estimates the remaining cost between two positions.
type Heuristic func(from, to models.Coordinates) float64

// Haversine returns the great-circle surface distance between two positions in meters.
//
// It is a lower bound of the remaining traversal cost only when edge weights are physical
// distances in meters. With any other cost unit AStar still terminates but its result is no
// longer guaranteed to be the cheapest.
func Haversine(from, to models.Coordinates) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// ZeroHeuristic always estimates zero remaining cost. It is still called with node positions, so
// every scored node needs coordinates; WithUniformCost drops that requirement.
func ZeroHeuristic(_, _ models.Coordinates) float64 {
	return 0
}

// goalEstimator scores nodes by the estimate to the closest destination.
// Destination positions are resolved once; every estimate scans all of them. A nil heuristic
// scores every node zero without reading positions.
type goalEstimator[NodeType comparable] struct {
	graph     Graph[NodeType]
	heuristic Heuristic
	goals     []models.Coordinates
}

func newGoalEstimator[NodeType comparable](
	graph Graph[NodeType],
	dests Destinations[NodeType],
	heuristic Heuristic,
) (*goalEstimator[NodeType], error) {
	if heuristic == nil {
		return &goalEstimator[NodeType]{graph: graph}, nil
	}

	goals := make([]models.Coordinates, 0, len(dests))
	for dest := range dests {
		coords, err := lookupCoordinates(graph, dest)
		if err != nil {
			return nil, err
		}
		goals = append(goals, coords)
	}

	return &goalEstimator[NodeType]{graph: graph, heuristic: heuristic, goals: goals}, nil
}

func (e *goalEstimator[NodeType]) estimate(node NodeType) (float64, error) {
	if e.heuristic == nil {
		return 0, nil
	}
	coords, err := lookupCoordinates(e.graph, node)
	if err != nil {
		return 0, err
	}

	best := math.Inf(1)
	for _, goal := range e.goals {
		if h := e.heuristic(coords, goal); h < best {
			best = h
		}
	}

	return best, nil
}

func lookupCoordinates[NodeType comparable](graph Graph[NodeType], node NodeType) (models.Coordinates, error) {
	coords, ok := graph.Coordinates(node)
	if !ok || !coords.Valid() {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrMissingCoordinates, node)
	}

	return coords, nil
}
