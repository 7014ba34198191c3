package search

import (
	"fmt"
	"math"
)

// DefaultEdgeWeight is the cost of an edge that carries no weight attribute.
//
// It is the only default in the system; the routing service passes the configured value through
// EdgeCostResolver so both searches cost edges identically.
const DefaultEdgeWeight = 1.0

// EdgeCostResolver reduces the parallel edges between two nodes to one effective cost.
type EdgeCostResolver struct {
	DefaultWeight float64 // Substituted for edges without a weight.
}

// Resolve returns the cheapest of the given parallel edges.
func (r EdgeCostResolver) Resolve(edges []Edge) (float64, error) {
	if len(edges) == 0 {
		return 0, ErrNoEdge
	}

	best := math.Inf(1)
	for _, edge := range edges {
		weight := r.DefaultWeight
		if edge.HasWeight {
			weight = edge.Weight
		}
		if weight < 0 {
			return 0, fmt.Errorf("%w: %v", ErrNegativeWeight, weight)
		}
		best = min(best, weight)
	}

	return best, nil
}

// EdgeCost resolves the effective cost of moving from one node to an adjacent one.
func EdgeCost[NodeType comparable](
	graph Graph[NodeType],
	resolver EdgeCostResolver,
	from, to NodeType,
) (float64, error) {
	cost, err := resolver.Resolve(graph.Edges(from, to))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve edge %v -> %v: %w", from, to, err)
	}

	return cost, nil
}
