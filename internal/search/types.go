package search

import (
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Graph is the read-only view of a road network the searches run over.
// It must not be mutated while a search is in flight.
type Graph[NodeType comparable] interface {
	// Neighbors returns every node reachable from node through one outgoing edge, each once,
	// in a stable order.
	Neighbors(node NodeType) []NodeType
	// Edges returns all parallel edges from one node to another.
	Edges(from, to NodeType) []Edge
	// Coordinates returns the position of node, or false if the node has none.
	Coordinates(node NodeType) (models.Coordinates, bool)
}

// Edge is one connection between two nodes. HasWeight is false when the source data carried no
// weight attribute, in which case the resolver substitutes its default.
type Edge struct {
	Weight    float64
	HasWeight bool
}

// Weighted returns an edge carrying weight w.
func Weighted(w float64) Edge {
	return Edge{Weight: w, HasWeight: true}
}

// Destinations is the set of acceptable goal nodes for one search call.
type Destinations[NodeType comparable] map[NodeType]struct{}

// NewDestinations builds a destination set from ids. Duplicates collapse.
func NewDestinations[NodeType comparable](ids ...NodeType) Destinations[NodeType] {
	dests := make(Destinations[NodeType], len(ids))
	for _, id := range ids {
		dests[id] = struct{}{}
	}

	return dests
}

// Contains reports whether node is an acceptable destination.
func (d Destinations[NodeType]) Contains(node NodeType) bool {
	_, ok := d[node]
	return ok
}

// Result contains the outcome of a successful search.
type Result[NodeType comparable] struct {
	Path          []NodeType    // Source first, reached destination last.
	Destination   NodeType      // The destination the search settled on.
	TotalCost     float64       // Sum of resolved edge costs along Path.
	Hops          int           // Number of edges in Path.
	ExpandedNodes int           // Nodes taken off the frontier and expanded.
	Elapsed       time.Duration // Wall time of the call.
}

// Options defines parameters for a search call.
type Options struct {
	Resolver      EdgeCostResolver
	Heuristic     Heuristic
	MaxExpansions int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithEdgeCostResolver sets the resolver used to cost every traversed edge.
func WithEdgeCostResolver(resolver EdgeCostResolver) Option {
	return func(options *Options) { options.Resolver = resolver }
}

// WithHeuristic replaces the great-circle estimate used by AStar. BFS ignores it.
// Passing ZeroHeuristic turns AStar into a uniform-cost search; a nil heuristic is ignored.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) {
		if heuristic != nil {
			options.Heuristic = heuristic
		}
	}
}

// WithUniformCost makes AStar order states by path cost alone, without any estimate. Node
// coordinates are never read, so it also runs on graphs that carry none.
func WithUniformCost() Option {
	return func(options *Options) { options.Heuristic = nil }
}

// WithMaxExpansions bounds the number of node expansions. Zero or a negative value means unbounded.
func WithMaxExpansions(limit int) Option {
	return func(options *Options) { options.MaxExpansions = limit }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Resolver:  EdgeCostResolver{DefaultWeight: DefaultEdgeWeight},
		Heuristic: Haversine,
	}
	for _, option := range options {
		option(&searchOptions)
	}

	return searchOptions
}
