package graph

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/search"
)

// DefaultWeightKey is the edge attribute read as weight unless WithWeightKey says otherwise.
const DefaultWeightKey = "length"

// Ingestion errors.
var (
	ErrInvalidCoordinates = errors.New("invalid node coordinates")
	ErrInvalidWeight      = errors.New("invalid edge weight")
)

// Builder ingests raw nodes and edges and produces a RoadNetwork. Attribute lookups and validation
// happen here once, so searches only ever see structured edges.
type Builder struct {
	weightKey string
	directed  bool
	coords    map[NodeID]models.Coordinates
	adjacency map[NodeID]map[NodeID][]search.Edge
	edgeCount int
}

// Option configures a Builder.
type Option func(*Builder)

// WithWeightKey selects the edge attribute used as weight, e.g. "length" or "weight".
func WithWeightKey(key string) Option {
	return func(b *Builder) { b.weightKey = key }
}

// Undirected stores every added edge in both directions.
func Undirected() Option {
	return func(b *Builder) { b.directed = false }
}

// NewBuilder returns an empty directed builder reading DefaultWeightKey.
func NewBuilder(options ...Option) *Builder {
	builder := &Builder{
		weightKey: DefaultWeightKey,
		directed:  true,
		coords:    make(map[NodeID]models.Coordinates),
		adjacency: make(map[NodeID]map[NodeID][]search.Edge),
	}
	for _, option := range options {
		option(builder)
	}

	return builder
}

// WeightKey returns the attribute read as edge weight.
func (b *Builder) WeightKey() string {
	return b.weightKey
}

// AddNode declares a node with its position. Declaring a node twice overwrites its position.
func (b *Builder) AddNode(id NodeID, coords models.Coordinates) error {
	if !coords.Valid() {
		return fmt.Errorf("%w: node %d at (%v, %v)", ErrInvalidCoordinates, id, coords.Latitude, coords.Longitude)
	}
	b.coords[id] = coords
	b.ensure(id)

	return nil
}

// AddEdge adds one edge between two nodes. The weight is read from attrs under the configured key;
// an edge without it is kept and costed by the search default. Endpoints that were not declared
// become nodes without coordinates.
func (b *Builder) AddEdge(from, to NodeID, attrs map[string]float64) error {
	edge := search.Edge{}
	if weight, ok := attrs[b.weightKey]; ok {
		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return fmt.Errorf("%w: edge %d -> %d has %s=%v", ErrInvalidWeight, from, to, b.weightKey, weight)
		}
		edge = search.Weighted(weight)
	}

	b.link(from, to, edge)
	if !b.directed && from != to {
		b.link(to, from, edge)
	}

	return nil
}

// Build freezes the ingested data. The builder must not be used afterwards.
func (b *Builder) Build() *RoadNetwork {
	network := &RoadNetwork{
		directed:  b.directed,
		coords:    b.coords,
		nodes:     make([]NodeID, 0, len(b.adjacency)),
		adjacency: b.adjacency,
		neighbors: make(map[NodeID][]NodeID, len(b.adjacency)),
		edgeCount: b.edgeCount,
	}

	for id, targets := range b.adjacency {
		network.nodes = append(network.nodes, id)
		neighbors := make([]NodeID, 0, len(targets))
		for to := range targets {
			neighbors = append(neighbors, to)
		}
		slices.Sort(neighbors)
		network.neighbors[id] = neighbors
	}
	slices.Sort(network.nodes)

	return network
}

func (b *Builder) ensure(id NodeID) {
	if _, ok := b.adjacency[id]; !ok {
		b.adjacency[id] = make(map[NodeID][]search.Edge)
	}
}

func (b *Builder) link(from, to NodeID, edge search.Edge) {
	b.ensure(from)
	b.ensure(to)
	b.adjacency[from][to] = append(b.adjacency[from][to], edge)
	b.edgeCount++
}
