package graph

import (
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/search"
	"github.com/brianvoe/gofakeit/v7"
)

// NodeID identifies a road network node, usually an OpenStreetMap node id.
type NodeID = int64

// RoadNetwork is an immutable road graph. It implements search.Graph and is safe for concurrent
// readers once built.
type RoadNetwork struct {
	directed  bool
	coords    map[NodeID]models.Coordinates
	nodes     []NodeID
	adjacency map[NodeID]map[NodeID][]search.Edge
	neighbors map[NodeID][]NodeID
	edgeCount int
}

var _ search.Graph[NodeID] = (*RoadNetwork)(nil)

// Neighbors returns the targets of the outgoing edges of node in ascending id order.
func (n *RoadNetwork) Neighbors(node NodeID) []NodeID {
	return n.neighbors[node]
}

// Edges returns the parallel edges from one node to another.
func (n *RoadNetwork) Edges(from, to NodeID) []search.Edge {
	return n.adjacency[from][to]
}

// Coordinates returns the position of node, or false when the node has none.
func (n *RoadNetwork) Coordinates(node NodeID) (models.Coordinates, bool) {
	coords, ok := n.coords[node]
	return coords, ok
}

// Has reports whether node belongs to the network.
func (n *RoadNetwork) Has(node NodeID) bool {
	_, ok := n.adjacency[node]
	return ok
}

// Directed reports whether edges were stored one way only.
func (n *RoadNetwork) Directed() bool {
	return n.directed
}

// NodeCount returns the number of nodes.
func (n *RoadNetwork) NodeCount() int {
	return len(n.nodes)
}

// EdgeCount returns the number of stored directed edges, parallel ones included.
func (n *RoadNetwork) EdgeCount() int {
	return n.edgeCount
}

// Nodes returns every node id in ascending order. The slice must not be modified.
func (n *RoadNetwork) Nodes() []NodeID {
	return n.nodes
}

// NearestNode snaps a position onto the network: it returns the node with coordinates closest to
// coords by great-circle distance, preferring the smaller id on ties.
func (n *RoadNetwork) NearestNode(coords models.Coordinates) (NodeID, bool) {
	var (
		best     NodeID
		bestDist float64
		found    bool
	)
	for _, id := range n.nodes {
		nodeCoords, ok := n.coords[id]
		if !ok {
			continue
		}
		dist := search.Haversine(coords, nodeCoords)
		if !found || dist < bestDist {
			best, bestDist, found = id, dist, true
		}
	}

	return best, found
}

// RandomNodes picks count distinct nodes using a generator seeded with seed; a zero seed draws
// from a random source. It returns fewer nodes when the network is smaller than count and nil when
// count is not positive.
func (n *RoadNetwork) RandomNodes(count int, seed uint64) []NodeID {
	if count <= 0 || len(n.nodes) == 0 {
		return nil
	}

	faker := gofakeit.New(seed)
	picked := make([]NodeID, len(n.nodes))
	copy(picked, n.nodes)
	for i := len(picked) - 1; i > 0; i-- {
		j := faker.Number(0, i)
		picked[i], picked[j] = picked[j], picked[i]
	}

	return picked[:min(count, len(picked))]
}
