package search_test

import (
	"cmp"
	"sort"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/search"
)

// mapGraph is a small directed multigraph used by the search tests.
type mapGraph[N cmp.Ordered] struct {
	coords map[N]models.Coordinates
	edges  map[N]map[N][]search.Edge
}

func newMapGraph[N cmp.Ordered]() *mapGraph[N] {
	return &mapGraph[N]{
		coords: make(map[N]models.Coordinates),
		edges:  make(map[N]map[N][]search.Edge),
	}
}

func (g *mapGraph[N]) node(id N, lat, lon float64) *mapGraph[N] {
	g.coords[id] = models.Coordinates{Latitude: lat, Longitude: lon}
	return g
}

func (g *mapGraph[N]) arc(from, to N, edges ...search.Edge) *mapGraph[N] {
	if g.edges[from] == nil {
		g.edges[from] = make(map[N][]search.Edge)
	}
	g.edges[from][to] = append(g.edges[from][to], edges...)

	return g
}

func (g *mapGraph[N]) road(a, b N, weight float64) *mapGraph[N] {
	return g.arc(a, b, search.Weighted(weight)).arc(b, a, search.Weighted(weight))
}

func (g *mapGraph[N]) Neighbors(node N) []N {
	neighbors := make([]N, 0, len(g.edges[node]))
	for to := range g.edges[node] {
		neighbors = append(neighbors, to)
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })

	return neighbors
}

func (g *mapGraph[N]) Edges(from, to N) []search.Edge {
	return g.edges[from][to]
}

func (g *mapGraph[N]) Coordinates(node N) (models.Coordinates, bool) {
	coords, ok := g.coords[node]
	return coords, ok
}

// exampleGraph is the A-B-C-D network: A-B=2, B-C=2, A-C=5, C-D=1, with every node placed within a
// metre of the others so the geodesic estimate stays below the remaining road cost.
func exampleGraph() *mapGraph[string] {
	return newMapGraph[string]().
		node("A", 0, 0).
		node("B", 0, 0.000001).
		node("C", 0, 0.000002).
		node("D", 0, 0.000003).
		road("A", "B", 2).
		road("B", "C", 2).
		road("A", "C", 5).
		road("C", "D", 1)
}
