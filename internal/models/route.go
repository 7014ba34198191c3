package models

import "time"

// Algorithm names a search strategy.
type Algorithm string

const (
	AlgorithmAStar Algorithm = "astar"
	AlgorithmBFS   Algorithm = "bfs"
)

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a == AlgorithmAStar || a == AlgorithmBFS
}

// RouteQuery asks for the nearest facility able to supply a recipient. The origin is a network
// node, an explicit position or an address to geocode, checked in that order.
type RouteQuery struct {
	Address     string
	Coordinates *Coordinates
	OriginNode  *int64
	BloodType   string
	Algorithm   Algorithm // empty means the service default
}

// RouteRequest is a queued RouteQuery.
type RouteRequest struct {
	ID int64
	RouteQuery
}

// Route is the answer to a RouteQuery.
type Route struct {
	Algorithm      Algorithm     `json:"algorithm"`
	Origin         Coordinates   `json:"origin"`
	OriginNode     int64         `json:"origin_node"`
	FacilityNode   int64         `json:"facility_node"`
	FacilityName   string        `json:"facility_name"`
	Path           []int64       `json:"path"`
	DistanceMeters float64       `json:"distance_meters"`
	Hops           int           `json:"hops"`
	NodesTraversed int           `json:"nodes_traversed"`
	ExpandedNodes  int           `json:"expanded_nodes"`
	Duration       time.Duration `json:"duration"`
}

// Comparison holds the answers of both algorithms to the same query.
type Comparison struct {
	AStar *Route `json:"astar"`
	BFS   *Route `json:"bfs"`
}
