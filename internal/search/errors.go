package search

import "errors"

var (
	// ErrNoPath is returned when no destination is reachable from the source.
	ErrNoPath = errors.New("no path found")
	// ErrEmptyDestinations is returned when the destination set has no members.
	ErrEmptyDestinations = errors.New("destination set is empty")
	// ErrMissingCoordinates is returned when the heuristic has to score a node without usable coordinates.
	ErrMissingCoordinates = errors.New("node is missing coordinates")
	// ErrNegativeWeight is returned when an edge carries a weight below zero.
	ErrNegativeWeight = errors.New("edge weight is negative")
	// ErrNoEdge is returned when the cost of a pair without any connecting edge is requested.
	ErrNoEdge = errors.New("no edge between nodes")
	// ErrSearchAborted is returned when a search was cancelled or ran out of its expansion budget.
	ErrSearchAborted = errors.New("search aborted")
)
