// Package search finds the nearest acceptable destination on a road network.
//
// It exposes two entry points sharing one edge-cost policy and one result type:
//
//   - AStar: best-first search guided by the great-circle distance to the closest destination.
//   - BFS: level-order search returning the path with the fewest edges.
//
// Both searches stop at the first destination they settle, carry the growing path with every
// queued entry and report an unreachable destination set as ErrNoPath. A single call owns all of
// its state, so independent calls may run concurrently over the same read-only graph.
package search
