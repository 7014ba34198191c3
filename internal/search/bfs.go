package search

import (
	"container/list"
	"context"
	"time"
)

type queueEntry[NodeType comparable] struct {
	node NodeType
	cost float64
	path []NodeType
}

// BFS explores from source in order of edge count until it dequeues any node of dests.
//
// A node is marked visited when it is dequeued, so it may be queued several times but is expanded
// once, and the first destination dequeued is reached with the fewest possible edges. Edge
// weights do not influence the order; they are only resolved to report TotalCost.
//
// Errors: ErrEmptyDestinations, ErrNegativeWeight, ErrSearchAborted and ErrNoPath.
func BFS[NodeType comparable](
	ctx context.Context,
	graph Graph[NodeType],
	source NodeType,
	dests Destinations[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	started := time.Now()
	if len(dests) == 0 {
		return Result[NodeType]{}, ErrEmptyDestinations
	}
	searchOptions := applyOptions(options)

	visited := make(map[NodeType]struct{})
	queue := list.New()
	queue.PushBack(queueEntry[NodeType]{node: source, path: []NodeType{source}})

	expandedNodes := 0
	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(queueEntry[NodeType])
		if _, seen := visited[current.node]; seen {
			continue
		}

		if err := checkBudget(ctx, searchOptions, expandedNodes); err != nil {
			return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, err
		}
		visited[current.node] = struct{}{}
		expandedNodes++

		if dests.Contains(current.node) {
			path := ReconstructPath(current.path)
			return Result[NodeType]{
				Path:          path,
				Destination:   current.node,
				TotalCost:     current.cost,
				Hops:          len(path) - 1,
				ExpandedNodes: expandedNodes,
				Elapsed:       time.Since(started),
			}, nil
		}

		for _, neighbor := range graph.Neighbors(current.node) {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			cost, err := EdgeCost(graph, searchOptions.Resolver, current.node, neighbor)
			if err != nil {
				return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, err
			}
			queue.PushBack(queueEntry[NodeType]{
				node: neighbor,
				cost: current.cost + cost,
				path: extendPath(current.path, neighbor),
			})
		}
	}

	return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, ErrNoPath
}
