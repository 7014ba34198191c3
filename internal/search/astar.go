package search

import (
	"context"
	"fmt"
	"time"
)

// AStar runs a best-first search from source until it settles any node of dests.
//
// States are ordered by g + h, where h is the heuristic distance from a node to the closest
// destination. The returned path has the minimum total resolved cost among all paths to any
// destination provided the heuristic never overestimates that cost; for the default Haversine
// heuristic this requires edge weights in meters.
//
// Errors: ErrEmptyDestinations, ErrMissingCoordinates (a scored node or a destination without
// coordinates, never with WithUniformCost), ErrNegativeWeight, ErrSearchAborted and ErrNoPath.
func AStar[NodeType comparable](
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

	estimator, err := newGoalEstimator(graph, dests, searchOptions.Heuristic)
	if err != nil {
		return Result[NodeType]{}, err
	}
	hStart, err := estimator.estimate(source)
	if err != nil {
		return Result[NodeType]{}, err
	}

	// --- Initialize state ---
	frontier := NewPriorityFrontier[NodeType]()
	frontier.Push(source, 0, hStart, []NodeType{source})
	bestCost := map[NodeType]float64{source: 0}

	expandedNodes := 0
	for {
		current, ok := frontier.Pop()
		if !ok {
			return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, ErrNoPath
		}

		// A cheaper state for this node was queued after this one.
		if current.GScore > bestCost[current.Node] {
			continue
		}

		if err = checkBudget(ctx, searchOptions, expandedNodes); err != nil {
			return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, err
		}
		expandedNodes++

		if dests.Contains(current.Node) {
			path := ReconstructPath(current.Path)
			return Result[NodeType]{
				Path:          path,
				Destination:   current.Node,
				TotalCost:     current.GScore,
				Hops:          len(path) - 1,
				ExpandedNodes: expandedNodes,
				Elapsed:       time.Since(started),
			}, nil
		}

		for _, neighbor := range graph.Neighbors(current.Node) {
			cost, errCost := EdgeCost(graph, searchOptions.Resolver, current.Node, neighbor)
			if errCost != nil {
				return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, errCost
			}

			tentativeG := current.GScore + cost
			if known, seen := bestCost[neighbor]; seen && tentativeG >= known {
				continue
			}

			h, errH := estimator.estimate(neighbor)
			if errH != nil {
				return Result[NodeType]{ExpandedNodes: expandedNodes, Elapsed: time.Since(started)}, errH
			}
			bestCost[neighbor] = tentativeG
			frontier.Push(neighbor, tentativeG, tentativeG+h, extendPath(current.Path, neighbor))
		}
	}
}

// checkBudget reports ErrSearchAborted once the context is done or the expansion bound is spent.
func checkBudget(ctx context.Context, options Options, expanded int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	if options.MaxExpansions > 0 && expanded >= options.MaxExpansions {
		return fmt.Errorf("%w: expansion limit %d reached", ErrSearchAborted, options.MaxExpansions)
	}

	return nil
}
