package search_test

import (
	"context"
	"testing"

	"github.com/UnknownOlympus/hermes/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBFS(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("fewest edges wins over cheapest", func(t *testing.T) {
		t.Parallel()

		result, err := search.BFS(ctx, exampleGraph(), "A", search.NewDestinations("D"))

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C", "D"}, result.Path)
		assert.Equal(t, 2, result.Hops)
		assert.InDelta(t, 6.0, result.TotalCost, 1e-9)
	})

	t.Run("source is a destination", func(t *testing.T) {
		t.Parallel()

		result, err := search.BFS(ctx, exampleGraph(), "C", search.NewDestinations("C"))

		require.NoError(t, err)
		assert.Equal(t, []string{"C"}, result.Path)
		assert.Zero(t, result.Hops)
		assert.Zero(t, result.TotalCost)
	})

	t.Run("empty destination set", func(t *testing.T) {
		t.Parallel()

		_, err := search.BFS(ctx, exampleGraph(), "A", search.Destinations[string]{})

		require.ErrorIs(t, err, search.ErrEmptyDestinations)
	})

	t.Run("unreachable destinations", func(t *testing.T) {
		t.Parallel()
		graph := exampleGraph().road("E", "F", 1)

		result, err := search.BFS(ctx, graph, "A", search.NewDestinations("E", "F"))

		require.ErrorIs(t, err, search.ErrNoPath)
		assert.Nil(t, result.Path)
		assert.Equal(t, 4, result.ExpandedNodes)
	})

	t.Run("coordinates are not required", func(t *testing.T) {
		t.Parallel()
		graph := newMapGraph[int]().road(1, 2, 1).road(2, 3, 1)

		result, err := search.BFS(ctx, graph, 1, search.NewDestinations(3))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, result.Path)
	})

	t.Run("directed edges are respected", func(t *testing.T) {
		t.Parallel()
		graph := newMapGraph[int]().
			arc(1, 2, search.Weighted(1)).
			arc(3, 2, search.Weighted(1))

		_, err := search.BFS(ctx, graph, 1, search.NewDestinations(3))

		require.ErrorIs(t, err, search.ErrNoPath)
	})

	t.Run("each node is expanded once", func(t *testing.T) {
		t.Parallel()
		// A diamond queues node 4 twice; it must be expanded a single time.
		graph := newMapGraph[int]().
			road(1, 2, 1).road(1, 3, 1).road(2, 4, 1).road(3, 4, 1).road(4, 5, 1)

		result, err := search.BFS(ctx, graph, 1, search.NewDestinations(6))

		require.ErrorIs(t, err, search.ErrNoPath)
		assert.Equal(t, 5, result.ExpandedNodes)
	})

	t.Run("parallel edges use the shared resolver", func(t *testing.T) {
		t.Parallel()
		graph := newMapGraph[int]().arc(1, 2, search.Weighted(5), search.Weighted(2), search.Edge{})

		result, err := search.BFS(ctx, graph, 1, search.NewDestinations(2),
			search.WithEdgeCostResolver(search.EdgeCostResolver{DefaultWeight: 3}))

		require.NoError(t, err)
		assert.InDelta(t, 2.0, result.TotalCost, 1e-9)
	})

	t.Run("expansion limit aborts", func(t *testing.T) {
		t.Parallel()

		_, err := search.BFS(ctx, exampleGraph(), "A", search.NewDestinations("D"), search.WithMaxExpansions(1))

		require.ErrorIs(t, err, search.ErrSearchAborted)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := search.BFS(cancelled, exampleGraph(), "A", search.NewDestinations("D"))

		require.ErrorIs(t, err, search.ErrSearchAborted)
	})
}
