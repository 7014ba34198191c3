package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRouter struct {
	queries []models.RouteQuery
	seeds   []uint64
	err     error
}

func (f *fakeRouter) RandomOrigin(seed uint64) (int64, error) {
	f.seeds = append(f.seeds, seed)
	return 7, nil
}

func (f *fakeRouter) Route(_ context.Context, query models.RouteQuery) (*models.Route, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Route{Algorithm: models.AlgorithmAStar, FacilityNode: 42, Path: []int64{1, 42}}, nil
}

func (f *fakeRouter) Compare(_ context.Context, query models.RouteQuery) (*models.Comparison, error) {
	f.queries = append(f.queries, query)
	return &models.Comparison{
		AStar: &models.Route{Algorithm: models.AlgorithmAStar, Path: []int64{1, 2, 3}},
		BFS:   &models.Route{Algorithm: models.AlgorithmBFS, Path: []int64{1, 3}},
	}, nil
}

func run(t *testing.T, fake *fakeRouter, args ...string) (string, error) {
	t.Helper()
	released := false
	root := newRootCmd(func(context.Context) (router, func(), error) {
		return fake, func() { released = true }, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	if err == nil {
		assert.True(t, released, "router resources must be released")
	}

	return out.String(), err
}

func TestRouteCommand(t *testing.T) {
	t.Run("coordinates", func(t *testing.T) {
		fake := &fakeRouter{}

		out, err := run(t, fake, "route", "--lat", "50.45", "--lon", "30.52", "--blood-type", "AB+", "--algorithm", "bfs")

		require.NoError(t, err)
		require.Len(t, fake.queries, 1)
		assert.Equal(t, models.RouteQuery{
			Coordinates: &models.Coordinates{Latitude: 50.45, Longitude: 30.52},
			BloodType:   "AB+",
			Algorithm:   models.AlgorithmBFS,
		}, fake.queries[0])

		var route models.Route
		require.NoError(t, json.Unmarshal([]byte(out), &route))
		assert.Equal(t, int64(42), route.FacilityNode)
	})

	t.Run("address", func(t *testing.T) {
		fake := &fakeRouter{}

		_, err := run(t, fake, "route", "--address", "Kyiv, Khreshchatyk 1", "--blood-type", "O-")

		require.NoError(t, err)
		assert.Equal(t, "Kyiv, Khreshchatyk 1", fake.queries[0].Address)
		assert.Nil(t, fake.queries[0].Coordinates)
	})

	t.Run("random origin", func(t *testing.T) {
		fake := &fakeRouter{}

		_, err := run(t, fake, "route", "--random-origin", "--seed", "99", "--blood-type", "B+")

		require.NoError(t, err)
		assert.Equal(t, []uint64{99}, fake.seeds)
		require.NotNil(t, fake.queries[0].OriginNode)
		assert.Equal(t, int64(7), *fake.queries[0].OriginNode)
	})

	t.Run("random origin excludes an address", func(t *testing.T) {
		fake := &fakeRouter{}

		_, err := run(t, fake, "route", "--random-origin", "--address", "Kyiv", "--blood-type", "B+")

		require.Error(t, err)
		assert.Empty(t, fake.queries)
	})

	t.Run("missing origin", func(t *testing.T) {
		_, err := run(t, &fakeRouter{}, "route", "--blood-type", "O-")

		require.ErrorIs(t, err, errOriginFlags)
	})

	t.Run("latitude without longitude", func(t *testing.T) {
		_, err := run(t, &fakeRouter{}, "route", "--lat", "50", "--blood-type", "O-")

		require.Error(t, err)
	})

	t.Run("missing blood type", func(t *testing.T) {
		_, err := run(t, &fakeRouter{}, "route", "--address", "Kyiv")

		require.ErrorContains(t, err, "blood-type")
	})

	t.Run("router error", func(t *testing.T) {
		_, err := run(t, &fakeRouter{err: assert.AnError}, "route", "--address", "Kyiv", "--blood-type", "O-")

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestCompareCommand(t *testing.T) {
	fake := &fakeRouter{}

	out, err := run(t, fake, "compare", "--lat", "50", "--lon", "30", "--blood-type", "A+")

	require.NoError(t, err)
	var comparison models.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &comparison))
	assert.Equal(t, []int64{1, 2, 3}, comparison.AStar.Path)
	assert.Equal(t, []int64{1, 3}, comparison.BFS.Path)
}
