package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fetchRequestsQuery = `
	SELECT request_id, address, latitude, longitude, blood_type, algorithm
	FROM public.route_requests
	WHERE
		status = 'pending'
		AND attempts < $1
	ORDER BY created_at ASC
	LIMIT $2;
`

var requestColumns = []string{"request_id", "address", "latitude", "longitude", "blood_type", "algorithm"}

func TestFetchPendingRequests(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	limit := 10

	t.Run("error - query pending requests", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchRequestsQuery)).
			WithArgs(repository.MaxAttempts, limit).
			WillReturnError(assert.AnError)

		requests, err := repo.FetchPendingRequests(ctx, limit)

		require.Nil(t, requests)
		require.ErrorContains(t, err, "failed to query pending route requests")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan pending request", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchRequestsQuery)).
			WithArgs(repository.MaxAttempts, limit).
			WillReturnRows(
				pgxmock.NewRows(requestColumns).AddRow("invalid_id", "Main st. 1", nil, nil, "A+", nil),
			)

		requests, err := repo.FetchPendingRequests(ctx, limit)

		require.Nil(t, requests)
		require.ErrorContains(t, err, "failed to scan pending route request")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchRequestsQuery)).
			WithArgs(repository.MaxAttempts, limit).
			WillReturnRows(
				pgxmock.NewRows(requestColumns).AddRow(int64(1), "Main st. 1", nil, nil, "A+", nil).
					RowError(1, assert.AnError),
			)

		requests, err := repo.FetchPendingRequests(ctx, limit)

		require.Nil(t, requests)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - address and coordinate requests", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchRequestsQuery)).
			WithArgs(repository.MaxAttempts, limit).
			WillReturnRows(
				pgxmock.NewRows(requestColumns).
					AddRow(int64(1), "Main st. 1", nil, nil, "A+", nil).
					AddRow(int64(2), nil, 50.45, 30.52, "O-", "bfs"),
			)

		requests, err := repo.FetchPendingRequests(ctx, limit)

		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, int64(1), requests[0].ID)
		assert.Equal(t, "Main st. 1", requests[0].Address)
		assert.Nil(t, requests[0].Coordinates)
		assert.Empty(t, requests[0].Algorithm)
		assert.Equal(t, &models.Coordinates{Latitude: 50.45, Longitude: 30.52}, requests[1].Coordinates)
		assert.Equal(t, "O-", requests[1].BloodType)
		assert.Equal(t, models.AlgorithmBFS, requests[1].Algorithm)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveRouteResult(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	requestID := int64(123)
	route := &models.Route{
		Algorithm:      models.AlgorithmAStar,
		FacilityNode:   42,
		Path:           []int64{7, 8, 42},
		DistanceMeters: 812.5,
		Hops:           2,
		ExpandedNodes:  5,
	}
	query := `
		UPDATE route_requests
		SET
			status = 'done',
			facility_node = $1,
			path = $2,
			distance_meters = $3,
			hops = $4,
			expanded_nodes = $5,
			algorithm = $6,
			last_error = NULL,
			completed_at = now()
		WHERE
			request_id = $7;
	`

	t.Run("error - save route", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(route.FacilityNode, route.Path, route.DistanceMeters, route.Hops, route.ExpandedNodes,
				"astar", requestID).
			WillReturnError(assert.AnError)

		err = repo.SaveRouteResult(ctx, requestID, route)

		require.ErrorContains(t, err, "failed to save route result")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - save route", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(route.FacilityNode, route.Path, route.DistanceMeters, route.Hops, route.ExpandedNodes,
				"astar", requestID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.SaveRouteResult(ctx, requestID, route)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementFailureCount(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	requestID := int64(123)
	query := `
		UPDATE route_requests
		SET
			attempts = attempts + 1,
			last_error = $1,
			status = CASE WHEN attempts + 1 >= $2 THEN 'failed' ELSE status END
		WHERE request_id = $3;
	`

	t.Run("error - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("error", repository.MaxAttempts, requestID).
			WillReturnError(assert.AnError)

		err = repo.IncrementFailureCount(ctx, requestID, "error")

		require.ErrorContains(t, err, "failed to update route error and number of attempts")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("error", repository.MaxAttempts, requestID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.IncrementFailureCount(ctx, requestID, "error")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRejectRequest(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		UPDATE route_requests
		SET
			status = 'failed',
			last_error = $1,
			completed_at = now()
		WHERE request_id = $2;
	`

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := repository.NewRepository(mock, logger)

	mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("no path", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("no path", int64(10)).
		WillReturnError(assert.AnError)

	require.NoError(t, repo.RejectRequest(ctx, 9, "no path"))
	err = repo.RejectRequest(ctx, 10, "no path")
	require.ErrorContains(t, err, "failed to reject route request")
	assert.NoError(t, mock.ExpectationsWereMet())
}
