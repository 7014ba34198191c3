package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// FetchPendingRequests retrieves queued route requests that still have attempts left, oldest first.
func (r *Repository) FetchPendingRequests(ctx context.Context, limit int) ([]models.RouteRequest, error) {
	var requests []models.RouteRequest
	query := `
		SELECT request_id, address, latitude, longitude, blood_type, algorithm
		FROM public.route_requests
		WHERE
			status = 'pending'
			AND attempts < $1
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending route requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			request             models.RouteRequest
			address, algorithm  pgtype.Text
			latitude, longitude pgtype.Float8
		)
		errScan := rows.Scan(&request.ID, &address, &latitude, &longitude, &request.BloodType, &algorithm)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan pending route request: %w", errScan)
		}

		request.Address = address.String
		request.Algorithm = models.Algorithm(algorithm.String)
		if latitude.Valid && longitude.Valid {
			request.Coordinates = &models.Coordinates{Latitude: latitude.Float64, Longitude: longitude.Float64}
		}
		r.log.DebugContext(ctx, "A new pending route request has been received.",
			"ID", request.ID, "blood_type", request.BloodType)
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return requests, nil
}

// SaveRouteResult stores the found route and marks the request done.
func (r *Repository) SaveRouteResult(ctx context.Context, requestID int64, route *models.Route) error {
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

	_, err := r.db.Exec(ctx, query,
		route.FacilityNode, route.Path, route.DistanceMeters, route.Hops, route.ExpandedNodes,
		string(route.Algorithm), requestID,
	)
	if err != nil {
		return fmt.Errorf("failed to save route result: %w", err)
	}

	return nil
}

// IncrementFailureCount records a transient failure. A request reaching MaxAttempts is marked failed.
func (r *Repository) IncrementFailureCount(ctx context.Context, requestID int64, errMsg string) error {
	query := `
		UPDATE route_requests
		SET
			attempts = attempts + 1,
			last_error = $1,
			status = CASE WHEN attempts + 1 >= $2 THEN 'failed' ELSE status END
		WHERE request_id = $3;
	`

	_, err := r.db.Exec(ctx, query, errMsg, MaxAttempts, requestID)
	if err != nil {
		return fmt.Errorf("failed to update route error and number of attempts: %w", err)
	}

	return nil
}

// RejectRequest marks a request failed without retry, for errors another attempt cannot fix.
func (r *Repository) RejectRequest(ctx context.Context, requestID int64, errMsg string) error {
	query := `
		UPDATE route_requests
		SET
			status = 'failed',
			last_error = $1,
			completed_at = now()
		WHERE request_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, requestID)
	if err != nil {
		return fmt.Errorf("failed to reject route request: %w", err)
	}

	return nil
}
