package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/UnknownOlympus/hermes/internal/bloodbank"
	"github.com/UnknownOlympus/hermes/internal/geocoding"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/search"
)

// Run starts the routing service, which periodically polls for queued route requests.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (rs *RoutingService) Run(ctx context.Context) {
	ticker := time.NewTicker(rs.settings.PollInterval)
	defer ticker.Stop()

	rs.log.InfoContext(ctx, "Routing service started...")

	for {
		select {
		case <-ctx.Done():
			rs.log.InfoContext(ctx, "Routing service stopped.")
			return
		case <-ticker.C:
			rs.log.InfoContext(ctx, "Polling for new route requests...")
			rs.processRequests(ctx)
		}
	}
}

// processRequests fetches a batch of pending requests and fans them out to the worker pool.
func (rs *RoutingService) processRequests(ctx context.Context) {
	requests, err := rs.repo.FetchPendingRequests(ctx, rs.settings.BatchSize)
	if err != nil {
		rs.log.ErrorContext(ctx, "Failed to fetch route requests", "error", err)
		return
	}
	if len(requests) == 0 {
		rs.log.InfoContext(ctx, "No route requests to process.")
		return
	}

	rs.log.InfoContext(ctx, "Found route requests to process. Starting worker pool.",
		"jobs", len(requests), "num_workers", rs.settings.Workers)

	jobs := make(chan models.RouteRequest, len(requests))
	var wgr sync.WaitGroup

	for i := 1; i <= rs.settings.Workers; i++ {
		wgr.Add(1)
		go rs.worker(ctx, i, &wgr, jobs)
	}

	for _, request := range requests {
		jobs <- request
	}
	close(jobs)

	wgr.Wait()
	rs.log.InfoContext(ctx, "Processing batch finished")
}

// worker routes requests from jobs. Failures another attempt cannot fix reject the request; the
// rest count towards its retry budget.
func (rs *RoutingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.RouteRequest) {
	defer wg.Done()
	for request := range jobs {
		rs.metrics.ActiveWorkers.Inc()
		rs.handle(ctx, idx, request)
		rs.metrics.ActiveWorkers.Dec()
	}
}

func (rs *RoutingService) handle(ctx context.Context, idx int, request models.RouteRequest) {
	rs.log.DebugContext(ctx, "Processing route request", "worker", idx, "request", request.ID)

	route, err := rs.Route(ctx, request.RouteQuery)
	if err != nil {
		if permanent(err) {
			rs.log.WarnContext(ctx, "Route request cannot be served", "worker", idx, "request", request.ID, "error", err)
			rs.metrics.RequestsProcessed.WithLabelValues("rejected").Inc()
			if errReject := rs.repo.RejectRequest(ctx, request.ID, err.Error()); errReject != nil {
				rs.log.ErrorContext(ctx, "Could not reject route request",
					"worker", idx, "request", request.ID, "error", errReject)
			}
			return
		}

		rs.log.ErrorContext(ctx, "Failed to route request", "worker", idx, "request", request.ID, "error", err)
		rs.metrics.RequestsProcessed.WithLabelValues("failure").Inc()
		if errCount := rs.repo.IncrementFailureCount(ctx, request.ID, err.Error()); errCount != nil {
			rs.log.ErrorContext(ctx, "Could not update failure count for route request",
				"worker", idx, "request", request.ID, "error", errCount)
		}
		return
	}

	rs.metrics.RequestsProcessed.WithLabelValues("success").Inc()
	if err = rs.repo.SaveRouteResult(ctx, request.ID, route); err != nil {
		rs.log.ErrorContext(ctx, "Failed to save route for request", "worker", idx, "request", request.ID, "error", err)
		return
	}
	rs.log.DebugContext(ctx, "Worker successfully routed the request",
		"worker", idx, "request", request.ID, "facility", route.FacilityNode, "distance", route.DistanceMeters)
}

// permanent reports whether err depends only on the request and the loaded data.
func permanent(err error) bool {
	for _, target := range []error{
		ErrNoEligibleFacility,
		ErrUnknownAlgorithm,
		ErrNoOrigin,
		ErrOriginOffNetwork,
		bloodbank.ErrUnknownBloodType,
		geocoding.ErrAddressNotFound,
		geocoding.ErrEmptyAddress,
		geocoding.ErrInvalidCoordinates,
		search.ErrNoPath,
		search.ErrMissingCoordinates,
		search.ErrNegativeWeight,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
