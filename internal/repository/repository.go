package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/hermes/internal/bloodbank"
	"github.com/UnknownOlympus/hermes/internal/graph"
	"github.com/UnknownOlympus/hermes/internal/models"
)

// MaxAttempts is the number of failed attempts after which a route request is given up.
const MaxAttempts = 5

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	LoadRoadNetwork(ctx context.Context, builder *graph.Builder) error
	FetchFacilities(ctx context.Context) ([]bloodbank.Facility, error)
	FetchPendingRequests(ctx context.Context, limit int) ([]models.RouteRequest, error)
	SaveRouteResult(ctx context.Context, requestID int64, route *models.Route) error
	IncrementFailureCount(ctx context.Context, requestID int64, errMsg string) error
	RejectRequest(ctx context.Context, requestID int64, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
