package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// Errors shared by all providers. ErrAddressNotFound means another attempt with the same address
// cannot succeed.
var (
	ErrAddressNotFound    = errors.New("address not found")
	ErrEmptyAddress       = errors.New("empty address")
	ErrInvalidCoordinates = errors.New("provider returned invalid coordinates")
)
