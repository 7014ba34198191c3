package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"golang.org/x/time/rate"
)

const (
	// NominatimBaseURL is the public OpenStreetMap search endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org/search"
	// User-Agent must identify the application per the Nominatim usage policy.
	nominatimUserAgent = "Hermes-Routing-Service/1.0 (https://github.com/UnknownOlympus/hermes)"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimProvider geocodes through the OpenStreetMap Nominatim API. Requests are throttled by a
// limiter shared across goroutines; the public instance allows one request per second.
type NominatimProvider struct {
	client    HTTPClient
	baseURL   string
	userAgent string
	language  string
	limiter   *rate.Limiter
	log       *slog.Logger
}

// NominatimOption customizes a NominatimProvider.
type NominatimOption func(*NominatimProvider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client HTTPClient) NominatimOption {
	return func(np *NominatimProvider) { np.client = client }
}

// WithBaseURL points the provider at a self-hosted instance.
func WithBaseURL(baseURL string) NominatimOption {
	return func(np *NominatimProvider) { np.baseURL = baseURL }
}

// WithLimiter replaces the one request per second limiter.
func WithLimiter(limiter *rate.Limiter) NominatimOption {
	return func(np *NominatimProvider) { np.limiter = limiter }
}

// WithLanguage sets the accept-language sent with every query.
func WithLanguage(language string) NominatimOption {
	return func(np *NominatimProvider) { np.language = language }
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimProvider creates a provider for the public Nominatim instance.
func NewNominatimProvider(log *slog.Logger, opts ...NominatimOption) *NominatimProvider {
	const timeout = 10 * time.Second

	provider := &NominatimProvider{
		client:    &http.Client{Timeout: timeout},
		baseURL:   NominatimBaseURL,
		userAgent: nominatimUserAgent,
		language:  "en",
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		log:       log,
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider
}

// Geocode resolves address, retrying with progressively shorter variants when the full address is
// unknown: "city, street, house" is tried as-is, then without the house, then the city alone.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	variants := addressVariants(address)
	if len(variants) == 0 {
		return nil, ErrEmptyAddress
	}

	for level, variant := range variants {
		coords, err := np.search(ctx, variant)
		if err == nil {
			if level > 0 {
				np.log.InfoContext(ctx, "Geocoded using shortened address",
					"original", address, "variant", variant, "level", level)
			}
			return coords, nil
		}
		if !errors.Is(err, ErrAddressNotFound) {
			return nil, err
		}
		np.log.DebugContext(ctx, "Address variant not found", "variant", variant, "level", level)
	}

	return nil, fmt.Errorf("%w: nominatim tried %d variants of %q", ErrAddressNotFound, len(variants), address)
}

// addressVariants splits address on commas and drops trailing components one at a time.
func addressVariants(address string) []string {
	var parts []string
	for _, part := range strings.Split(address, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	variants := make([]string, 0, len(parts))
	for end := len(parts); end > 0; end-- {
		variants = append(variants, strings.Join(parts[:end], ", "))
	}

	return variants
}

func (np *NominatimProvider) search(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("accept-language", np.language)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var places []nominatimPlace
	if err = json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude %q", ErrInvalidCoordinates, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude %q", ErrInvalidCoordinates, places[0].Lon)
	}
	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, lat, lon)
	}

	return &coords, nil
}
