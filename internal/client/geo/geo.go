// Package geo resolves where the user is. Positions come from an optional
// local locator service; addresses come from the backend's reverse
// geocoder, with a coordinate placeholder when no address can be found.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

// Locator reports the current position. Implementations must be safe to
// invoke repeatedly; a denied or failed attempt does not poison later ones.
type Locator interface {
	CurrentPosition(ctx context.Context) (api.Location, error)
}

// HTTPLocator reads the position from a local provider over HTTP, e.g. a
// gpsd bridge or a phone companion app exposing {"lat":..,"lng":..}.
type HTTPLocator struct {
	url    string
	client *http.Client
}

// NewHTTPLocator builds a locator for url. An empty url yields a locator
// that always reports common.ErrGeoUnavailable.
func NewHTTPLocator(url string) *HTTPLocator {
	return &HTTPLocator{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (l *HTTPLocator) CurrentPosition(ctx context.Context) (api.Location, error) {
	if l.url == "" {
		return api.Location{}, common.ErrGeoUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return api.Location{}, fmt.Errorf("%w: %v", common.ErrGeoUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return api.Location{}, fmt.Errorf("%w: %v", common.ErrGeoUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return api.Location{}, common.ErrGeoPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return api.Location{}, fmt.Errorf("%w: provider returned status %d", common.ErrGeoUnavailable, resp.StatusCode)
	}

	var loc api.Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return api.Location{}, fmt.Errorf("%w: %v", common.ErrGeoUnavailable, err)
	}
	return loc, nil
}

// GeocodeAPI is the slice of the backend client the resolver needs.
type GeocodeAPI interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Resolver turns coordinates into a display address.
type Resolver struct {
	api GeocodeAPI
}

func NewResolver(api GeocodeAPI) *Resolver {
	return &Resolver{api: api}
}

// AddressFor reverse-geocodes loc. A record is worth keeping even when the
// geocoder has nothing, so failures degrade to a coordinate placeholder
// instead of erroring out.
func (r *Resolver) AddressFor(ctx context.Context, loc api.Location) string {
	address, err := r.api.ReverseGeocode(ctx, loc.Lat, loc.Lng)
	if err != nil || address == "" {
		return PlaceholderAddress(loc)
	}
	return address
}

// PlaceholderAddress renders loc as a plain coordinate pair.
func PlaceholderAddress(loc api.Location) string {
	return fmt.Sprintf("%.5f, %.5f", loc.Lat, loc.Lng)
}
