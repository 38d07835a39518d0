package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/furari-app/furari/internal/common"
	sc "github.com/furari-app/furari/internal/server/config"
)

// GeocodeService resolves coordinates to a human-readable address via an
// upstream Nominatim-compatible endpoint.
type GeocodeService struct {
	baseURL string
	client  *http.Client
}

func NewGeocodeService(cfg *sc.Config) *GeocodeService {
	return &GeocodeService{
		baseURL: cfg.GeocoderBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseGeocodeResult struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns the display name for the given coordinates.
// Coordinates the upstream cannot resolve yield ErrNoGeocodeResult.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "furari-server")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var result reverseGeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", common.ErrNoGeocodeResult
	}
	return result.DisplayName, nil
}
