package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furari-app/furari/internal/common"
	"github.com/furari-app/furari/internal/server/config"
)

func newGeocodeService(baseURL string) *GeocodeService {
	cfg := &config.Config{GeocoderBaseURL: baseURL}
	return NewGeocodeService(cfg)
}

func TestReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("lat"); got != "35.656" {
			t.Errorf("unexpected lat %q", got)
		}
		if got := r.URL.Query().Get("lon"); got != "139.737" {
			t.Errorf("unexpected lon %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Tokyo Tower, Minato, Tokyo"}`))
	}))
	defer srv.Close()

	s := newGeocodeService(srv.URL)

	addr, err := s.ReverseGeocode(context.Background(), 35.656, 139.737)
	if err != nil {
		t.Fatalf("ReverseGeocode error: %v", err)
	}
	if addr != "Tokyo Tower, Minato, Tokyo" {
		t.Fatalf("unexpected address: %q", addr)
	}
}

func TestReverseGeocode_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	s := newGeocodeService(srv.URL)

	_, err := s.ReverseGeocode(context.Background(), 0, 0)
	if !errors.Is(err, common.ErrNoGeocodeResult) {
		t.Fatalf("want ErrNoGeocodeResult, got %v", err)
	}
}

func TestReverseGeocode_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := newGeocodeService(srv.URL)

	_, err := s.ReverseGeocode(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected error")
	}
}
