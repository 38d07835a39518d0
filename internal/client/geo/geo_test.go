package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

func TestHTTPLocator_CurrentPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lat":35.656,"lng":139.737}`))
	}))
	defer srv.Close()

	loc, err := NewHTTPLocator(srv.URL).CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("CurrentPosition error: %v", err)
	}
	if loc.Lat != 35.656 || loc.Lng != 139.737 {
		t.Fatalf("unexpected position: %+v", loc)
	}
}

func TestHTTPLocator_PermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewHTTPLocator(srv.URL).CurrentPosition(context.Background())
	if !errors.Is(err, common.ErrGeoPermissionDenied) {
		t.Fatalf("want ErrGeoPermissionDenied, got %v", err)
	}
}

func TestHTTPLocator_DeniedThenGranted(t *testing.T) {
	granted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !granted {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"lat":1,"lng":2}`))
	}))
	defer srv.Close()

	l := NewHTTPLocator(srv.URL)
	if _, err := l.CurrentPosition(context.Background()); !errors.Is(err, common.ErrGeoPermissionDenied) {
		t.Fatalf("want ErrGeoPermissionDenied, got %v", err)
	}

	granted = true
	loc, err := l.CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("retry after grant failed: %v", err)
	}
	if loc.Lat != 1 || loc.Lng != 2 {
		t.Fatalf("unexpected position: %+v", loc)
	}
}

func TestHTTPLocator_NoProviderConfigured(t *testing.T) {
	_, err := NewHTTPLocator("").CurrentPosition(context.Background())
	if !errors.Is(err, common.ErrGeoUnavailable) {
		t.Fatalf("want ErrGeoUnavailable, got %v", err)
	}
}

func TestHTTPLocator_ProviderDown(t *testing.T) {
	_, err := NewHTTPLocator("http://127.0.0.1:1").CurrentPosition(context.Background())
	if !errors.Is(err, common.ErrGeoUnavailable) {
		t.Fatalf("want ErrGeoUnavailable, got %v", err)
	}
}

type fakeGeocoder struct {
	address string
	err     error
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return f.address, f.err
}

func TestResolver_AddressFor(t *testing.T) {
	r := NewResolver(&fakeGeocoder{address: "Tokyo Tower, Minato, Tokyo"})

	got := r.AddressFor(context.Background(), api.Location{Lat: 35.656, Lng: 139.737})
	if got != "Tokyo Tower, Minato, Tokyo" {
		t.Fatalf("unexpected address: %q", got)
	}
}

func TestResolver_FallsBackToPlaceholder(t *testing.T) {
	loc := api.Location{Lat: 35.656, Lng: 139.737}
	want := "35.65600, 139.73700"

	for name, g := range map[string]*fakeGeocoder{
		"no result": {err: common.ErrNoGeocodeResult},
		"unreached": {err: errors.New("connection refused")},
		"empty":     {address: ""},
	} {
		if got := NewResolver(g).AddressFor(context.Background(), loc); got != want {
			t.Fatalf("%s: want %q, got %q", name, want, got)
		}
	}
}
