package records

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/client/client"
	"github.com/furari-app/furari/internal/client/geo"
	"github.com/furari-app/furari/internal/client/session"
	"github.com/furari-app/furari/internal/client/syncer"
	"github.com/furari-app/furari/internal/timex"
)

// fakeBackend is a minimal in-memory stand-in for the server: login,
// record create, and a snapshot push stream.
type fakeBackend struct {
	mu      sync.Mutex
	records []api.Record
	nextID  int
	streams []chan api.Snapshot
}

func (b *fakeBackend) snapshot() api.Snapshot {
	s := api.Snapshot{Records: make([]api.Record, len(b.records))}
	copy(s.Records, b.records)
	return s
}

func (b *fakeBackend) publish() {
	snap := b.snapshot()
	for _, ch := range b.streams {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{
			UserID: "u1", Email: "a@b.example", AccessToken: "at", RefreshToken: "rt",
		})
	})

	mux.HandleFunc("GET /api/geocode/reverse", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lng") == "" {
			t.Error("reverse geocode called without coordinates")
		}
		json.NewEncoder(w).Encode(api.GeocodeResponse{Address: "Tokyo Tower, Minato, Tokyo"})
	})

	mux.HandleFunc("POST /api/records", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode create: %v", err)
		}

		b.mu.Lock()
		b.nextID++
		rec := api.Record{
			ID:        fmt.Sprintf("srv-%d", b.nextID),
			OwnerID:   "u1",
			Location:  req.Location,
			Address:   req.Address,
			ImageURL:  req.ImageURL,
			Comment:   req.Comment,
			Timestamp: req.Timestamp,
			CreatedAt: timex.NewInstant(time.Now()),
		}
		b.records = append([]api.Record{rec}, b.records...)
		b.publish()
		b.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rec)
	})

	mux.HandleFunc("GET /api/records/watch", func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")

		updates := make(chan api.Snapshot, 8)
		b.mu.Lock()
		b.streams = append(b.streams, updates)
		initial := b.snapshot()
		b.mu.Unlock()

		writeEvent := func(s api.Snapshot) {
			data, _ := json.Marshal(s)
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()
		}

		writeEvent(initial)
		for {
			select {
			case <-r.Context().Done():
				return
			case s := <-updates:
				writeEvent(s)
			}
		}
	})

	return mux
}

// The whole happy path, end to end: sign in, watch an empty journal,
// create a record at Tokyo Tower without a photo, and see it come back
// through the snapshot stream with the reverse-geocoded address and no
// image.
func TestJournalRoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	holder := session.NewHolder(c)

	if err := holder.SignIn(context.Background(), "a@b.example", "password1"); err != nil {
		t.Fatalf("SignIn error: %v", err)
	}

	s := syncer.New(c, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer s.Stop()

	waitFor(t, func() bool { return s.Ready() })
	if views := s.Views(); len(views) != 0 {
		t.Fatalf("journal should start empty, got %+v", views)
	}

	loc := api.Location{Lat: 35.656, Lng: 139.737}
	address := geo.NewResolver(c).AddressFor(context.Background(), loc)
	if address != "Tokyo Tower, Minato, Tokyo" {
		t.Fatalf("unexpected resolved address: %q", address)
	}

	m := NewMutator(c, holder, s)
	if err := m.Create(context.Background(), loc, "first trip", address, "2024-05-01", nil); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	waitFor(t, func() bool {
		v := s.Views()
		return len(v) == 1 && !v[0].Pending
	})

	got := s.Views()[0].Record
	if got.ID != "srv-1" || got.Comment != "first trip" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Address != "Tokyo Tower, Minato, Tokyo" {
		t.Fatalf("address lost: %q", got.Address)
	}
	if got.ImageURL != "" {
		t.Fatalf("record without photo must have empty image URL: %q", got.ImageURL)
	}
	if got.Location.Lat != 35.656 || got.Location.Lng != 139.737 {
		t.Fatalf("location lost: %+v", got.Location)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}
