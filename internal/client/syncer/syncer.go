// Package syncer keeps the client's record list converged with backend
// snapshots. One synchronizer holds one watch subscription per signed-in
// identity, merges optimistic pending records into the committed list, and
// re-renders the same view for the same state no matter how often a
// snapshot is replayed.
package syncer

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/client/models"
)

// Watcher opens the snapshot stream. Satisfied by client.Client.
type Watcher interface {
	Watch(ctx context.Context) (<-chan api.Snapshot, <-chan error, error)
}

// RenderFunc receives the merged view list after every state change.
type RenderFunc func([]models.RecordView)

// Synchronizer consumes the snapshot stream and maintains the merged view
// of committed and pending records. Safe for concurrent use.
type Synchronizer struct {
	watcher Watcher
	render  RenderFunc

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	latest  []api.Record
	pending []*models.PendingRecord
	ready   bool
	err     error
}

func New(w Watcher, render RenderFunc) *Synchronizer {
	if render == nil {
		render = func([]models.RecordView) {}
	}
	return &Synchronizer{watcher: w, render: render}
}

// Start opens the subscription and consumes snapshots until ctx is
// cancelled or Stop is called. A synchronizer holds at most one
// subscription; starting a running one is a no-op.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	snapshots, errCh, err := s.watcher.Watch(ctx)
	if err != nil {
		cancel()
		s.err = err
		s.mu.Unlock()
		return err
	}

	done := make(chan struct{})
	s.running = true
	s.cancel = cancel
	s.done = done
	s.err = nil
	s.mu.Unlock()

	go func() {
		defer close(done)
		for snapshot := range snapshots {
			s.apply(snapshot)
		}
		if err := <-errCh; err != nil {
			s.fail(err)
		}
		// release the derived context even when the stream, not Stop,
		// ended the loop
		s.mu.Lock()
		s.running = false
		cancelFn := s.cancel
		s.cancel = nil
		s.mu.Unlock()
		if cancelFn != nil {
			cancelFn()
		}
	}()

	return nil
}

// Stop tears down the subscription and waits for the consumer loop to
// finish. Pending records and the last rendered state survive so a
// subsequent Start resumes cleanly.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Reset drops all state. Used when the signed-in identity changes so one
// user's records never bleed into another's view.
func (s *Synchronizer) Reset() {
	s.Stop()
	s.mu.Lock()
	s.latest = nil
	s.pending = nil
	s.ready = false
	s.err = nil
	s.mu.Unlock()
}

// Ready reports whether at least one snapshot has arrived. An empty view
// before the first snapshot means "still loading", not "no records".
func (s *Synchronizer) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Err returns the terminal stream error, if any.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Views returns the current merged view list, newest first.
func (s *Synchronizer) Views() []models.RecordView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewsLocked()
}

// --- pending tracking ---

// Add registers an optimistic record and returns its local id. The record
// shows up in views immediately, before the backend acknowledges it.
func (s *Synchronizer) Add(rec api.Record) string {
	localID := uuid.NewString()

	s.mu.Lock()
	s.pending = append(s.pending, &models.PendingRecord{LocalID: localID, Record: rec})
	views := s.viewsLocked()
	s.mu.Unlock()

	s.render(views)
	return localID
}

// Commit marks a pending record as acknowledged under serverID. The
// pending copy is retired once a snapshot containing serverID arrives.
func (s *Synchronizer) Commit(localID, serverID string) {
	s.mu.Lock()
	for _, p := range s.pending {
		if p.LocalID == localID {
			p.ServerID = serverID
			break
		}
	}
	retired := s.retireLocked()
	var views []models.RecordView
	if retired {
		views = s.viewsLocked()
	}
	s.mu.Unlock()

	if retired {
		s.render(views)
	}
}

// Drop discards a pending record whose create failed.
func (s *Synchronizer) Drop(localID string) {
	s.mu.Lock()
	kept := s.pending[:0]
	for _, p := range s.pending {
		if p.LocalID != localID {
			kept = append(kept, p)
		}
	}
	s.pending = kept
	views := s.viewsLocked()
	s.mu.Unlock()

	s.render(views)
}

// --- internals ---

func (s *Synchronizer) apply(snapshot api.Snapshot) {
	s.mu.Lock()
	s.latest = Reconcile(snapshot.Records)
	s.ready = true
	s.err = nil
	s.retireLocked()
	views := s.viewsLocked()
	s.mu.Unlock()

	s.render(views)
}

func (s *Synchronizer) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// retireLocked drops pending records whose server copy is present in the
// latest snapshot. Returns whether anything was retired.
func (s *Synchronizer) retireLocked() bool {
	if len(s.pending) == 0 {
		return false
	}

	present := make(map[string]struct{}, len(s.latest))
	for _, r := range s.latest {
		present[r.ID] = struct{}{}
	}

	kept := s.pending[:0]
	retired := false
	for _, p := range s.pending {
		if p.Committed() {
			if _, ok := present[p.ServerID]; ok {
				retired = true
				continue
			}
		}
		kept = append(kept, p)
	}
	s.pending = kept
	return retired
}

func (s *Synchronizer) viewsLocked() []models.RecordView {
	views := make([]models.RecordView, 0, len(s.latest)+len(s.pending))
	for _, p := range s.pending {
		rec := p.Record
		if rec.ID == "" {
			rec.ID = p.LocalID
		}
		views = append(views, models.RecordView{Record: rec, Pending: true})
	}
	for _, r := range s.latest {
		views = append(views, models.RecordView{Record: r})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Record.CreatedAt.After(views[j].Record.CreatedAt.Time)
	})
	return views
}

// Reconcile normalizes one snapshot's record list: duplicates by id keep
// their first occurrence, and the result is ordered newest first. Both
// creation-time encodings the backend may emit decode into comparable
// instants before this point, so ordering is uniform.
func Reconcile(records []api.Record) []api.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]api.Record, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}
