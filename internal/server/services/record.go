package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/server/config"
	"github.com/furari-app/furari/internal/server/models"
	"github.com/furari-app/furari/internal/server/repositories/repomanager"
	"github.com/furari-app/furari/internal/timex"
)

// SnapshotPublisher pushes full per-owner snapshots to live watchers.
// Satisfied by watch.Hub.
type SnapshotPublisher interface {
	Publish(ownerID string, snapshot api.Snapshot)
}

// RecordService implements owner-scoped travel record CRUD. Every mutation
// republishes the owner's full snapshot so watchers converge on the same
// state regardless of which mutation they observed last.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hub         SnapshotPublisher
	config      *config.Config
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, hub SnapshotPublisher, cfg *config.Config) *RecordService {
	return &RecordService{db: db, repomanager: m, hub: hub, config: cfg}
}

// Create persists a new record for ownerID and republishes the snapshot.
func (s *RecordService) Create(ctx context.Context, rec *models.TravelRecord) (*models.TravelRecord, error) {
	repo := s.repomanager.Records(s.db)
	created, err := repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}
	if err := s.publishSnapshot(ctx, rec.OwnerID); err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes the mutable fields of one record. Nil pointers leave the
// corresponding column untouched, so an update without a new image keeps
// the stored image reference.
func (s *RecordService) Update(ctx context.Context, ownerID, id string, comment, imageURL *string) (*models.TravelRecord, error) {
	repo := s.repomanager.Records(s.db)
	updated, err := repo.Update(ctx, ownerID, id, comment, imageURL)
	if err != nil {
		return nil, err
	}
	if err := s.publishSnapshot(ctx, ownerID); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one record owned by ownerID and republishes the snapshot.
func (s *RecordService) Delete(ctx context.Context, ownerID, id string) error {
	repo := s.repomanager.Records(s.db)
	if err := repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	return s.publishSnapshot(ctx, ownerID)
}

// Snapshot returns the owner's full record list, newest first.
func (s *RecordService) Snapshot(ctx context.Context, ownerID string) (api.Snapshot, error) {
	repo := s.repomanager.Records(s.db)
	recs, err := repo.SelectByOwner(ctx, ownerID)
	if err != nil {
		return api.Snapshot{}, fmt.Errorf("error selecting records: %w", err)
	}

	snapshot := api.Snapshot{Records: make([]api.Record, 0, len(recs))}
	for _, r := range recs {
		snapshot.Records = append(snapshot.Records, toAPIRecord(r))
	}
	return snapshot, nil
}

func (s *RecordService) publishSnapshot(ctx context.Context, ownerID string) error {
	snapshot, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return err
	}
	s.hub.Publish(ownerID, snapshot)
	return nil
}

func toAPIRecord(r *models.TravelRecord) api.Record {
	return api.Record{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Location:  api.Location{Lat: r.Lat, Lng: r.Lng},
		Address:   r.Address,
		ImageURL:  r.ImageURL,
		Comment:   r.Comment,
		Timestamp: r.Timestamp,
		CreatedAt: timex.NewInstant(r.CreatedAt),
	}
}
