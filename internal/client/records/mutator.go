// Package records implements the client-side mutation flows for travel
// records: optimistic create with optional image upload, comment edits,
// and deletes. All mutations require an authenticated session and fail
// fast before any network side effect when there is none.
package records

import (
	"context"
	"time"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
	"github.com/furari-app/furari/internal/filex"
	"github.com/furari-app/furari/internal/netx"
	"github.com/furari-app/furari/internal/timex"
)

// API is the slice of the backend client the mutator needs.
type API interface {
	CreateRecord(ctx context.Context, req api.CreateRecordRequest) (*api.Record, error)
	UpdateRecord(ctx context.Context, id string, req api.UpdateRecordRequest) (*api.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	RequestUpload(ctx context.Context, fileName string) (*api.UploadResponse, error)
}

// Session answers whether a signed-in user is present.
type Session interface {
	Authenticated() bool
}

// PendingTracker is how the mutator hands optimistic records to the
// synchronizer. Satisfied by syncer.Synchronizer.
type PendingTracker interface {
	Add(rec api.Record) (localID string)
	Commit(localID, serverID string)
	Drop(localID string)
}

// uploadFunc is a seam for testing the presigned PUT.
var uploadFunc = netx.UploadToPresignedURL

// Mutator performs record writes against the backend.
type Mutator struct {
	api     API
	session Session
	tracker PendingTracker
}

func NewMutator(a API, s Session, t PendingTracker) *Mutator {
	return &Mutator{api: a, session: s, tracker: t}
}

// Create writes one new record. When image is non-nil its bytes are
// uploaded first and the resulting URL rides along in the same record
// write; there is no separate "attach image" mutation that could leave a
// half-written record behind. If the record write fails after a
// successful upload the stored object is orphaned; there is no
// cross-backend rollback. Without a signed-in user nothing is uploaded
// and nothing is written.
func (m *Mutator) Create(ctx context.Context, loc api.Location, comment, address, timestamp string, image *filex.ImageFile) error {
	if !m.session.Authenticated() {
		return common.ErrNotAuthenticated
	}

	imageURL := ""
	if image != nil {
		upload, err := m.api.RequestUpload(ctx, image.Name)
		if err != nil {
			return err
		}
		if err := uploadFunc(ctx, upload.UploadURL, image.Data, image.ContentType); err != nil {
			return err
		}
		imageURL = upload.PublicURL
	}

	localID := m.tracker.Add(api.Record{
		Location:  loc,
		Address:   address,
		ImageURL:  imageURL,
		Comment:   comment,
		Timestamp: timestamp,
		CreatedAt: timex.NewInstant(time.Now()),
	})

	rec, err := m.api.CreateRecord(ctx, api.CreateRecordRequest{
		Location:  loc,
		Address:   address,
		ImageURL:  imageURL,
		Comment:   comment,
		Timestamp: timestamp,
	})
	if err != nil {
		m.tracker.Drop(localID)
		return err
	}

	m.tracker.Commit(localID, rec.ID)
	return nil
}

// UpdateComment changes a record's comment. The image reference is left
// untouched; the request simply omits it.
func (m *Mutator) UpdateComment(ctx context.Context, id, comment string) error {
	if !m.session.Authenticated() {
		return common.ErrNotAuthenticated
	}

	_, err := m.api.UpdateRecord(ctx, id, api.UpdateRecordRequest{Comment: &comment})
	return err
}

// ReplaceImage uploads a new image and points the record at it.
func (m *Mutator) ReplaceImage(ctx context.Context, id string, image *filex.ImageFile) error {
	if !m.session.Authenticated() {
		return common.ErrNotAuthenticated
	}

	upload, err := m.api.RequestUpload(ctx, image.Name)
	if err != nil {
		return err
	}
	if err := uploadFunc(ctx, upload.UploadURL, image.Data, image.ContentType); err != nil {
		return err
	}

	_, err = m.api.UpdateRecord(ctx, id, api.UpdateRecordRequest{ImageURL: &upload.PublicURL})
	return err
}

// Delete removes a record.
func (m *Mutator) Delete(ctx context.Context, id string) error {
	if !m.session.Authenticated() {
		return common.ErrNotAuthenticated
	}
	return m.api.DeleteRecord(ctx, id)
}
