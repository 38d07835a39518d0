// Package models holds client-side view state for travel records. Records
// come in two flavors: committed ones delivered by backend snapshots, and
// pending ones created locally and still waiting to show up in a snapshot.
package models

import "github.com/furari-app/furari/internal/api"

// PendingRecord is an optimistic local record. LocalID identifies it until
// the backend acknowledges the write; ServerID is set once the create call
// returns and lets the synchronizer retire the pending copy when the real
// record arrives in a snapshot.
type PendingRecord struct {
	LocalID  string
	ServerID string
	Record   api.Record
}

// Committed reports whether the backend has acknowledged the write.
func (p *PendingRecord) Committed() bool {
	return p.ServerID != ""
}

// RecordView is one row of the rendered list: a record plus whether it is
// still a local pending copy.
type RecordView struct {
	Record  api.Record
	Pending bool
}
