package models

import (
	"testing"

	"github.com/furari-app/furari/internal/api"
)

func TestPendingRecord_Committed(t *testing.T) {
	p := &PendingRecord{LocalID: "local-1", Record: api.Record{Comment: "x"}}
	if p.Committed() {
		t.Fatal("fresh pending record must not be committed")
	}

	p.ServerID = "r1"
	if !p.Committed() {
		t.Fatal("pending record with server id must be committed")
	}
}
