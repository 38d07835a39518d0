package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/furari-app/furari/internal/api"
)

// WatchRecords streams the owner's snapshots over SSE. The current
// snapshot is sent immediately so a reconnecting client never renders a
// stale view, then every republished snapshot follows until the client
// disconnects.
func (h *Handler) WatchRecords(c *gin.Context) {
	ownerID := currentUserID(c)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		writeError(c, fmt.Errorf("streaming unsupported"))
		return
	}

	updates, cancel := h.hub.Subscribe(ownerID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	initial, err := h.records.Snapshot(c.Request.Context(), ownerID)
	if err != nil {
		h.log.Error(c.Request.Context(), "initial snapshot failed", "owner", ownerID, "error", err)
		return
	}
	if err := writeSnapshotEvent(c, flusher, initial); err != nil {
		return
	}

	h.log.Debug(c.Request.Context(), "watch stream opened", "owner", ownerID)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			h.log.Debug(ctx, "watch stream closed", "owner", ownerID)
			return
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			if err := writeSnapshotEvent(c, flusher, snapshot); err != nil {
				return
			}
		}
	}
}

func writeSnapshotEvent(c *gin.Context, flusher http.Flusher, snapshot api.Snapshot) error {
	if err := sse.Encode(c.Writer, sse.Event{Event: "snapshot", Data: snapshot}); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
