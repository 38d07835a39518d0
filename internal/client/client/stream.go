package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

// Watch opens the SSE snapshot stream. Snapshots arrive on the returned
// channel until ctx is cancelled or the stream breaks; the channel is then
// closed and the terminal error (nil on clean cancellation) is delivered
// on the error channel.
func (c *Client) Watch(ctx context.Context) (<-chan api.Snapshot, <-chan error, error) {
	access, _ := c.Tokens()
	if access == "" {
		return nil, nil, common.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/records/watch", nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+access)
	req.Header.Set("Accept", "text/event-stream")

	// no per-request timeout; the stream lives until cancelled
	resp, err := (&http.Client{Transport: c.http.Transport}).Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, nil, mapError(resp)
	}

	snapshots := make(chan api.Snapshot)
	errCh := make(chan error, 1)

	go func() {
		defer resp.Body.Close()
		defer close(snapshots)

		errCh <- readSnapshots(ctx, resp.Body, snapshots)
	}()

	return snapshots, errCh, nil
}

// readSnapshots parses the SSE frame stream, delivering each data payload
// that decodes as a snapshot.
func readSnapshots(ctx context.Context, body io.Reader, out chan<- api.Snapshot) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var data bytes.Buffer
	for scanner.Scan() {
		line := scanner.Bytes()

		if len(line) == 0 {
			if data.Len() > 0 {
				var snapshot api.Snapshot
				if err := json.Unmarshal(data.Bytes(), &snapshot); err == nil {
					select {
					case out <- snapshot:
					case <-ctx.Done():
						return nil
					}
				}
				data.Reset()
			}
			continue
		}

		// a single space after the field colon is optional per the SSE format
		if rest, ok := bytes.CutPrefix(line, []byte("data:")); ok {
			rest = bytes.TrimPrefix(rest, []byte(" "))
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.Write(rest)
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: stream closed", ErrUnavailable)
}
