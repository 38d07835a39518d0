package client

import "errors"

var (
	// ErrUnavailable is returned when the server cannot be reached at all.
	ErrUnavailable = errors.New("server unavailable")
)
