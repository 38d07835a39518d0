package mq

import (
	"encoding/json"
	"fmt"
)

// Routing keys for events published by the server.
const (
	RKPasswordResetRequested = "mail.password_reset"
)

// PasswordResetRequested carries what the notifier needs to send a reset
// code to the account holder.
type PasswordResetRequested struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
