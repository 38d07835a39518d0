package models

import "time"

// ResetToken is a one-time password-reset code issued to a user's email
// and consumed by the reset-confirmation flow.
type ResetToken struct {
	ID        string
	UserID    string
	Code      string
	Expires   time.Time
	CreatedAt time.Time
}
