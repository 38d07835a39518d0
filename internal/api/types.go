// Package api defines the JSON wire types and error codes shared by the
// Furari server and client. It is the single vocabulary both sides speak;
// neither imports the other's internals.
package api

import "github.com/furari-app/furari/internal/timex"

// Location is a geographic point in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Record is one travel record as stored by the backend.
//
// ID and CreatedAt are assigned by the backend on creation. OwnerID,
// Location, Address and Timestamp are immutable after creation; only
// Comment and ImageURL change via update. An empty ImageURL means the
// record has no photo.
type Record struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	Location  Location      `json:"location"`
	Address   string        `json:"address"`
	ImageURL  string        `json:"imageUrl,omitempty"`
	Comment   string        `json:"comment"`
	Timestamp string        `json:"timestamp"`
	CreatedAt timex.Instant `json:"createdAt"`
}

// Snapshot is a point-in-time delivery of the full current record set
// matching one owner's subscription.
type Snapshot struct {
	Records []Record `json:"records"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ResetRequest struct {
	Email string `json:"email"`
}

type ResetConfirmRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type CreateRecordRequest struct {
	Location  Location `json:"location"`
	Address   string   `json:"address"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Comment   string   `json:"comment"`
	Timestamp string   `json:"timestamp"`
}

// UpdateRecordRequest carries only the mutable fields. Nil means
// "leave unchanged", so an update without a new image preserves the
// existing reference.
type UpdateRecordRequest struct {
	Comment  *string `json:"comment,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type UploadRequest struct {
	FileName string `json:"fileName"`
}

// UploadResponse describes where to PUT the image bytes and the
// long-lived URL the stored object will be readable at.
type UploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

type GeocodeResponse struct {
	Address string `json:"address"`
}

// MapConfig is the env-configured map widget credential passthrough.
type MapConfig struct {
	APIKey string `json:"apiKey"`
	MapID  string `json:"mapId"`
}
