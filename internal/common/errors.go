// Package common defines shared constants and sentinel errors used across
// client and server layers of Furari. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth flow errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email address")

	// Password-reset code errors.
	ErrExpiredCode = errors.New("reset code expired")
	ErrInvalidCode = errors.New("invalid reset code")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrNotAuthenticated is returned by client operations attempted without
	// an authenticated session, before any network call is made.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Storage / persistence errors.
	ErrUploadUnauthorized = errors.New("upload unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")

	// Geolocation / geocoding errors.
	ErrGeoPermissionDenied = errors.New("geolocation permission denied")
	ErrGeoUnavailable      = errors.New("geolocation unavailable")
	ErrNoGeocodeResult     = errors.New("no geocoding result")
)
