package api

// Error codes carried in error envelopes. The client maps these back to
// the sentinel errors in internal/common; user-facing messages are
// derived from the mapped error, never from the raw body.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeEmailInUse         = "EMAIL_IN_USE"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeExpiredCode        = "EXPIRED_CODE"
	CodeInvalidCode        = "INVALID_CODE"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeNoResult           = "NO_RESULT"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL"
)

// ErrorBody is the JSON envelope every non-2xx response carries.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
