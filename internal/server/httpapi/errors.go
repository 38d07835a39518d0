package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

// writeError maps a sentinel error onto an HTTP status and the shared
// error envelope. Unknown errors become opaque 500s; their details stay
// in the server log.
func writeError(c *gin.Context, err error) {
	status, code := mapError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}

	c.AbortWithStatusJSON(status, api.ErrorBody{Code: code, Message: msg})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, api.CodeInvalidCredentials
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, api.CodeUserNotFound
	case errors.Is(err, common.ErrEmailInUse):
		return http.StatusConflict, api.CodeEmailInUse
	case errors.Is(err, common.ErrWeakPassword):
		return http.StatusBadRequest, api.CodeWeakPassword
	case errors.Is(err, common.ErrInvalidEmail):
		return http.StatusBadRequest, api.CodeInvalidEmail
	case errors.Is(err, common.ErrExpiredCode):
		return http.StatusGone, api.CodeExpiredCode
	case errors.Is(err, common.ErrInvalidCode):
		return http.StatusBadRequest, api.CodeInvalidCode
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, api.CodeTokenExpired
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrNotAuthenticated):
		return http.StatusUnauthorized, api.CodeUnauthorized
	case errors.Is(err, common.ErrPermissionDenied),
		errors.Is(err, common.ErrUploadUnauthorized):
		return http.StatusForbidden, api.CodePermissionDenied
	case errors.Is(err, common.ErrNoGeocodeResult):
		return http.StatusNotFound, api.CodeNoResult
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, api.CodeNotFound
	default:
		return http.StatusInternalServerError, api.CodeInternal
	}
}
