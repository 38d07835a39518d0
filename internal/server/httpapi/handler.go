// Package httpapi exposes the server's REST and SSE surface with gin.
// Handlers translate between wire DTOs and the service layer, and map
// sentinel errors onto the shared error envelope.
package httpapi

import (
	"context"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/logging"
	"github.com/furari-app/furari/internal/server/config"
	"github.com/furari-app/furari/internal/server/models"
	"github.com/furari-app/furari/internal/server/services"
)

// UserService is the slice of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, code, newPassword string) error
}

type RecordService interface {
	Create(ctx context.Context, rec *models.TravelRecord) (*models.TravelRecord, error)
	Update(ctx context.Context, ownerID, id string, comment, imageURL *string) (*models.TravelRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
	Snapshot(ctx context.Context, ownerID string) (api.Snapshot, error)
}

type StorageService interface {
	RequestUpload(ctx context.Context, ownerID, fileName string) (key, uploadURL, publicURL string, err error)
}

type GeocodeService interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// WatchHub delivers per-owner snapshot streams for the SSE endpoint.
type WatchHub interface {
	Subscribe(ownerID string) (<-chan api.Snapshot, func())
}

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	users   UserService
	records RecordService
	storage StorageService
	geocode GeocodeService
	hub     WatchHub
	cfg     *config.Config
	log     logging.Logger
}

func NewHandler(users UserService, records RecordService, storage StorageService,
	geocode GeocodeService, hub WatchHub, cfg *config.Config, log logging.Logger) *Handler {
	return &Handler{
		users:   users,
		records: records,
		storage: storage,
		geocode: geocode,
		hub:     hub,
		cfg:     cfg,
		log:     log,
	}
}
