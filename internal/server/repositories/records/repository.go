package records

import (
	"context"

	"github.com/furari-app/furari/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rec *models.TravelRecord) (*models.TravelRecord, error)
	Update(ctx context.Context, ownerID, id string, comment, imageURL *string) (*models.TravelRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.TravelRecord, error)
}
