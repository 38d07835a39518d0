package resettokens

import (
	"context"
	"time"

	"github.com/furari-app/furari/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, code string, validity time.Duration) error
	Find(ctx context.Context, code string) (*models.ResetToken, error)
	Delete(ctx context.Context, code string) error
}
