// Package resettokens provides a PostgreSQL-backed repository for one-time
// password-reset codes.
package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/furari-app/furari/internal/common"
	"github.com/furari-app/furari/internal/dbx"
	"github.com/furari-app/furari/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create stores a reset code for userID expiring at now+validity.
func (r *PostgresRepository) Create(ctx context.Context, userID string, code string, validity time.Duration) error {
	query := `
		INSERT INTO reset_tokens (user_id, code, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, code, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the reset token row for code or common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, code string) (*models.ResetToken, error) {
	query := `
		SELECT user_id, expires_at
		FROM reset_tokens
		WHERE code = $1
	`
	token := &models.ResetToken{Code: code}
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&token.UserID, &token.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

// Delete consumes a reset code.
func (r *PostgresRepository) Delete(ctx context.Context, code string) error {
	query := `
		DELETE FROM reset_tokens
		WHERE code = $1
	`
	if _, err := r.db.ExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
