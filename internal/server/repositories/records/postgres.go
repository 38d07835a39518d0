// Package records provides the PostgreSQL-backed repository for travel
// records. Every query is owner-scoped; there is no path that reads or
// writes another user's rows.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// Create inserts a record and returns it with the backend-assigned id and
// created_at filled in.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.TravelRecord) (*models.TravelRecord, error) {
	query := `
		INSERT INTO travel_records (owner_id, lat, lng, address, image_url, comment, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerID, rec.Lat, rec.Lng, rec.Address, rec.ImageURL, rec.Comment, rec.Timestamp).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Update changes comment and/or image_url for an owner's record. Nil
// arguments leave the column untouched, so an update without a new image
// keeps the stored reference. Updating a record that does not exist or
// belongs to another owner returns common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, comment, imageURL *string) (*models.TravelRecord, error) {
	query := `
		UPDATE travel_records
		SET comment = COALESCE($3, comment),
		    image_url = COALESCE($4, image_url)
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, lat, lng, address, image_url, comment, ts, created_at
	`
	rec := &models.TravelRecord{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID, comment, imageURL).Scan(
		&rec.ID, &rec.OwnerID, &rec.Lat, &rec.Lng, &rec.Address,
		&rec.ImageURL, &rec.Comment, &rec.Timestamp, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Delete removes an owner's record by id. Deleting a row that is absent or
// owned by someone else returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM travel_records
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// SelectByOwner returns all of ownerID's records, newest first.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.TravelRecord, error) {
	query := `
		SELECT id, owner_id, lat, lng, address, image_url, comment, ts, created_at
		FROM travel_records
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.TravelRecord
	for rows.Next() {
		var item models.TravelRecord
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Lat, &item.Lng, &item.Address,
			&item.ImageURL, &item.Comment, &item.Timestamp, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
