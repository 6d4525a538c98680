package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetclinic/internal/db"
)

// MobileServiceRepository persists home-visit service requests.
type MobileServiceRepository interface {
	Create(ctx context.Context, req *db.MobileServiceRequest) error
	GetByID(ctx context.Context, id int) (*db.MobileServiceRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	ListByOwner(ctx context.Context, ownerID int) ([]db.MobileServiceRequest, error)
}

type mobileServiceRepository struct {
	DB *sql.DB
}

func NewMobileServiceRepository(database *sql.DB) MobileServiceRepository {
	return &mobileServiceRepository{DB: database}
}

func (r *mobileServiceRepository) Create(ctx context.Context, req *db.MobileServiceRequest) error {
	query := `
		INSERT INTO mobile_service_requests
		(reference, pet_id, owner_id, service_type, date, time_of_day, address, latitude, longitude, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		req.Reference,
		req.PetID,
		req.OwnerID,
		req.ServiceType,
		req.Date.Format("2006-01-02"),
		req.TimeOfDay,
		req.Address,
		req.Latitude,
		req.Longitude,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting mobile service request: %w", err)
	}
	return nil
}

func (r *mobileServiceRepository) GetByID(ctx context.Context, id int) (*db.MobileServiceRequest, error) {
	var req db.MobileServiceRequest
	query := `
		SELECT id, reference, pet_id, owner_id, service_type, date, time_of_day,
		       address, latitude, longitude, status, created_at, updated_at
		FROM mobile_service_requests
		WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.Reference, &req.PetID, &req.OwnerID, &req.ServiceType,
		&req.Date, &req.TimeOfDay, &req.Address, &req.Latitude, &req.Longitude,
		&req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("mobile service request %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying mobile service request: %w", err)
	}
	return &req, nil
}

func (r *mobileServiceRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE mobile_service_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating mobile service status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("mobile service request %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *mobileServiceRepository) ListByOwner(ctx context.Context, ownerID int) ([]db.MobileServiceRequest, error) {
	query := `
		SELECT id, reference, pet_id, owner_id, service_type, date, time_of_day,
		       address, latitude, longitude, status, created_at, updated_at
		FROM mobile_service_requests
		WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying mobile service requests: %w", err)
	}
	defer rows.Close()

	var reqs []db.MobileServiceRequest
	for rows.Next() {
		var req db.MobileServiceRequest
		err := rows.Scan(
			&req.ID, &req.Reference, &req.PetID, &req.OwnerID, &req.ServiceType,
			&req.Date, &req.TimeOfDay, &req.Address, &req.Latitude, &req.Longitude,
			&req.Status, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning mobile service request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mobile service requests: %w", err)
	}
	return reqs, nil
}
