package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetclinic/internal/db"
)

type OwnerRepository interface {
	Create(ctx context.Context, owner *db.Owner) error
	GetByEmail(ctx context.Context, email string) (*db.Owner, error)
	GetByID(ctx context.Context, id int) (*db.Owner, error)
}

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = fmt.Errorf("email already registered")

type ownerRepository struct {
	DB *sql.DB
}

func NewOwnerRepository(database *sql.DB) OwnerRepository {
	return &ownerRepository{DB: database}
}

func (r *ownerRepository) Create(ctx context.Context, owner *db.Owner) error {
	query := `
		INSERT INTO owners (name, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctx, query,
		owner.Name, owner.Email, owner.Phone, owner.PasswordHash,
	).Scan(&owner.ID, &owner.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err, "") {
			return ErrEmailTaken
		}
		return fmt.Errorf("error inserting owner: %w", err)
	}
	return nil
}

func (r *ownerRepository) GetByEmail(ctx context.Context, email string) (*db.Owner, error) {
	var owner db.Owner
	query := `SELECT id, name, email, phone, password_hash, created_at FROM owners WHERE email = $1`

	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&owner.ID, &owner.Name, &owner.Email, &owner.Phone, &owner.PasswordHash, &owner.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying owner by email: %w", err)
	}
	return &owner, nil
}

func (r *ownerRepository) GetByID(ctx context.Context, id int) (*db.Owner, error) {
	var owner db.Owner
	query := `SELECT id, name, email, phone, password_hash, created_at FROM owners WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&owner.ID, &owner.Name, &owner.Email, &owner.Phone, &owner.PasswordHash, &owner.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("owner %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying owner: %w", err)
	}
	return &owner, nil
}
