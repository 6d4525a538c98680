package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetclinic/internal/db"
)

// PetWithOwner joins a pet with its owner's contact data for the reminder batch.
type PetWithOwner struct {
	db.Pet
	OwnerName  string
	OwnerEmail string
	OwnerPhone string
}

// ErrPetInUse is returned by Delete when appointment or notification history
// still references the pet (FK restrict). Historical rows are never orphaned.
var ErrPetInUse = fmt.Errorf("pet has history and cannot be deleted")

type PetRepository interface {
	Create(ctx context.Context, pet *db.Pet) error
	GetByID(ctx context.Context, id int) (*db.Pet, error)
	ListByOwner(ctx context.Context, ownerID int) ([]db.Pet, error)
	ListBySpecies(ctx context.Context, species string) ([]PetWithOwner, error)
	Update(ctx context.Context, pet *db.Pet) error
	Delete(ctx context.Context, id int) error
}

type petRepository struct {
	DB *sql.DB
}

func NewPetRepository(database *sql.DB) PetRepository {
	return &petRepository{DB: database}
}

func (r *petRepository) Create(ctx context.Context, pet *db.Pet) error {
	query := `
		INSERT INTO pets (owner_id, name, species, breed, birth_date, allergies, diet_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		pet.OwnerID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.BirthDate,
		pet.Allergies,
		pet.DietNotes,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting pet: %w", err)
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id int) (*db.Pet, error) {
	var pet db.Pet
	query := `
		SELECT id, owner_id, name, species, breed, birth_date, allergies, diet_notes, created_at, updated_at
		FROM pets
		WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&pet.ID, &pet.OwnerID, &pet.Name, &pet.Species, &pet.Breed,
		&pet.BirthDate, &pet.Allergies, &pet.DietNotes, &pet.CreatedAt, &pet.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("pet %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying pet: %w", err)
	}
	return &pet, nil
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID int) ([]db.Pet, error) {
	query := `
		SELECT id, owner_id, name, species, breed, birth_date, allergies, diet_notes, created_at, updated_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying pets: %w", err)
	}
	defer rows.Close()

	var pets []db.Pet
	for rows.Next() {
		var pet db.Pet
		err := rows.Scan(
			&pet.ID, &pet.OwnerID, &pet.Name, &pet.Species, &pet.Breed,
			&pet.BirthDate, &pet.Allergies, &pet.DietNotes, &pet.CreatedAt, &pet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning pet: %w", err)
		}
		pets = append(pets, pet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pets: %w", err)
	}
	return pets, nil
}

// ListBySpecies returns pets of the species together with owner contact data.
// Pets without a birth date are excluded; age rules cannot apply to them.
func (r *petRepository) ListBySpecies(ctx context.Context, species string) ([]PetWithOwner, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.species, p.breed, p.birth_date,
		       p.allergies, p.diet_notes, p.created_at, p.updated_at,
		       o.name, o.email, o.phone
		FROM pets p
		JOIN owners o ON o.id = p.owner_id
		WHERE p.species = $1 AND p.birth_date IS NOT NULL
		ORDER BY p.id`

	rows, err := r.DB.QueryContext(ctx, query, species)
	if err != nil {
		return nil, fmt.Errorf("error querying pets by species: %w", err)
	}
	defer rows.Close()

	var pets []PetWithOwner
	for rows.Next() {
		var pet PetWithOwner
		err := rows.Scan(
			&pet.ID, &pet.OwnerID, &pet.Name, &pet.Species, &pet.Breed,
			&pet.BirthDate, &pet.Allergies, &pet.DietNotes, &pet.CreatedAt, &pet.UpdatedAt,
			&pet.OwnerName, &pet.OwnerEmail, &pet.OwnerPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning pet with owner: %w", err)
		}
		pets = append(pets, pet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pets by species: %w", err)
	}
	return pets, nil
}

func (r *petRepository) Update(ctx context.Context, pet *db.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, species = $2, breed = $3, birth_date = $4,
		    allergies = $5, diet_notes = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		pet.Name, pet.Species, pet.Breed, pet.BirthDate,
		pet.Allergies, pet.DietNotes, pet.ID,
	).Scan(&pet.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return fmt.Errorf("pet %d not found: %w", pet.ID, err)
		}
		return fmt.Errorf("error updating pet: %w", err)
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrPetInUse
		}
		return fmt.Errorf("error deleting pet: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("pet %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}
