package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/repository"
)

type PetService struct {
	Repo repository.PetRepository
}

func NewPetService(repo repository.PetRepository) *PetService {
	return &PetService{Repo: repo}
}

func (s *PetService) Create(ctx context.Context, ownerID int, req entities.PetRequest) (*entities.PetResponse, error) {
	pet, err := petFromRequest(ownerID, req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, pet); err != nil {
		return nil, err
	}
	resp := toPetResponse(pet)
	return &resp, nil
}

func (s *PetService) Get(ctx context.Context, ownerID, id int) (*entities.PetResponse, error) {
	pet, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := toPetResponse(pet)
	return &resp, nil
}

func (s *PetService) ListByOwner(ctx context.Context, ownerID int) ([]entities.PetResponse, error) {
	pets, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PetResponse, 0, len(pets))
	for i := range pets {
		out = append(out, toPetResponse(&pets[i]))
	}
	return out, nil
}

func (s *PetService) Update(ctx context.Context, ownerID, id int, req entities.PetRequest) (*entities.PetResponse, error) {
	current, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updated, err := petFromRequest(ownerID, req)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	resp := toPetResponse(updated)
	return &resp, nil
}

// Delete removes a pet. Pets with appointment or notification history cannot
// be deleted; historical rows keep their pet reference.
func (s *PetService) Delete(ctx context.Context, ownerID, id int) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPetInUse) {
			return apperrors.InvalidState("pet has appointment history and cannot be deleted")
		}
		return err
	}
	return nil
}

func (s *PetService) getOwned(ctx context.Context, ownerID, id int) (*db.Pet, error) {
	pet, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperrors.NotFound(fmt.Sprintf("pet %d not found", id))
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, apperrors.NotFound(fmt.Sprintf("pet %d not found", id))
	}
	return pet, nil
}

func petFromRequest(ownerID int, req entities.PetRequest) (*db.Pet, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("name must not be empty")
	}
	if strings.TrimSpace(req.Species) == "" {
		return nil, apperrors.Validation("species must not be empty")
	}

	var birthDate *time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, apperrors.Validation("birth_date must be YYYY-MM-DD")
		}
		if t.After(time.Now()) {
			return nil, apperrors.Validation("birth_date must not be in the future")
		}
		birthDate = &t
	}

	return &db.Pet{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(req.Name),
		Species:   strings.ToLower(strings.TrimSpace(req.Species)),
		Breed:     strings.TrimSpace(req.Breed),
		BirthDate: birthDate,
		Allergies: strings.TrimSpace(req.Allergies),
		DietNotes: strings.TrimSpace(req.DietNotes),
	}, nil
}

func toPetResponse(pet *db.Pet) entities.PetResponse {
	resp := entities.PetResponse{
		ID:        pet.ID,
		OwnerID:   pet.OwnerID,
		Name:      pet.Name,
		Species:   pet.Species,
		Breed:     pet.Breed,
		Allergies: pet.Allergies,
		DietNotes: pet.DietNotes,
		CreatedAt: pet.CreatedAt,
		UpdatedAt: pet.UpdatedAt,
	}
	if pet.BirthDate != nil {
		resp.BirthDate = pet.BirthDate.Format("2006-01-02")
	}
	return resp
}
