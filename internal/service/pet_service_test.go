package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/repository"
)

func petReq() entities.PetRequest {
	return entities.PetRequest{
		Name:      "Firulais",
		Species:   "Dog",
		Breed:     "mestizo",
		BirthDate: "2024-06-01",
	}
}

func TestPetCreate(t *testing.T) {
	svc := NewPetService(newMockPetRepo())

	resp, err := svc.Create(context.Background(), 1, petReq())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "dog", resp.Species, "species is lowercased")
	assert.Equal(t, "2024-06-01", resp.BirthDate)
}

func TestPetCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entities.PetRequest)
	}{
		{"empty name", func(r *entities.PetRequest) { r.Name = " " }},
		{"empty species", func(r *entities.PetRequest) { r.Species = "" }},
		{"malformed birth date", func(r *entities.PetRequest) { r.BirthDate = "June 2024" }},
		{"future birth date", func(r *entities.PetRequest) { r.BirthDate = "2099-01-01" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPetService(newMockPetRepo())
			req := petReq()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), 1, req)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeValidation, apperrors.FromError(err).Code)
		})
	}
}

func TestPetGetForeignOwner(t *testing.T) {
	repo := newMockPetRepo()
	svc := NewPetService(repo)

	created, err := svc.Create(context.Background(), 1, petReq())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.FromError(err).Code)
}

func TestPetUpdate(t *testing.T) {
	repo := newMockPetRepo()
	svc := NewPetService(repo)

	created, err := svc.Create(context.Background(), 1, petReq())
	require.NoError(t, err)

	req := petReq()
	req.Allergies = "penicillin"
	updated, err := svc.Update(context.Background(), 1, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "penicillin", updated.Allergies)
}

func TestPetDelete(t *testing.T) {
	repo := newMockPetRepo()
	svc := NewPetService(repo)

	created, err := svc.Create(context.Background(), 1, petReq())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))

	_, err = svc.Get(context.Background(), 1, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.FromError(err).Code)
}

func TestPetDeleteWithHistory(t *testing.T) {
	repo := newMockPetRepo()
	svc := NewPetService(repo)

	created, err := svc.Create(context.Background(), 1, petReq())
	require.NoError(t, err)
	repo.deleteErr = repository.ErrPetInUse

	err = svc.Delete(context.Background(), 1, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.FromError(err).Code)
}
