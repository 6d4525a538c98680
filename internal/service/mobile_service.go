package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/repository"
)

type MobileServiceService struct {
	Repo    repository.MobileServiceRepository
	PetRepo repository.PetRepository

	loc *time.Location
	now func() time.Time
}

func NewMobileServiceService(repo repository.MobileServiceRepository, petRepo repository.PetRepository, loc *time.Location) *MobileServiceService {
	return &MobileServiceService{
		Repo:    repo,
		PetRepo: petRepo,
		loc:     loc,
		now:     time.Now,
	}
}

// CreateRequest registers a home-visit request. Unlike clinic appointments
// there is no slot exclusivity; the clinic schedules these by hand, so the
// request starts Pending rather than Scheduled.
func (s *MobileServiceService) CreateRequest(ctx context.Context, ownerID int, req entities.CreateMobileServiceRequest) (*entities.MobileServiceResponse, error) {
	if strings.TrimSpace(req.ServiceType) == "" {
		return nil, apperrors.Validation("service_type must not be empty")
	}

	hasAddress := strings.TrimSpace(req.Address) != ""
	hasCoords := req.Latitude != nil && req.Longitude != nil
	if !hasAddress && !hasCoords {
		return nil, apperrors.Validation("either address or latitude/longitude must be provided")
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, apperrors.Validation("date must be YYYY-MM-DD")
	}
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if date.Before(today) {
		return nil, apperrors.Validation("date must be today or later")
	}

	pet, err := s.PetRepo.GetByID(ctx, req.PetID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperrors.NotFound(fmt.Sprintf("pet %d not found", req.PetID))
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, apperrors.NotFound(fmt.Sprintf("pet %d not found", req.PetID))
	}

	msr := &db.MobileServiceRequest{
		Reference:   uuid.NewString(),
		PetID:       pet.ID,
		OwnerID:     ownerID,
		ServiceType: strings.TrimSpace(req.ServiceType),
		Date:        date,
		TimeOfDay:   strings.TrimSpace(req.TimeOfDay),
		Address:     strings.TrimSpace(req.Address),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      db.StatusPending,
	}

	if err := s.Repo.Create(ctx, msr); err != nil {
		return nil, err
	}
	resp := toMobileServiceResponse(msr)
	return &resp, nil
}

// CancelRequest cancels a mobile service request. Only Pending requests can
// be cancelled; once the clinic schedules the visit the owner has to call in.
// This rule is deliberately tighter than the clinic appointment one.
func (s *MobileServiceService) CancelRequest(ctx context.Context, ownerID, id int) error {
	msr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return apperrors.NotFound(fmt.Sprintf("mobile service request %d not found", id))
		}
		return err
	}
	if msr.OwnerID != ownerID {
		return apperrors.NotFound(fmt.Sprintf("mobile service request %d not found", id))
	}

	if msr.Status != db.StatusPending {
		return apperrors.InvalidState(fmt.Sprintf("mobile service request in status %s cannot be cancelled", msr.Status))
	}

	return s.Repo.UpdateStatus(ctx, id, db.StatusCancelled)
}

func (s *MobileServiceService) ListByOwner(ctx context.Context, ownerID int) ([]entities.MobileServiceResponse, error) {
	reqs, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.MobileServiceResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, toMobileServiceResponse(&reqs[i]))
	}
	return out, nil
}

func toMobileServiceResponse(msr *db.MobileServiceRequest) entities.MobileServiceResponse {
	return entities.MobileServiceResponse{
		ID:          msr.ID,
		Reference:   msr.Reference,
		PetID:       msr.PetID,
		OwnerID:     msr.OwnerID,
		ServiceType: msr.ServiceType,
		Date:        msr.Date.Format("2006-01-02"),
		TimeOfDay:   msr.TimeOfDay,
		Address:     msr.Address,
		Latitude:    msr.Latitude,
		Longitude:   msr.Longitude,
		Status:      msr.Status,
		CreatedAt:   msr.CreatedAt,
		UpdatedAt:   msr.UpdatedAt,
	}
}
