package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/repository"
)

// AppointmentNotifier is what the service needs from the sender side.
// *SenderService satisfies it; tests use a no-op.
type AppointmentNotifier interface {
	NotifyAppointment(owner *db.Owner, pet *db.Pet, appt *db.Appointment, status string)
}

type AppointmentService struct {
	Repo      repository.AppointmentRepository
	PetRepo   repository.PetRepository
	OwnerRepo repository.OwnerRepository
	Notifier  AppointmentNotifier

	loc *time.Location
	now func() time.Time
}

func NewAppointmentService(repo repository.AppointmentRepository, petRepo repository.PetRepository,
	ownerRepo repository.OwnerRepository, notifier AppointmentNotifier, loc *time.Location) *AppointmentService {
	return &AppointmentService{
		Repo:      repo,
		PetRepo:   petRepo,
		OwnerRepo: ownerRepo,
		Notifier:  notifier,
		loc:       loc,
		now:       time.Now,
	}
}

// CheckAvailability returns, for every canonical slot on the date, whether it
// is still free. Read-only; the result can go stale before a booking lands,
// which is why CreateAppointment does not trust it.
func (s *AppointmentService) CheckAvailability(ctx context.Context, dateStr string) (*entities.AvailabilityResponse, error) {
	date, err := s.parseBookableDate(dateStr)
	if err != nil {
		return nil, err
	}

	occupied, err := s.Repo.OccupiedSlots(ctx, date)
	if err != nil {
		log.Printf("Error from OccupiedSlots: %v", err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	return &entities.AvailabilityResponse{
		Date:  date.Format("2006-01-02"),
		Slots: BuildSlotAvailability(occupied),
	}, nil
}

// CreateAppointment books a slot. Validation happens before any insert; the
// double-booking guard is the partial unique index on (date, slot), surfaced
// here as a SlotConflict when the insert loses the race.
func (s *AppointmentService) CreateAppointment(ctx context.Context, ownerID int, req entities.CreateAppointmentRequest) (*entities.CreateAppointmentResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.Validation("reason must not be empty")
	}
	if !IsClinicSlot(req.Slot) {
		return nil, apperrors.Validation(fmt.Sprintf("slot %q is not a bookable clinic slot", req.Slot))
	}
	date, err := s.parseBookableDate(req.Date)
	if err != nil {
		return nil, err
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

	appt := &db.Appointment{
		Reference: uuid.NewString(),
		PetID:     pet.ID,
		OwnerID:   ownerID,
		Date:      date,
		Slot:      req.Slot,
		Reason:    strings.TrimSpace(req.Reason),
		Note:      strings.TrimSpace(req.Note),
		Status:    db.StatusScheduled,
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotConflict) {
			return nil, apperrors.SlotConflict(fmt.Sprintf("slot %s on %s is already booked", appt.Slot, req.Date))
		}
		log.Printf("Error creating appointment in repository: %v", err)
		return nil, err
	}

	s.notify(ctx, pet, appt, "confirmed")

	return &entities.CreateAppointmentResponse{
		ID:        appt.ID,
		Reference: appt.Reference,
		Status:    appt.Status,
	}, nil
}

// CancelAppointment moves an appointment to Cancelled. Only Scheduled or
// Pending appointments can be cancelled; cancelling a Completed or
// already-Cancelled one fails, it is not idempotent.
func (s *AppointmentService) CancelAppointment(ctx context.Context, ownerID, id int) error {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return apperrors.NotFound(fmt.Sprintf("appointment %d not found", id))
		}
		return err
	}
	if appt.OwnerID != ownerID {
		return apperrors.NotFound(fmt.Sprintf("appointment %d not found", id))
	}

	if appt.Status != db.StatusScheduled && appt.Status != db.StatusPending {
		return apperrors.InvalidState(fmt.Sprintf("appointment in status %s cannot be cancelled", appt.Status))
	}

	if err := s.Repo.UpdateStatus(ctx, id, db.StatusCancelled); err != nil {
		return err
	}
	appt.Status = db.StatusCancelled

	pet, err := s.PetRepo.GetByID(ctx, appt.PetID)
	if err == nil {
		s.notify(ctx, pet, appt, "cancelled")
	}
	return nil
}

func (s *AppointmentService) ListByOwner(ctx context.Context, ownerID int) ([]entities.AppointmentResponse, error) {
	appts, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appts), nil
}

func (s *AppointmentService) ListAll(ctx context.Context, date, status string) ([]entities.AppointmentResponse, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, apperrors.Validation("date must be YYYY-MM-DD")
		}
	}
	appts, err := s.Repo.List(ctx, date, status)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appts), nil
}

func (s *AppointmentService) notify(ctx context.Context, pet *db.Pet, appt *db.Appointment, status string) {
	if s.Notifier == nil {
		return
	}
	owner, err := s.OwnerRepo.GetByID(ctx, appt.OwnerID)
	if err != nil {
		log.Printf("WARNING: appointment %s saved, but owner lookup for notification failed: %v", appt.Reference, err)
		return
	}
	s.Notifier.NotifyAppointment(owner, pet, appt, status)
}

// parseBookableDate parses YYYY-MM-DD and rejects dates before today in the
// clinic's timezone.
func (s *AppointmentService) parseBookableDate(dateStr string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return time.Time{}, apperrors.Validation("date must be YYYY-MM-DD")
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if date.Before(today) {
		return time.Time{}, apperrors.Validation("date must be today or later")
	}
	return date, nil
}

func toAppointmentResponses(appts []db.Appointment) []entities.AppointmentResponse {
	out := make([]entities.AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		out = append(out, entities.AppointmentResponse{
			ID:        appt.ID,
			Reference: appt.Reference,
			PetID:     appt.PetID,
			OwnerID:   appt.OwnerID,
			Date:      appt.Date.Format("2006-01-02"),
			Slot:      appt.Slot,
			Reason:    appt.Reason,
			Note:      appt.Note,
			Status:    appt.Status,
			CreatedAt: appt.CreatedAt,
			UpdatedAt: appt.UpdatedAt,
		})
	}
	return out
}
