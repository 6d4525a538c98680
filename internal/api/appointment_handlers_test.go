package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/auth"
	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	"vetclinic/internal/repository"
	"vetclinic/internal/service"
)

// stubAppointmentRepo backs handler tests with a single in-memory appointment
// and a fixed occupied-slot set.
type stubAppointmentRepo struct {
	occupied  []string
	appt      *db.Appointment
	createErr error
	updated   string
}

func (s *stubAppointmentRepo) OccupiedSlots(ctx context.Context, date time.Time) ([]string, error) {
	return s.occupied, nil
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appt *db.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	appt.ID = 1
	s.appt = appt
	return nil
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id int) (*db.Appointment, error) {
	if s.appt == nil || s.appt.ID != id {
		return nil, fmt.Errorf("appointment %d not found: %w", id, sql.ErrNoRows)
	}
	copied := *s.appt
	return &copied, nil
}

func (s *stubAppointmentRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	s.updated = status
	return nil
}

func (s *stubAppointmentRepo) List(ctx context.Context, date, status string) ([]db.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) ListByOwner(ctx context.Context, ownerID int) ([]db.Appointment, error) {
	if s.appt != nil && s.appt.OwnerID == ownerID {
		return []db.Appointment{*s.appt}, nil
	}
	return nil, nil
}

type stubPetRepo struct {
	pet *db.Pet
}

func (s *stubPetRepo) Create(ctx context.Context, pet *db.Pet) error { return nil }

func (s *stubPetRepo) GetByID(ctx context.Context, id int) (*db.Pet, error) {
	if s.pet == nil || s.pet.ID != id {
		return nil, fmt.Errorf("pet %d not found: %w", id, sql.ErrNoRows)
	}
	return s.pet, nil
}

func (s *stubPetRepo) ListByOwner(ctx context.Context, ownerID int) ([]db.Pet, error) {
	return nil, nil
}

func (s *stubPetRepo) ListBySpecies(ctx context.Context, species string) ([]repository.PetWithOwner, error) {
	return nil, nil
}

func (s *stubPetRepo) Update(ctx context.Context, pet *db.Pet) error { return nil }
func (s *stubPetRepo) Delete(ctx context.Context, id int) error      { return nil }

type stubOwnerRepo struct{}

func (stubOwnerRepo) Create(ctx context.Context, owner *db.Owner) error { return nil }
func (stubOwnerRepo) GetByEmail(ctx context.Context, email string) (*db.Owner, error) {
	return nil, nil
}
func (stubOwnerRepo) GetByID(ctx context.Context, id int) (*db.Owner, error) {
	return &db.Owner{ID: id, Name: "Ana", Email: "ana@example.com"}, nil
}

func newTestHandler(repo *stubAppointmentRepo, pets *stubPetRepo) *AppointmentHandler {
	svc := service.NewAppointmentService(repo, pets, stubOwnerRepo{}, nil, time.UTC)
	return NewAppointmentHandler(svc)
}

func futureDate() string {
	return time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02")
}

func authed(req *http.Request, ownerID int) *http.Request {
	return req.WithContext(auth.WithOwnerID(req.Context(), ownerID))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCheckAvailabilityHandler(t *testing.T) {
	handler := newTestHandler(&stubAppointmentRepo{occupied: []string{"10:00"}}, &stubPetRepo{})

	date := futureDate()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/availability?date="+date, nil)
	rec := httptest.NewRecorder()
	handler.CheckAvailability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp entities.AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, date, resp.Date)
	require.Len(t, resp.Slots, len(service.ClinicSlots))
	for _, slot := range resp.Slots {
		assert.Equal(t, slot.Slot != "10:00", slot.Available)
	}
}

func TestCheckAvailabilityHandlerMissingDate(t *testing.T) {
	handler := newTestHandler(&stubAppointmentRepo{}, &stubPetRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/availability", nil)
	rec := httptest.NewRecorder()
	handler.CheckAvailability(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationError", decodeError(t, rec).Error)
}

func TestCreateAppointmentHandler(t *testing.T) {
	repo := &stubAppointmentRepo{}
	pets := &stubPetRepo{pet: &db.Pet{ID: 3, OwnerID: 7, Name: "Firulais"}}
	handler := newTestHandler(repo, pets)

	body, _ := json.Marshal(entities.CreateAppointmentRequest{
		PetID:  3,
		Date:   futureDate(),
		Slot:   "09:00",
		Reason: "checkup",
	})
	req := authed(httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	handler.CreateAppointment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp entities.CreateAppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, db.StatusScheduled, resp.Status)
	assert.NotEmpty(t, resp.Reference)
}

func TestCreateAppointmentHandlerUnauthenticated(t *testing.T) {
	handler := newTestHandler(&stubAppointmentRepo{}, &stubPetRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	handler.CreateAppointment(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeError(t, rec).Error)
}

func TestCreateAppointmentHandlerBadBody(t *testing.T) {
	handler := newTestHandler(&stubAppointmentRepo{}, &stubPetRepo{})

	req := authed(httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{not json"))), 7)
	rec := httptest.NewRecorder()
	handler.CreateAppointment(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationError", decodeError(t, rec).Error)
}

func TestCreateAppointmentHandlerSlotConflict(t *testing.T) {
	repo := &stubAppointmentRepo{createErr: repository.ErrSlotConflict}
	pets := &stubPetRepo{pet: &db.Pet{ID: 3, OwnerID: 7}}
	handler := newTestHandler(repo, pets)

	body, _ := json.Marshal(entities.CreateAppointmentRequest{
		PetID:  3,
		Date:   futureDate(),
		Slot:   "09:00",
		Reason: "checkup",
	})
	req := authed(httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	handler.CreateAppointment(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SlotConflict", decodeError(t, rec).Error)
}

func TestCancelAppointmentHandler(t *testing.T) {
	repo := &stubAppointmentRepo{appt: &db.Appointment{ID: 1, OwnerID: 7, PetID: 3, Status: db.StatusScheduled}}
	handler := newTestHandler(repo, &stubPetRepo{pet: &db.Pet{ID: 3, OwnerID: 7}})

	router := mux.NewRouter()
	router.HandleFunc("/api/appointments/{id}/cancel", handler.CancelAppointment).Methods(http.MethodPost)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/appointments/1/cancel", nil), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, db.StatusCancelled, repo.updated)
}

func TestCancelAppointmentHandlerCompleted(t *testing.T) {
	repo := &stubAppointmentRepo{appt: &db.Appointment{ID: 1, OwnerID: 7, Status: db.StatusCompleted}}
	handler := newTestHandler(repo, &stubPetRepo{})

	router := mux.NewRouter()
	router.HandleFunc("/api/appointments/{id}/cancel", handler.CancelAppointment).Methods(http.MethodPost)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/appointments/1/cancel", nil), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "InvalidStateTransition", decodeError(t, rec).Error)
}

func TestCancelAppointmentHandlerNotFound(t *testing.T) {
	handler := newTestHandler(&stubAppointmentRepo{}, &stubPetRepo{})

	router := mux.NewRouter()
	router.HandleFunc("/api/appointments/{id}/cancel", handler.CancelAppointment).Methods(http.MethodPost)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/appointments/99/cancel", nil), 7)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decodeError(t, rec).Error)
}
