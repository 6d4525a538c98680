package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"vetclinic/internal/db"
	"vetclinic/internal/repository"
)

// mockAppointmentRepo simulates the appointments table, including the
// partial unique index on (date, slot) for non-cancelled rows.
type mockAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[int]*db.Appointment
	nextID       int
	createErr    error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: map[int]*db.Appointment{}, nextID: 1}
}

func (m *mockAppointmentRepo) OccupiedSlots(ctx context.Context, date time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := date.Format("2006-01-02")
	seen := map[string]struct{}{}
	var slots []string
	for _, appt := range m.appointments {
		if appt.Date.Format("2006-01-02") == day && appt.Status != db.StatusCancelled {
			if _, ok := seen[appt.Slot]; !ok {
				seen[appt.Slot] = struct{}{}
				slots = append(slots, appt.Slot)
			}
		}
	}
	return slots, nil
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *db.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	day := appt.Date.Format("2006-01-02")
	for _, existing := range m.appointments {
		if existing.Date.Format("2006-01-02") == day && existing.Slot == appt.Slot &&
			existing.Status != db.StatusCancelled {
			return repository.ErrSlotConflict
		}
	}

	appt.ID = m.nextID
	m.nextID++
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	stored := *appt
	m.appointments[appt.ID] = &stored
	return nil
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int) (*db.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	appt, ok := m.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %d not found: %w", id, sql.ErrNoRows)
	}
	copied := *appt
	return &copied, nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	appt, ok := m.appointments[id]
	if !ok {
		return fmt.Errorf("appointment %d not found: %w", id, sql.ErrNoRows)
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	return nil
}

func (m *mockAppointmentRepo) List(ctx context.Context, date, status string) ([]db.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []db.Appointment
	for _, appt := range m.appointments {
		if date != "" && appt.Date.Format("2006-01-02") != date {
			continue
		}
		if status != "" && appt.Status != status {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

func (m *mockAppointmentRepo) ListByOwner(ctx context.Context, ownerID int) ([]db.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []db.Appointment
	for _, appt := range m.appointments {
		if appt.OwnerID == ownerID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

type mockPetRepo struct {
	pets      map[int]*db.Pet
	bySpecies []repository.PetWithOwner
	deleteErr error
	nextID    int
}

func newMockPetRepo() *mockPetRepo {
	return &mockPetRepo{pets: map[int]*db.Pet{}, nextID: 1}
}

func (m *mockPetRepo) Create(ctx context.Context, pet *db.Pet) error {
	pet.ID = m.nextID
	m.nextID++
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt
	stored := *pet
	m.pets[pet.ID] = &stored
	return nil
}

func (m *mockPetRepo) GetByID(ctx context.Context, id int) (*db.Pet, error) {
	pet, ok := m.pets[id]
	if !ok {
		return nil, fmt.Errorf("pet %d not found: %w", id, sql.ErrNoRows)
	}
	copied := *pet
	return &copied, nil
}

func (m *mockPetRepo) ListByOwner(ctx context.Context, ownerID int) ([]db.Pet, error) {
	var out []db.Pet
	for _, pet := range m.pets {
		if pet.OwnerID == ownerID {
			out = append(out, *pet)
		}
	}
	return out, nil
}

func (m *mockPetRepo) ListBySpecies(ctx context.Context, species string) ([]repository.PetWithOwner, error) {
	var out []repository.PetWithOwner
	for _, pet := range m.bySpecies {
		if pet.Species == species {
			out = append(out, pet)
		}
	}
	return out, nil
}

func (m *mockPetRepo) Update(ctx context.Context, pet *db.Pet) error {
	if _, ok := m.pets[pet.ID]; !ok {
		return fmt.Errorf("pet %d not found: %w", pet.ID, sql.ErrNoRows)
	}
	pet.UpdatedAt = time.Now()
	stored := *pet
	m.pets[pet.ID] = &stored
	return nil
}

func (m *mockPetRepo) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.pets[id]; !ok {
		return fmt.Errorf("pet %d not found: %w", id, sql.ErrNoRows)
	}
	delete(m.pets, id)
	return nil
}

type mockOwnerRepo struct {
	owners map[int]*db.Owner
	nextID int
}

func newMockOwnerRepo() *mockOwnerRepo {
	return &mockOwnerRepo{owners: map[int]*db.Owner{}, nextID: 1}
}

func (m *mockOwnerRepo) Create(ctx context.Context, owner *db.Owner) error {
	for _, existing := range m.owners {
		if existing.Email == owner.Email {
			return repository.ErrEmailTaken
		}
	}
	owner.ID = m.nextID
	m.nextID++
	owner.CreatedAt = time.Now()
	stored := *owner
	m.owners[owner.ID] = &stored
	return nil
}

func (m *mockOwnerRepo) GetByEmail(ctx context.Context, email string) (*db.Owner, error) {
	for _, owner := range m.owners {
		if owner.Email == email {
			copied := *owner
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockOwnerRepo) GetByID(ctx context.Context, id int) (*db.Owner, error) {
	owner, ok := m.owners[id]
	if !ok {
		return nil, fmt.Errorf("owner %d not found: %w", id, sql.ErrNoRows)
	}
	copied := *owner
	return &copied, nil
}

type mockMobileRepo struct {
	requests map[int]*db.MobileServiceRequest
	nextID   int
}

func newMockMobileRepo() *mockMobileRepo {
	return &mockMobileRepo{requests: map[int]*db.MobileServiceRequest{}, nextID: 1}
}

func (m *mockMobileRepo) Create(ctx context.Context, req *db.MobileServiceRequest) error {
	req.ID = m.nextID
	m.nextID++
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *mockMobileRepo) GetByID(ctx context.Context, id int) (*db.MobileServiceRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("mobile service request %d not found: %w", id, sql.ErrNoRows)
	}
	copied := *req
	return &copied, nil
}

func (m *mockMobileRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	req, ok := m.requests[id]
	if !ok {
		return fmt.Errorf("mobile service request %d not found: %w", id, sql.ErrNoRows)
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (m *mockMobileRepo) ListByOwner(ctx context.Context, ownerID int) ([]db.MobileServiceRequest, error) {
	var out []db.MobileServiceRequest
	for _, req := range m.requests {
		if req.OwnerID == ownerID {
			out = append(out, *req)
		}
	}
	return out, nil
}

type mockNotificationRepo struct {
	tasks     []db.ReminderTask
	sent      map[string]bool
	records   []db.NotificationRecord
	createErr error
}

func newMockNotificationRepo(tasks ...db.ReminderTask) *mockNotificationRepo {
	return &mockNotificationRepo{tasks: tasks, sent: map[string]bool{}}
}

func sentKey(petID, taskID, cycle int) string {
	return fmt.Sprintf("%d-%d-%d", petID, taskID, cycle)
}

func (m *mockNotificationRepo) ListTasks(ctx context.Context) ([]db.ReminderTask, error) {
	return m.tasks, nil
}

func (m *mockNotificationRepo) HasSent(ctx context.Context, petID, taskID, cycle int) (bool, error) {
	return m.sent[sentKey(petID, taskID, cycle)], nil
}

func (m *mockNotificationRepo) Create(ctx context.Context, record *db.NotificationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = len(m.records) + 1
	record.SentAt = time.Now()
	m.records = append(m.records, *record)
	if record.Status == db.NotificationSent {
		m.sent[sentKey(record.PetID, record.TaskID, record.Cycle)] = true
	}
	return nil
}
