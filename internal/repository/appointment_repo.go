package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vetclinic/internal/db"
)

// AppointmentRepository persists clinic appointments.
type AppointmentRepository interface {
	OccupiedSlots(ctx context.Context, date time.Time) ([]string, error)
	Create(ctx context.Context, appt *db.Appointment) error
	GetByID(ctx context.Context, id int) (*db.Appointment, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	List(ctx context.Context, date, status string) ([]db.Appointment, error)
	ListByOwner(ctx context.Context, ownerID int) ([]db.Appointment, error)
}

// ErrSlotConflict is returned by Create when the (date, slot) partial unique
// index rejects the insert, i.e. another non-cancelled appointment won the
// race for that slot.
var ErrSlotConflict = fmt.Errorf("slot already booked")

type appointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) AppointmentRepository {
	return &appointmentRepository{DB: database}
}

// OccupiedSlots returns the slot values of all non-cancelled appointments on
// the given date. Duplicates are collapsed by DISTINCT, so an anomalous
// double row still reads as a single occupied slot.
func (r *appointmentRepository) OccupiedSlots(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT slot
		FROM appointments
		WHERE date = $1 AND status <> $2
		ORDER BY slot`

	rows, err := r.DB.QueryContext(ctx, query, date.Format("2006-01-02"), db.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("error querying occupied slots: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("error scanning occupied slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating occupied slots: %w", err)
	}
	return slots, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appt *db.Appointment) error {
	query := `
		INSERT INTO appointments
		(reference, pet_id, owner_id, date, slot, reason, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		appt.Reference,
		appt.PetID,
		appt.OwnerID,
		appt.Date.Format("2006-01-02"),
		appt.Slot,
		appt.Reason,
		appt.Note,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err, "appointments_date_slot_active") {
			return ErrSlotConflict
		}
		return fmt.Errorf("error inserting appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int) (*db.Appointment, error) {
	var appt db.Appointment
	query := `
		SELECT id, reference, pet_id, owner_id, date, slot, reason, note, status, created_at, updated_at
		FROM appointments
		WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&appt.ID, &appt.Reference, &appt.PetID, &appt.OwnerID, &appt.Date,
		&appt.Slot, &appt.Reason, &appt.Note, &appt.Status, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("appointment %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating appointment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("appointment %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, date, status string) ([]db.Appointment, error) {
	query := `
	SELECT id, reference, pet_id, owner_id, date, slot, reason, note, status, created_at, updated_at
	FROM appointments
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += fmt.Sprintf(" AND date = $%d", idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY date DESC, slot"

	return r.queryAppointments(ctx, query, args...)
}

func (r *appointmentRepository) ListByOwner(ctx context.Context, ownerID int) ([]db.Appointment, error) {
	query := `
		SELECT id, reference, pet_id, owner_id, date, slot, reason, note, status, created_at, updated_at
		FROM appointments
		WHERE owner_id = $1
		ORDER BY date DESC, slot`
	return r.queryAppointments(ctx, query, ownerID)
}

func (r *appointmentRepository) queryAppointments(ctx context.Context, query string, args ...interface{}) ([]db.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer rows.Close()

	var appts []db.Appointment
	for rows.Next() {
		var appt db.Appointment
		err := rows.Scan(
			&appt.ID, &appt.Reference, &appt.PetID, &appt.OwnerID, &appt.Date,
			&appt.Slot, &appt.Reason, &appt.Note, &appt.Status, &appt.CreatedAt, &appt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appts = append(appts, appt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}
	return appts, nil
}
