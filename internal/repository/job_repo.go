package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

// JobRepository backs the cron maintenance jobs.
type JobRepository interface {
	GetScheduledIDsBefore(ctx context.Context, date string) ([]int, error)
	UpdateAppointmentStatuses(ctx context.Context, ids []int, newStatus string) error
}

type jobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) JobRepository {
	return &jobRepository{DB: database}
}

// GetScheduledIDsBefore returns IDs of Scheduled appointments whose date is
// already behind the clinic's current date.
func (r *jobRepository) GetScheduledIDsBefore(ctx context.Context, date string) ([]int, error) {
	query := `SELECT id FROM appointments WHERE status = 'Scheduled' AND date < $1`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("error querying scheduled appointments past date: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning appointment ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *jobRepository) UpdateAppointmentStatuses(ctx context.Context, ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating appointment statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d appointments to '%s'", rowsAffected, newStatus)
	}
	return nil
}
