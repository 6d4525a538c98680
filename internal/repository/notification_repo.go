package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetclinic/internal/db"
)

// NotificationRepository reads reminder task templates and appends to the
// notification history. History rows are never updated; a retry after a
// failure creates a new row.
type NotificationRepository interface {
	ListTasks(ctx context.Context) ([]db.ReminderTask, error)
	HasSent(ctx context.Context, petID, taskID, cycle int) (bool, error)
	Create(ctx context.Context, record *db.NotificationRecord) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(database *sql.DB) NotificationRepository {
	return &notificationRepository{DB: database}
}

func (r *notificationRepository) ListTasks(ctx context.Context) ([]db.ReminderTask, error) {
	query := `
		SELECT id, name, species, trigger_age_weeks, repeat_interval_weeks, channel, message
		FROM reminder_tasks
		ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying reminder tasks: %w", err)
	}
	defer rows.Close()

	var tasks []db.ReminderTask
	for rows.Next() {
		var task db.ReminderTask
		err := rows.Scan(
			&task.ID, &task.Name, &task.Species, &task.TriggerAgeWeeks,
			&task.RepeatIntervalWeeks, &task.Channel, &task.Message,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reminder task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder tasks: %w", err)
	}
	return tasks, nil
}

// HasSent reports whether a sent record already exists for the cycle. Failed
// records do not count, so the next batch run retries them.
func (r *notificationRepository) HasSent(ctx context.Context, petID, taskID, cycle int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notification_history
			WHERE pet_id = $1 AND task_id = $2 AND cycle = $3 AND status = $4
		)`

	var exists bool
	err := r.DB.QueryRowContext(ctx, query, petID, taskID, cycle, db.NotificationSent).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking notification history: %w", err)
	}
	return exists, nil
}

func (r *notificationRepository) Create(ctx context.Context, record *db.NotificationRecord) error {
	query := `
		INSERT INTO notification_history (pet_id, task_id, cycle, channel, status, detail, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, sent_at`

	err := r.DB.QueryRowContext(ctx, query,
		record.PetID, record.TaskID, record.Cycle, record.Channel, record.Status, record.Detail,
	).Scan(&record.ID, &record.SentAt)
	if err != nil {
		return fmt.Errorf("error inserting notification record: %w", err)
	}
	return nil
}
