package db

import "time"

// Appointment statuses. A row is never deleted; it only moves
// Scheduled/Pending -> Completed or Cancelled.
const (
	StatusScheduled = "Scheduled"
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Notification history statuses.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

type Owner struct {
	ID           int
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

type Pet struct {
	ID        int
	OwnerID   int
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
	Allergies string
	DietNotes string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Appointment struct {
	ID        int
	Reference string
	PetID     int
	OwnerID   int
	Date      time.Time
	Slot      string
	Reason    string
	Note      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MobileServiceRequest struct {
	ID          int
	Reference   string
	PetID       int
	OwnerID     int
	ServiceType string
	Date        time.Time
	TimeOfDay   string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Medicine struct {
	ID           int
	Name         string
	Brand        string
	Category     string
	UnitPrice    int
	Stock        int
	ReorderLevel int
	ExpiresOn    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReminderTask is a reminder rule template: first due trigger_age_weeks after
// the pet's birth, then every repeat_interval_weeks (0 means one-shot).
type ReminderTask struct {
	ID                  int
	Name                string
	Species             string
	TriggerAgeWeeks     int
	RepeatIntervalWeeks int
	Channel             string
	Message             string
}

// NotificationRecord is an append-only audit row, one per delivery attempt.
type NotificationRecord struct {
	ID      int
	PetID   int
	TaskID  int
	Cycle   int
	Channel string
	Status  string
	Detail  string
	SentAt  time.Time
}
