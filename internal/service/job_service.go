package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"vetclinic/internal/db"
	"vetclinic/internal/repository"
)

type JobService struct {
	Repo repository.JobRepository

	loc *time.Location
	now func() time.Time
}

func NewJobService(repo repository.JobRepository, loc *time.Location) *JobService {
	return &JobService{Repo: repo, loc: loc, now: time.Now}
}

// CompletePastAppointments marks Scheduled appointments whose date has passed
// as Completed. Runs nightly from cron.
func (s *JobService) CompletePastAppointments(ctx context.Context) error {
	log.Println("Cron Job: Checking for appointments to mark as 'Completed'...")

	today := s.now().In(s.loc).Format("2006-01-02")
	ids, err := s.Repo.GetScheduledIDsBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("cron job: failed to get scheduled appointments past their date: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No scheduled appointments found past their date.")
		return nil
	}

	log.Printf("Cron Job: Found %d appointments to mark as 'Completed'. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateAppointmentStatuses(ctx, ids, db.StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d appointments to 'Completed'.", len(ids))
	return nil
}
