package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	"vetclinic/internal/repository"
)

// ReminderDeliverer sends one reminder and reports the outcome.
// *SenderService satisfies it; tests supply a fake.
type ReminderDeliverer interface {
	DeliverReminder(task db.ReminderTask, pet repository.PetWithOwner) error
}

// NotificationService runs the deworming/vaccine reminder batch. The batch is
// idempotent per (pet, task, cycle): a cycle already recorded as sent is
// skipped, a failed attempt is retried on the next run with a fresh history
// row.
type NotificationService struct {
	Repo    repository.NotificationRepository
	PetRepo repository.PetRepository
	Sender  ReminderDeliverer

	now func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, petRepo repository.PetRepository, sender ReminderDeliverer) *NotificationService {
	return &NotificationService{
		Repo:    repo,
		PetRepo: petRepo,
		Sender:  sender,
		now:     time.Now,
	}
}

// RunReminderBatch evaluates every reminder task against every pet of its
// species. Delivery failures are recorded and counted, never abort the batch.
func (s *NotificationService) RunReminderBatch(ctx context.Context) (*entities.BatchSummary, error) {
	tasks, err := s.Repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("reminder batch: failed to list tasks: %w", err)
	}

	summary := &entities.BatchSummary{}
	now := s.now()

	for _, task := range tasks {
		pets, err := s.PetRepo.ListBySpecies(ctx, task.Species)
		if err != nil {
			return nil, fmt.Errorf("reminder batch: failed to list %s pets for task %s: %w", task.Species, task.Name, err)
		}

		for _, pet := range pets {
			cycle, due := DueCycle(task, *pet.BirthDate, now)
			if !due {
				continue
			}
			summary.Due++

			alreadySent, err := s.Repo.HasSent(ctx, pet.ID, task.ID, cycle)
			if err != nil {
				log.Printf("Reminder batch: history check failed for pet %d task %s: %v", pet.ID, task.Name, err)
				summary.Failed++
				continue
			}
			if alreadySent {
				summary.Skipped++
				continue
			}

			record := &db.NotificationRecord{
				PetID:   pet.ID,
				TaskID:  task.ID,
				Cycle:   cycle,
				Channel: task.Channel,
				Status:  db.NotificationSent,
			}

			if err := s.Sender.DeliverReminder(task, pet); err != nil {
				log.Printf("Reminder batch: delivery failed for pet %d task %s cycle %d: %v", pet.ID, task.Name, cycle, err)
				record.Status = db.NotificationFailed
				record.Detail = err.Error()
				summary.Failed++
			} else {
				summary.Sent++
			}

			if err := s.Repo.Create(ctx, record); err != nil {
				// The attempt happened but the audit row is missing; the next
				// run may re-send this cycle.
				log.Printf("Reminder batch: failed to record attempt for pet %d task %s: %v", pet.ID, task.Name, err)
			}
		}
	}

	log.Printf("Reminder batch done: due=%d sent=%d failed=%d skipped=%d",
		summary.Due, summary.Sent, summary.Failed, summary.Skipped)
	return summary, nil
}

// DueCycle computes which reminder cycle, if any, is due for a pet born at
// birthDate. Cycle n falls due triggerAgeWeeks + n*repeatIntervalWeeks after
// birth; only the most recent elapsed cycle is reported, earlier missed ones
// are stale. One-shot tasks (interval 0) only ever have cycle 0.
func DueCycle(task db.ReminderTask, birthDate, now time.Time) (int, bool) {
	ageWeeks := int(now.Sub(birthDate).Hours() / (24 * 7))
	if ageWeeks < task.TriggerAgeWeeks {
		return 0, false
	}
	if task.RepeatIntervalWeeks <= 0 {
		return 0, true
	}
	return (ageWeeks - task.TriggerAgeWeeks) / task.RepeatIntervalWeeks, true
}
