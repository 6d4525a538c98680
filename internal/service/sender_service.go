package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	"vetclinic/internal/repository"
)

// EmailSender delivers a composed email. Swappable in tests; the real one is
// SendEmailWithSendGrid.
type EmailSender func(toEmail, toName, subject, plainBody, htmlBody string) error

// SMSSender delivers a composed SMS. The real one is SendSMS (Twilio).
type SMSSender func(toNumber, body string) error

type SenderService struct {
	sendEmail EmailSender
	sendSMS   SMSSender
	loc       *time.Location
}

func NewSenderService(loc *time.Location) *SenderService {
	return &SenderService{
		sendEmail: SendEmailWithSendGrid,
		sendSMS:   SendSMS,
		loc:       loc,
	}
}

// NotifyAppointment sends the booking confirmation or cancellation email in
// the background. Delivery failures are logged, never surfaced to the caller;
// the appointment row is already committed.
func (s *SenderService) NotifyAppointment(owner *db.Owner, pet *db.Pet, appt *db.Appointment, status string) {
	emailData := entities.ConfirmationEmailData{
		OwnerName:     owner.Name,
		PetName:       pet.Name,
		Reference:     appt.Reference,
		DateFormatted: appt.Date.In(s.loc).Format("02 Jan 2006"),
		Slot:          appt.Slot,
		Status:        status,
		CurrentYear:   time.Now().In(s.loc).Year(),
	}

	emailSubject := fmt.Sprintf("Your VetClinic appointment is %s - Ref: %s", status, emailData.Reference)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour appointment at VetClinic is %s.\n\n"+
			"Appointment details:\n"+
			"Reference: %s\n"+
			"Pet: %s\n"+
			"Date: %s\n"+
			"Time: %s\n\n"+
			"Thank you for choosing VetClinic.",
		emailData.OwnerName, status, emailData.Reference, emailData.PetName,
		emailData.DateFormatted, emailData.Slot,
	)

	htmlBody := s.renderTemplate("appointment_email.html", emailData)

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := s.sendEmail(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("WARNING (async): confirmation email for appointment %s failed: %v", emailData.Reference, err)
		}
	}(owner.Email, owner.Name, emailSubject, plainTextBody, htmlBody)
}

// DeliverReminder sends one reminder synchronously so the batch can record
// the outcome per attempt. Channel "sms" goes to Twilio, anything else to
// SendGrid.
func (s *SenderService) DeliverReminder(task db.ReminderTask, pet repository.PetWithOwner) error {
	if task.Channel == "sms" {
		body := fmt.Sprintf("VetClinic: %s (pet: %s)", task.Message, pet.Name)
		return s.sendSMS(pet.OwnerPhone, body)
	}

	emailData := entities.ReminderEmailData{
		OwnerName:   pet.OwnerName,
		PetName:     pet.Name,
		TaskName:    task.Name,
		Message:     task.Message,
		CurrentYear: time.Now().In(s.loc).Year(),
	}

	subject := fmt.Sprintf("VetClinic reminder for %s", pet.Name)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\n%s\n\nPet: %s\n\n"+
			"Please book an appointment at your convenience.\n\n"+
			"VetClinic.",
		emailData.OwnerName, emailData.Message, emailData.PetName,
	)
	htmlBody := s.renderTemplate("reminder_email.html", emailData)

	return s.sendEmail(pet.OwnerEmail, pet.OwnerName, subject, plainTextBody, htmlBody)
}

func (s *SenderService) renderTemplate(name string, data interface{}) string {
	tmplPath := filepath.Join("internal", "templates", name)
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARNING: could not parse email template (%s): %v", tmplPath, err)
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("WARNING: could not execute email template (%s): %v", tmplPath, err)
		return ""
	}
	return buf.String()
}
