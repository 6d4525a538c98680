package entities

import "time"

type CreateAppointmentRequest struct {
	PetID  int    `json:"pet_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Slot   string `json:"slot"` // HH:MM, one of the canonical slots
	Reason string `json:"reason"`
	Note   string `json:"note,omitempty"`
}

type CreateAppointmentResponse struct {
	ID        int    `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type AppointmentResponse struct {
	ID        int       `json:"id"`
	Reference string    `json:"reference"`
	PetID     int       `json:"pet_id"`
	PetName   string    `json:"pet_name,omitempty"`
	OwnerID   int       `json:"owner_id"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Reason    string    `json:"reason"`
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
