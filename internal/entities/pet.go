package entities

import "time"

type PetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed,omitempty"`
	BirthDate string `json:"birth_date,omitempty"` // YYYY-MM-DD
	Allergies string `json:"allergies,omitempty"`
	DietNotes string `json:"diet_notes,omitempty"`
}

type PetResponse struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	BirthDate string    `json:"birth_date,omitempty"`
	Allergies string    `json:"allergies,omitempty"`
	DietNotes string    `json:"diet_notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
