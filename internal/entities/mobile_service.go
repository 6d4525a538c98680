package entities

import "time"

type CreateMobileServiceRequest struct {
	PetID       int      `json:"pet_id"`
	ServiceType string   `json:"service_type"`
	Date        string   `json:"date"` // YYYY-MM-DD
	TimeOfDay   string   `json:"time_of_day,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type MobileServiceResponse struct {
	ID          int       `json:"id"`
	Reference   string    `json:"reference"`
	PetID       int       `json:"pet_id"`
	OwnerID     int       `json:"owner_id"`
	ServiceType string    `json:"service_type"`
	Date        string    `json:"date"`
	TimeOfDay   string    `json:"time_of_day,omitempty"`
	Address     string    `json:"address,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
