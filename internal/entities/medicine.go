package entities

import "time"

type MedicineRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand,omitempty"`
	Category     string `json:"category,omitempty"`
	UnitPrice    int    `json:"unit_price"`
	Stock        int    `json:"stock"`
	ReorderLevel int    `json:"reorder_level"`
	ExpiresOn    string `json:"expires_on,omitempty"` // YYYY-MM-DD
}

type MedicineResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand,omitempty"`
	Category     string    `json:"category,omitempty"`
	UnitPrice    int       `json:"unit_price"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorder_level"`
	LowStock     bool      `json:"low_stock"`
	ExpiresOn    string    `json:"expires_on,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
