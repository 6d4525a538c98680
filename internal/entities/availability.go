package entities

// SlotAvailability is one entry of the availability response: a canonical
// clinic slot and whether it can still be booked for the requested date.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}
