package service

import (
	"vetclinic/internal/entities"
)

// ClinicSlots is the canonical ordered set of bookable times per day.
// Hourly consultations with a lunch gap at 13:00.
var ClinicSlots = []string{
	"09:00",
	"10:00",
	"11:00",
	"12:00",
	"14:00",
	"15:00",
	"16:00",
	"17:00",
}

// IsClinicSlot reports whether slot is a member of the canonical slot set.
func IsClinicSlot(slot string) bool {
	for _, s := range ClinicSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// BuildSlotAvailability derives the availability list for one date from the
// occupied slot values of its non-cancelled appointments. Every canonical
// slot appears exactly once, in order; a slot occupied more than once (a data
// anomaly the unique index should prevent) still reads as occupied once.
func BuildSlotAvailability(occupied []string) []entities.SlotAvailability {
	occupiedSet := make(map[string]struct{}, len(occupied))
	for _, slot := range occupied {
		occupiedSet[slot] = struct{}{}
	}

	result := make([]entities.SlotAvailability, 0, len(ClinicSlots))
	for _, slot := range ClinicSlots {
		_, taken := occupiedSet[slot]
		result = append(result, entities.SlotAvailability{
			Slot:      slot,
			Available: !taken,
		})
	}
	return result
}
