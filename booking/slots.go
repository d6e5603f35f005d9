package booking

import (
	"pulsefit/models"
)

// The studio runs two fixed sessions a day with three spots each.
const Capacity = 3

var Slots = []string{"morning", "midmorning"}

func ValidSlot(slot string) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// DeriveSlotState computes the availability view for one (date, slot) from
// its active bookings and waitlist entries. Pure: reads nothing, mutates
// nothing.
func DeriveSlotState(slot, display string, enabled bool, bookings []models.Booking, entries []models.WaitlistEntry, requesterID string) models.SlotState {
	state := models.SlotState{
		TimeSlot:      slot,
		TimeDisplay:   display,
		Enabled:       enabled,
		Occupants:     []models.Occupant{},
		Capacity:      Capacity,
		WaitlistCount: len(entries),
	}

	for _, b := range bookings {
		state.Occupants = append(state.Occupants, models.Occupant{
			UserID:   b.UserID,
			Initials: b.UserInitials,
		})
		if b.UserID == requesterID {
			state.UserBookingID = b.BookingID
		}
	}

	for _, e := range entries {
		if e.UserID == requesterID {
			state.UserWaitlistPos = e.Position
		}
	}

	state.AvailableSpots = Capacity - len(state.Occupants)
	if state.AvailableSpots < 0 {
		state.AvailableSpots = 0
	}
	state.IsFull = len(state.Occupants) >= Capacity
	return state
}
