package models

import "time"

// Booking statuses
const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
)

type Booking struct {
	BookingID    string    `json:"booking_id" bson:"bookingid"`
	UserID       string    `json:"user_id" bson:"userid"`
	UserName     string    `json:"user_name" bson:"username"`
	UserInitials string    `json:"user_initials" bson:"userinitials"`
	Date         string    `json:"date" bson:"date"` // YYYY-MM-DD
	TimeSlot     string    `json:"time_slot" bson:"timeslot"`
	TimeDisplay  string    `json:"time_display" bson:"timedisplay"`
	Status       string    `json:"status" bson:"status"`
	// CreditDebited records whether this booking actually consumed a credit,
	// so cancellation refunds exactly what was taken even if the owner's
	// unlimited status changed in between.
	CreditDebited  bool      `json:"credit_debited" bson:"creditdebited"`
	Recurring      bool      `json:"recurring,omitempty" bson:"recurring,omitempty"`
	WaitlistOrigin bool      `json:"waitlist_origin,omitempty" bson:"waitlistorigin,omitempty"`
	Reminder24Sent bool      `json:"-" bson:"reminder24sent"`
	Reminder1Sent  bool      `json:"-" bson:"reminder1sent"`
	CreatedAt      time.Time `json:"created_at" bson:"createdat"`
	CancelledAt    time.Time `json:"cancelled_at,omitempty" bson:"cancelledat,omitempty"`
}

type WaitlistEntry struct {
	WaitlistID   string    `json:"waitlist_id" bson:"waitlistid"`
	UserID       string    `json:"user_id" bson:"userid"`
	UserName     string    `json:"user_name" bson:"username"`
	UserInitials string    `json:"user_initials" bson:"userinitials"`
	Date         string    `json:"date" bson:"date"`
	TimeSlot     string    `json:"time_slot" bson:"timeslot"`
	Position     int       `json:"position" bson:"position"`
	CreatedAt    time.Time `json:"created_at" bson:"createdat"`
}

// SlotState is the derived availability view for one (date, slot).
type SlotState struct {
	TimeSlot         string     `json:"time_slot"`
	TimeDisplay      string     `json:"time_display"`
	Enabled          bool       `json:"enabled"`
	Occupants        []Occupant `json:"occupants"`
	Capacity         int        `json:"capacity"`
	AvailableSpots   int        `json:"available_spots"`
	IsFull           bool       `json:"is_full"`
	WaitlistCount    int        `json:"waitlist_count"`
	UserBookingID    string     `json:"user_booking_id,omitempty"`
	UserWaitlistPos  int        `json:"user_waitlist_position,omitempty"`
}

type Occupant struct {
	UserID   string `json:"user_id"`
	Initials string `json:"initials"`
}

// RecurringSummary reports the per-week outcome of a recurring booking run.
type RecurringSummary struct {
	Booked     []string          `json:"booked"`
	Waitlisted []string          `json:"waitlisted"`
	Failed     []RecurringFailed `json:"failed,omitempty"`
	Halted     bool              `json:"halted,omitempty"`
}

type RecurringFailed struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}
