package models

import "time"

// Domain event names published to the notification channel.
const (
	EventBookingConfirmed = "booking-confirmed"
	EventBookingCancelled = "booking-cancelled"
	EventWaitlistJoined   = "waitlist-joined"
	EventWaitlistPromoted = "waitlist-promoted"
	EventWaitlistDropped  = "waitlist-dropped"
	EventCreditsConfirmed = "credits-confirmed"
	EventReminder24h      = "reminder-24h"
	EventReminder1h       = "reminder-1h"
)

// Event is the payload carried on the booking-events channel. Emission is
// fire-and-forget after the state change commits.
type Event struct {
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	BookingID string    `json:"booking_id,omitempty"`
	Date      string    `json:"date,omitempty"`
	TimeSlot  string    `json:"time_slot,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	NotificationID string    `json:"notification_id" bson:"notificationid"`
	UserID         string    `json:"user_id" bson:"userid"`
	Event          string    `json:"event" bson:"event"`
	Message        string    `json:"message" bson:"message"`
	Date           string    `json:"date,omitempty" bson:"date,omitempty"`
	TimeSlot       string    `json:"time_slot,omitempty" bson:"timeslot,omitempty"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"created_at" bson:"createdat"`
}
