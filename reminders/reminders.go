// Package reminders runs the background scan that nudges clients before
// their sessions. It only flips flags and emits events; delivery is the
// notification pipeline's problem.
package reminders

import (
	"context"
	"fmt"
	"log"
	"time"

	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/mq"
	"pulsefit/utils"
	"pulsefit/waitlist"

	"go.mongodb.org/mongo-driver/bson"
)

// Start polls upcoming bookings and prunes expired waitlist entries.
func Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		now := time.Now().UTC()
		scan(now)

		if n, err := waitlist.PurgeExpired(context.Background(), now); err != nil {
			log.Printf("[Reminders] waitlist purge error: %v", err)
		} else if n > 0 {
			log.Printf("[Reminders] purged %d expired waitlist entries", n)
		}

		if n, err := waitlist.RepairPositions(context.Background()); err != nil {
			log.Printf("[Reminders] waitlist repair error: %v", err)
		} else if n > 0 {
			log.Printf("[Reminders] repaired %d waitlist positions", n)
		}
	}
}

// scan emits a 24h reminder for tomorrow's sessions and a 1h-style
// same-day reminder, once each per booking.
func scan(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := now.Format(utils.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(utils.DateLayout)

	remind(ctx, tomorrow, "reminder24sent", models.EventReminder24h, "Reminder: you have a session tomorrow")
	remind(ctx, today, "reminder1sent", models.EventReminder1h, "Reminder: you have a session today")
}

func remind(ctx context.Context, date, sentField, event, text string) {
	cur, err := db.BookingsCollection.Find(ctx, bson.M{
		"date":    date,
		"status":  models.BookingActive,
		sentField: false,
	})
	if err != nil {
		log.Printf("[Reminders] find error: %v", err)
		return
	}
	defer cur.Close(ctx)

	var due []models.Booking
	if err := cur.All(ctx, &due); err != nil {
		log.Printf("[Reminders] decode error: %v", err)
		return
	}

	for _, b := range due {
		// Flag first: losing one reminder beats sending it twice.
		res, err := db.BookingsCollection.UpdateOne(ctx,
			bson.M{"bookingid": b.BookingID, sentField: false},
			bson.M{"$set": bson.M{sentField: true}},
		)
		if err != nil || res.ModifiedCount == 0 {
			continue
		}

		mq.Emit(ctx, models.Event{
			Name:      event,
			UserID:    b.UserID,
			BookingID: b.BookingID,
			Date:      b.Date,
			TimeSlot:  b.TimeSlot,
			Message:   fmt.Sprintf("%s: %s (%s).", text, b.Date, b.TimeDisplay),
		})
	}
}
