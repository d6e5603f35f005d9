package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/rdx"
	"pulsefit/utils"
)

const eventChannel = "booking-events"

// Pusher delivers a payload to a connected user, if any. The websocket hub
// implements it.
type Pusher interface {
	Push(userID string, data []byte)
}

// Emit publishes a domain event to the notification channel. It is
// fire-and-forget: a publish failure is logged and never propagated, so a
// committed booking or cancellation can't be rolled back by delivery
// problems.
func Emit(ctx context.Context, event models.Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] marshal error: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish error for %s: %v", event.Name, err)
	}
}

// StartNotifyWorker consumes the event channel, persists a notification
// per event and forwards it to the live hub. Run in its own goroutine.
func StartNotifyWorker(hub Pusher) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	ch := sub.Channel()

	log.Println("[NotifyWorker] Listening for booking events...")

	for msg := range ch {
		var event models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[NotifyWorker] bad payload: %v", err)
			continue
		}

		ntf := models.Notification{
			NotificationID: utils.NewID("ntf"),
			UserID:         event.UserID,
			Event:          event.Name,
			Message:        event.Message,
			Date:           event.Date,
			TimeSlot:       event.TimeSlot,
			CreatedAt:      event.CreatedAt,
		}
		if _, err := db.NotificationsCollection.InsertOne(ctx, ntf); err != nil {
			log.Printf("[NotifyWorker] insert error: %v", err)
		}

		if hub != nil {
			if data, err := json.Marshal(ntf); err == nil {
				hub.Push(event.UserID, data)
			}
		}
	}
}
