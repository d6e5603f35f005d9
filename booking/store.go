package booking

import (
	"context"
	"time"

	"pulsefit/credits"
	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/waitlist"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Narrow persistence seams for the engine. Production wires the Mongo
// implementations below; tests substitute in-memory fakes.

type UserStore interface {
	Get(ctx context.Context, userID string) (models.User, error)
}

type BookingStore interface {
	Active(ctx context.Context, date, slot string) ([]models.Booking, error)
	Get(ctx context.Context, bookingID string) (models.Booking, error)
	Insert(ctx context.Context, b models.Booking) error
	// CancelActive flips active to cancelled and reports whether anything
	// matched, so a racing cancel of the same booking refunds once.
	CancelActive(ctx context.Context, bookingID string, at time.Time) (bool, error)
	MarkRecurring(ctx context.Context, bookingID string) error
}

type WaitlistStore interface {
	List(ctx context.Context, date, slot string) ([]models.WaitlistEntry, error)
	Find(ctx context.Context, waitlistID string) (models.WaitlistEntry, error)
	FindByUser(ctx context.Context, userID, date, slot string) (models.WaitlistEntry, error)
	Append(ctx context.Context, user models.User, date, slot string) (models.WaitlistEntry, error)
	Remove(ctx context.Context, entry models.WaitlistEntry) error
}

type Ledger interface {
	Debit(ctx context.Context, userID string, n int) (bool, error)
	CreditBack(ctx context.Context, userID string, n int) error
}

type mongoUsers struct{}

func (mongoUsers) Get(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	return u, err
}

type mongoBookings struct{}

func (mongoBookings) Active(ctx context.Context, date, slot string) ([]models.Booking, error) {
	cur, err := db.BookingsCollection.Find(ctx, bson.M{
		"date": date, "timeslot": slot, "status": models.BookingActive,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (mongoBookings) Get(ctx context.Context, bookingID string) (models.Booking, error) {
	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return b, ErrNotFound
	}
	return b, err
}

func (mongoBookings) Insert(ctx context.Context, b models.Booking) error {
	_, err := db.BookingsCollection.InsertOne(ctx, b)
	return err
}

func (mongoBookings) CancelActive(ctx context.Context, bookingID string, at time.Time) (bool, error) {
	res, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID, "status": models.BookingActive},
		bson.M{"$set": bson.M{
			"status":      models.BookingCancelled,
			"cancelledat": at,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (mongoBookings) MarkRecurring(ctx context.Context, bookingID string) error {
	_, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"recurring": true}},
	)
	return err
}

// queueStore adapts the waitlist package, translating its driver-level
// not-found into the engine's sentinel.
type queueStore struct{}

func (queueStore) List(ctx context.Context, date, slot string) ([]models.WaitlistEntry, error) {
	return waitlist.List(ctx, date, slot)
}

func (queueStore) Find(ctx context.Context, waitlistID string) (models.WaitlistEntry, error) {
	entry, err := waitlist.Find(ctx, waitlistID)
	if err == mongo.ErrNoDocuments {
		return entry, ErrNotFound
	}
	return entry, err
}

func (queueStore) FindByUser(ctx context.Context, userID, date, slot string) (models.WaitlistEntry, error) {
	entry, err := waitlist.FindByUser(ctx, userID, date, slot)
	if err == mongo.ErrNoDocuments {
		return entry, ErrNotFound
	}
	return entry, err
}

func (queueStore) Append(ctx context.Context, user models.User, date, slot string) (models.WaitlistEntry, error) {
	return waitlist.Append(ctx, user, date, slot)
}

func (queueStore) Remove(ctx context.Context, entry models.WaitlistEntry) error {
	err := waitlist.Remove(ctx, entry)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

type creditLedger struct{}

func (creditLedger) Debit(ctx context.Context, userID string, n int) (bool, error) {
	return credits.Debit(ctx, userID, n)
}

func (creditLedger) CreditBack(ctx context.Context, userID string, n int) error {
	return credits.CreditBack(ctx, userID, n)
}
