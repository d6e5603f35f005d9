// Package booking is the slot reservation engine. Every check-then-act
// against shared state (occupancy, queue order, balances) runs with the
// slot key held: an in-process keyed mutex serializes goroutines and a
// Redis advisory lock fences other processes. Credit balances need no lock
// of their own because the debit is a single guarded document update.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulsefit/credits"
	"pulsefit/locks"
	"pulsefit/models"
	"pulsefit/mq"
	"pulsefit/rdx"
	"pulsefit/settings"
	"pulsefit/utils"
)

// maxRecurringWeeks bounds a recurring run to one quarter.
const maxRecurringWeeks = 12

// Engine runs admissions, cancellations and waitlist movement over the
// store seams. NewEngine wires the production stores; tests wire fakes.
type Engine struct {
	users    UserStore
	bookings BookingStore
	queue    WaitlistStore
	ledger   Ledger

	slotConfig func(ctx context.Context, slot string) (display string, enabled bool)
	emit       func(ctx context.Context, event models.Event)
	lock       func(date, slot string) (func(), error)
}

func NewEngine() *Engine {
	return &Engine{
		users:      mongoUsers{},
		bookings:   mongoBookings{},
		queue:      queueStore{},
		ledger:     creditLedger{},
		slotConfig: settings.SlotConfig,
		emit:       mq.Emit,
		lock:       lockSlot,
	}
}

var engine = NewEngine()

func lockSlot(date, slot string) (func(), error) {
	key := locks.SlotKey(date, slot)
	locks.Lock(key)

	token, err := rdx.AcquireLock(key)
	if err != nil || token == "" {
		locks.Unlock(key)
		if err != nil {
			return nil, err
		}
		return nil, ErrBusy
	}

	return func() {
		rdx.ReleaseLock(key, token)
		locks.Unlock(key)
	}, nil
}

// validate runs the checks shared by booking and waitlist mutations:
// known slot, well-formed date, not disabled, not in the past.
func (e *Engine) validate(ctx context.Context, date, slot string, now time.Time) error {
	if !ValidSlot(slot) {
		return ErrInvalidSlot
	}
	if _, err := utils.ParseDate(date); err != nil {
		return ErrInvalidDate
	}
	if utils.IsPastDate(date, now) {
		return ErrPastDate
	}
	if _, enabled := e.slotConfig(ctx, slot); !enabled {
		return ErrSlotDisabled
	}
	return nil
}

// BookSingle reserves one spot for user on (date, slot), debiting one
// credit unless the user holds unlimited.
func (e *Engine) BookSingle(ctx context.Context, userID, date, slot string) (models.Booking, error) {
	if err := e.validate(ctx, date, slot, time.Now()); err != nil {
		return models.Booking{}, err
	}

	unlock, err := e.lock(date, slot)
	if err != nil {
		return models.Booking{}, err
	}
	defer unlock()

	return e.bookLocked(ctx, userID, date, slot, false)
}

// bookLocked performs admission under an already-held slot lock. Shared by
// direct booking and waitlist promotion.
func (e *Engine) bookLocked(ctx context.Context, userID, date, slot string, fromWaitlist bool) (models.Booking, error) {
	user, err := e.users.Get(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}

	existing, err := e.bookings.Active(ctx, date, slot)
	if err != nil {
		return models.Booking{}, err
	}
	for _, b := range existing {
		if b.UserID == userID {
			return models.Booking{}, ErrAlreadyBooked
		}
	}
	if len(existing) >= Capacity {
		return models.Booking{}, ErrSlotFull
	}

	debited, err := e.ledger.Debit(ctx, userID, 1)
	if err != nil {
		return models.Booking{}, err
	}

	display, _ := e.slotConfig(ctx, slot)
	booking := models.Booking{
		BookingID:      utils.NewID("book"),
		UserID:         user.UserID,
		UserName:       user.Name,
		UserInitials:   user.Initials,
		Date:           date,
		TimeSlot:       slot,
		TimeDisplay:    display,
		Status:         models.BookingActive,
		CreditDebited:  debited,
		WaitlistOrigin: fromWaitlist,
		CreatedAt:      time.Now().UTC(),
	}

	if err := e.bookings.Insert(ctx, booking); err != nil {
		// Undo the debit; the reservation never existed.
		if debited {
			_ = e.ledger.CreditBack(ctx, userID, 1)
		}
		return models.Booking{}, err
	}

	// A booking and a waitlist entry for the same slot never coexist.
	if !fromWaitlist {
		if entry, err := e.queue.FindByUser(ctx, userID, date, slot); err == nil {
			_ = e.queue.Remove(ctx, entry)
		}
	}

	if !fromWaitlist {
		e.emit(ctx, models.Event{
			Name:      models.EventBookingConfirmed,
			UserID:    userID,
			BookingID: booking.BookingID,
			Date:      date,
			TimeSlot:  slot,
			Message:   fmt.Sprintf("Your session on %s (%s) is confirmed.", date, slot),
		})
	}

	return booking, nil
}

// BookRecurring books the same slot weekly starting at anchor. Weeks are
// independent: a full week falls back to the waitlist, other per-week
// failures are reported and skipped, and only running out of credits halts
// the remainder. A run where no week books or waitlists reports
// ErrRecurringFailed alongside the summary.
func (e *Engine) BookRecurring(ctx context.Context, userID, anchor, slot string, weeks int) (models.RecurringSummary, error) {
	summary := models.RecurringSummary{
		Booked:     []string{},
		Waitlisted: []string{},
	}

	if weeks < 1 || weeks > maxRecurringWeeks {
		return summary, ErrInvalidWeeks
	}
	start, err := utils.ParseDate(anchor)
	if err != nil {
		return summary, ErrInvalidDate
	}

	for _, date := range RecurrenceDates(start, weeks) {
		b, err := e.BookSingle(ctx, userID, date, slot)
		if err == nil {
			_ = e.bookings.MarkRecurring(ctx, b.BookingID)
			summary.Booked = append(summary.Booked, date)
			continue
		}

		switch {
		case errors.Is(err, ErrSlotFull):
			if _, werr := e.JoinWaitlist(ctx, userID, date, slot); werr == nil {
				summary.Waitlisted = append(summary.Waitlisted, date)
			} else {
				summary.Failed = append(summary.Failed, models.RecurringFailed{Date: date, Reason: werr.Error()})
			}
		case errors.Is(err, credits.ErrInsufficientCredit):
			summary.Failed = append(summary.Failed, models.RecurringFailed{Date: date, Reason: err.Error()})
			summary.Halted = true
		default:
			summary.Failed = append(summary.Failed, models.RecurringFailed{Date: date, Reason: err.Error()})
		}
		if summary.Halted {
			break
		}
	}

	if len(summary.Booked) == 0 && len(summary.Waitlisted) == 0 {
		return summary, ErrRecurringFailed
	}
	return summary, nil
}

// RecurrenceDates expands an anchor date into weekly dates, chronological.
// Pure.
func RecurrenceDates(anchor time.Time, weeks int) []string {
	dates := make([]string, 0, weeks)
	for i := 0; i < weeks; i++ {
		dates = append(dates, anchor.AddDate(0, 0, 7*i).Format(utils.DateLayout))
	}
	return dates
}

// Cancel soft-cancels a booking on behalf of its owner or an admin,
// refunds the credit the booking consumed, and hands the freed seat to the
// waitlist.
func (e *Engine) Cancel(ctx context.Context, actorID string, actorIsAdmin bool, bookingID string) error {
	b, err := e.bookings.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != models.BookingActive {
		return ErrNotFound
	}
	if b.UserID != actorID && !actorIsAdmin {
		return ErrNotOwner
	}
	if utils.IsPastDate(b.Date, time.Now()) {
		return ErrPastDate
	}

	unlock, err := e.lock(b.Date, b.TimeSlot)
	if err != nil {
		return err
	}
	defer unlock()

	// Conditional flip: a racing cancel of the same booking finds nothing
	// to match and reports NotFound, so the refund happens once.
	cancelled, err := e.bookings.CancelActive(ctx, bookingID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !cancelled {
		return ErrNotFound
	}

	// Refund exactly what was taken at booking time.
	if b.CreditDebited {
		if err := e.ledger.CreditBack(ctx, b.UserID, 1); err != nil {
			return err
		}
	}

	e.emit(ctx, models.Event{
		Name:      models.EventBookingCancelled,
		UserID:    b.UserID,
		BookingID: b.BookingID,
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		Message:   fmt.Sprintf("Your session on %s (%s) was cancelled.", b.Date, b.TimeSlot),
	})

	e.tryPromoteLocked(ctx, b.Date, b.TimeSlot)
	return nil
}

// JoinWaitlist queues user for a slot that is currently full.
func (e *Engine) JoinWaitlist(ctx context.Context, userID, date, slot string) (models.WaitlistEntry, error) {
	if err := e.validate(ctx, date, slot, time.Now()); err != nil {
		return models.WaitlistEntry{}, err
	}

	unlock, err := e.lock(date, slot)
	if err != nil {
		return models.WaitlistEntry{}, err
	}
	defer unlock()

	user, err := e.users.Get(ctx, userID)
	if err != nil {
		return models.WaitlistEntry{}, err
	}

	existing, err := e.bookings.Active(ctx, date, slot)
	if err != nil {
		return models.WaitlistEntry{}, err
	}
	for _, b := range existing {
		if b.UserID == userID {
			return models.WaitlistEntry{}, ErrAlreadyBooked
		}
	}
	if len(existing) < Capacity {
		return models.WaitlistEntry{}, ErrSlotNotFull
	}
	if _, err := e.queue.FindByUser(ctx, userID, date, slot); err == nil {
		return models.WaitlistEntry{}, ErrAlreadyWaitlisted
	}

	entry, err := e.queue.Append(ctx, user, date, slot)
	if err != nil {
		return models.WaitlistEntry{}, err
	}

	e.emit(ctx, models.Event{
		Name:     models.EventWaitlistJoined,
		UserID:   userID,
		Date:     date,
		TimeSlot: slot,
		Message:  fmt.Sprintf("You are #%d on the waitlist for %s (%s).", entry.Position, date, slot),
	})
	return entry, nil
}

// LeaveWaitlist removes the caller's (or, for admins, anyone's) entry and
// closes the queue gap.
func (e *Engine) LeaveWaitlist(ctx context.Context, actorID string, actorIsAdmin bool, waitlistID string) error {
	entry, err := e.queue.Find(ctx, waitlistID)
	if err != nil {
		return err
	}
	if entry.UserID != actorID && !actorIsAdmin {
		return ErrNotOwner
	}
	if utils.IsPastDate(entry.Date, time.Now()) {
		return ErrPastDate
	}

	unlock, err := e.lock(entry.Date, entry.TimeSlot)
	if err != nil {
		return err
	}
	defer unlock()

	return e.queue.Remove(ctx, entry)
}

// TryPromote admits the earliest eligible waitlist entry into (date,
// slot). Exposed for callers that freed capacity outside Cancel.
func (e *Engine) TryPromote(ctx context.Context, date, slot string) {
	unlock, err := e.lock(date, slot)
	if err != nil {
		return
	}
	defer unlock()

	e.tryPromoteLocked(ctx, date, slot)
}

// tryPromoteLocked walks the queue head-first under the slot lock. Entries
// whose owner can no longer pay are dropped (not re-queued) and notified;
// the walk stops at the first successful admission or when the queue or
// the capacity runs out.
func (e *Engine) tryPromoteLocked(ctx context.Context, date, slot string) {
	for {
		entries, err := e.queue.List(ctx, date, slot)
		if err != nil || len(entries) == 0 {
			return
		}
		head := entries[0]

		b, err := e.bookLocked(ctx, head.UserID, date, slot, true)
		switch {
		case err == nil:
			_ = e.queue.Remove(ctx, head)
			e.emit(ctx, models.Event{
				Name:      models.EventWaitlistPromoted,
				UserID:    head.UserID,
				BookingID: b.BookingID,
				Date:      date,
				TimeSlot:  slot,
				Message:   fmt.Sprintf("A spot opened up: you are booked for %s (%s).", date, slot),
			})
			return
		case errors.Is(err, credits.ErrInsufficientCredit):
			_ = e.queue.Remove(ctx, head)
			e.emit(ctx, models.Event{
				Name:     models.EventWaitlistDropped,
				UserID:   head.UserID,
				Date:     date,
				TimeSlot: slot,
				Message:  fmt.Sprintf("A spot opened for %s (%s) but you had no credits; you were removed from the waitlist.", date, slot),
			})
			// move on to the next entry
		case errors.Is(err, ErrAlreadyBooked):
			// stale entry; the invariant says it shouldn't exist
			_ = e.queue.Remove(ctx, head)
		default:
			return
		}
	}
}

// Package-level entry points over the production engine, used by the HTTP
// layer and by admin force-cancel.

func BookSingle(ctx context.Context, userID, date, slot string) (models.Booking, error) {
	return engine.BookSingle(ctx, userID, date, slot)
}

func BookRecurring(ctx context.Context, userID, anchor, slot string, weeks int) (models.RecurringSummary, error) {
	return engine.BookRecurring(ctx, userID, anchor, slot, weeks)
}

func Cancel(ctx context.Context, actorID string, actorIsAdmin bool, bookingID string) error {
	return engine.Cancel(ctx, actorID, actorIsAdmin, bookingID)
}

func JoinWaitlist(ctx context.Context, userID, date, slot string) (models.WaitlistEntry, error) {
	return engine.JoinWaitlist(ctx, userID, date, slot)
}

func LeaveWaitlist(ctx context.Context, actorID string, actorIsAdmin bool, waitlistID string) error {
	return engine.LeaveWaitlist(ctx, actorID, actorIsAdmin, waitlistID)
}

func TryPromote(ctx context.Context, date, slot string) {
	engine.TryPromote(ctx, date, slot)
}
