package booking

import "errors"

// Engine outcomes. Every mutating operation reports exactly one of these
// (or credits.ErrInsufficientCredit) to the caller; nothing is swallowed
// or retried internally.
var (
	ErrSlotFull          = errors.New("slot is full")
	ErrSlotNotFull       = errors.New("slot is not full")
	ErrAlreadyBooked     = errors.New("already booked for this slot")
	ErrAlreadyWaitlisted = errors.New("already on the waitlist for this slot")
	ErrNotFound          = errors.New("not found")
	ErrNotOwner          = errors.New("not the owner")
	ErrPastDate          = errors.New("date is in the past")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidSlot       = errors.New("unknown time slot")
	ErrInvalidWeeks      = errors.New("weeks must be between 1 and 12")
	ErrSlotDisabled      = errors.New("time slot is disabled")
	ErrRecurringFailed   = errors.New("no sessions could be booked")
	ErrBusy              = errors.New("slot is busy, retry")
)
