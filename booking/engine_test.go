package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pulsefit/credits"
	"pulsefit/models"
	"pulsefit/utils"
)

// fakeStore backs all engine seams with in-memory state.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	bookings map[string]*models.Booking
	queue    []models.WaitlistEntry
	events   []models.Event
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		bookings: make(map[string]*models.Booking),
	}
}

func (f *fakeStore) addUser(id, name string, credits int, unlimited bool) {
	f.users[id] = &models.User{
		UserID:       id,
		Name:         name,
		Initials:     utils.Initials(name),
		Credits:      credits,
		HasUnlimited: unlimited,
	}
}

func (f *fakeStore) Get(ctx context.Context, userID string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

func (f *fakeStore) Active(ctx context.Context, date, slot string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date && b.TimeSlot == slot && b.Status == models.BookingActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) GetBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return *b, nil
}

func (f *fakeStore) Insert(ctx context.Context, b models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := b
	f.bookings[b.BookingID] = &cp
	return nil
}

func (f *fakeStore) CancelActive(ctx context.Context, bookingID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok || b.Status != models.BookingActive {
		return false, nil
	}
	b.Status = models.BookingCancelled
	b.CancelledAt = at
	return true, nil
}

func (f *fakeStore) MarkRecurring(ctx context.Context, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[bookingID]; ok {
		b.Recurring = true
	}
	return nil
}

func (f *fakeStore) List(ctx context.Context, date, slot string) ([]models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WaitlistEntry
	for _, e := range f.queue {
		if e.Date == date && e.TimeSlot == slot {
			out = append(out, e)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Position < out[i].Position {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Find(ctx context.Context, waitlistID string) (models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.queue {
		if e.WaitlistID == waitlistID {
			return e, nil
		}
	}
	return models.WaitlistEntry{}, ErrNotFound
}

func (f *fakeStore) FindByUser(ctx context.Context, userID, date, slot string) (models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.queue {
		if e.UserID == userID && e.Date == date && e.TimeSlot == slot {
			return e, nil
		}
	}
	return models.WaitlistEntry{}, ErrNotFound
}

func (f *fakeStore) Append(ctx context.Context, user models.User, date, slot string) (models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pos := 1
	for _, e := range f.queue {
		if e.Date == date && e.TimeSlot == slot {
			pos++
		}
	}
	entry := models.WaitlistEntry{
		WaitlistID:   utils.NewID("wait"),
		UserID:       user.UserID,
		UserName:     user.Name,
		UserInitials: user.Initials,
		Date:         date,
		TimeSlot:     slot,
		Position:     pos,
		CreatedAt:    time.Now().UTC(),
	}
	f.queue = append(f.queue, entry)
	return entry, nil
}

func (f *fakeStore) Remove(ctx context.Context, entry models.WaitlistEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := -1
	for i, e := range f.queue {
		if e.WaitlistID == entry.WaitlistID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	f.queue = append(f.queue[:idx], f.queue[idx+1:]...)
	for i := range f.queue {
		if f.queue[i].Date == entry.Date && f.queue[i].TimeSlot == entry.TimeSlot && f.queue[i].Position > entry.Position {
			f.queue[i].Position--
		}
	}
	return nil
}

func (f *fakeStore) Debit(ctx context.Context, userID string, n int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return false, ErrNotFound
	}
	if u.HasUnlimited {
		return false, nil
	}
	if u.Credits < n {
		return false, credits.ErrInsufficientCredit
	}
	u.Credits -= n
	return true, nil
}

func (f *fakeStore) CreditBack(ctx context.Context, userID string, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.Credits += n
	}
	return nil
}

func (f *fakeStore) recordEvent(ctx context.Context, event models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeStore) creditsOf(t *testing.T, userID string) int {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		t.Fatalf("unknown user %s", userID)
	}
	return u.Credits
}

func (f *fakeStore) eventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.events))
	for _, e := range f.events {
		names = append(names, e.Name)
	}
	return names
}

// fakeBookings adapts fakeStore to BookingStore: Get collides with the
// user lookup, so it rides on a wrapper.
type fakeBookings struct{ *fakeStore }

func (fb fakeBookings) Get(ctx context.Context, bookingID string) (models.Booking, error) {
	return fb.GetBooking(ctx, bookingID)
}

func newTestEngine(f *fakeStore) *Engine {
	return &Engine{
		users:    f,
		bookings: fakeBookings{f},
		queue:    f,
		ledger:   f,
		slotConfig: func(ctx context.Context, slot string) (string, bool) {
			return "5:30 - 6:15 AM", true
		},
		emit: f.recordEvent,
		lock: func(date, slot string) (func(), error) { return func() {}, nil },
	}
}

const (
	testDate = "2030-01-07"
	testSlot = "morning"
)

func fillSlot(t *testing.T, e *Engine, f *fakeStore, date string) {
	t.Helper()
	for i := 0; i < Capacity; i++ {
		id := fmt.Sprintf("user_fill%d", i)
		if _, ok := f.users[id]; !ok {
			f.addUser(id, fmt.Sprintf("Filler %c", 'A'+i), 20, false)
		}
		if _, err := e.BookSingle(context.Background(), id, date, testSlot); err != nil {
			t.Fatalf("seeding slot: %v", err)
		}
	}
}

func TestBookSingleCapacity(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	fillSlot(t, e, f, testDate)

	f.addUser("user_d", "Dana Doe", 5, false)
	_, err := e.BookSingle(context.Background(), "user_d", testDate, testSlot)
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull, got %v", err)
	}
	if got := f.creditsOf(t, "user_d"); got != 5 {
		t.Fatalf("a rejected booking must not debit, balance %d", got)
	}
}

func TestBookSingleNoDoubleBooking(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 5, false)

	if _, err := e.BookSingle(context.Background(), "user_a", testDate, testSlot); err != nil {
		t.Fatal(err)
	}
	_, err := e.BookSingle(context.Background(), "user_a", testDate, testSlot)
	if !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("expected ErrAlreadyBooked, got %v", err)
	}
	if got := f.creditsOf(t, "user_a"); got != 4 {
		t.Fatalf("expected exactly one debit, balance %d", got)
	}
}

func TestBookSingleInsufficientCredit(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 0, false)

	_, err := e.BookSingle(context.Background(), "user_a", testDate, testSlot)
	if !errors.Is(err, credits.ErrInsufficientCredit) {
		t.Fatalf("expected ErrInsufficientCredit, got %v", err)
	}
}

func TestBookSingleUnlimitedSkipsDebit(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_u", "Uma Uys", 0, true)

	b, err := e.BookSingle(context.Background(), "user_u", testDate, testSlot)
	if err != nil {
		t.Fatal(err)
	}
	if b.CreditDebited {
		t.Fatal("unlimited booking must not record a debit")
	}
	if got := f.creditsOf(t, "user_u"); got != 0 {
		t.Fatalf("unlimited balance touched: %d", got)
	}
}

func TestBookSingleEmitsConfirmed(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 1, false)

	if _, err := e.BookSingle(context.Background(), "user_a", testDate, testSlot); err != nil {
		t.Fatal(err)
	}
	names := f.eventNames()
	if len(names) != 1 || names[0] != models.EventBookingConfirmed {
		t.Fatalf("expected one booking-confirmed event, got %v", names)
	}
}

func TestBookSingleInvalidInput(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 1, false)
	ctx := context.Background()

	if _, err := e.BookSingle(ctx, "user_a", "not-a-date", testSlot); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("malformed date: expected ErrInvalidDate, got %v", err)
	}
	if _, err := e.BookSingle(ctx, "user_a", "2020-01-06", testSlot); !errors.Is(err, ErrPastDate) {
		t.Fatalf("past date: expected ErrPastDate, got %v", err)
	}
	if _, err := e.BookSingle(ctx, "user_a", testDate, "evening"); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("unknown slot: expected ErrInvalidSlot, got %v", err)
	}
}

func TestCancelRefundsExactlyOnce(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 3, false)
	ctx := context.Background()

	b, err := e.BookSingle(ctx, "user_a", testDate, testSlot)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.creditsOf(t, "user_a"); got != 2 {
		t.Fatalf("expected balance 2 after booking, got %d", got)
	}

	if err := e.Cancel(ctx, "user_a", false, b.BookingID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := f.creditsOf(t, "user_a"); got != 3 {
		t.Fatalf("expected full refund, balance %d", got)
	}

	// second cancel finds nothing active and must not refund again
	if err := e.Cancel(ctx, "user_a", false, b.BookingID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat cancel, got %v", err)
	}
	if got := f.creditsOf(t, "user_a"); got != 3 {
		t.Fatalf("repeat cancel changed the balance: %d", got)
	}
}

func TestCancelUnlimitedDoesNotRefund(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_u", "Uma Uys", 0, true)
	ctx := context.Background()

	b, err := e.BookSingle(ctx, "user_u", testDate, testSlot)
	if err != nil {
		t.Fatal(err)
	}
	// the flag was revoked after booking; nothing was debited, so
	// nothing comes back
	f.mu.Lock()
	f.users["user_u"].HasUnlimited = false
	f.mu.Unlock()

	if err := e.Cancel(ctx, "user_u", false, b.BookingID); err != nil {
		t.Fatal(err)
	}
	if got := f.creditsOf(t, "user_u"); got != 0 {
		t.Fatalf("undebited booking must not refund, balance %d", got)
	}
}

func TestCancelOwnership(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 2, false)
	f.addUser("user_b", "Bob Byrd", 2, false)
	ctx := context.Background()

	b, err := e.BookSingle(ctx, "user_a", testDate, testSlot)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.Cancel(ctx, "user_b", false, b.BookingID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	// admins may cancel anyone's booking
	if err := e.Cancel(ctx, "user_b", true, b.BookingID); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestJoinWaitlistRequiresFullSlot(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 2, false)

	_, err := e.JoinWaitlist(context.Background(), "user_a", testDate, testSlot)
	if !errors.Is(err, ErrSlotNotFull) {
		t.Fatalf("expected ErrSlotNotFull, got %v", err)
	}
}

func TestJoinWaitlistPositionsAndDuplicates(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	fillSlot(t, e, f, testDate)
	f.addUser("user_a", "Amy Ames", 2, false)
	f.addUser("user_b", "Bob Byrd", 2, false)
	ctx := context.Background()

	ea, err := e.JoinWaitlist(ctx, "user_a", testDate, testSlot)
	if err != nil || ea.Position != 1 {
		t.Fatalf("expected position 1, got %d (%v)", ea.Position, err)
	}
	eb, err := e.JoinWaitlist(ctx, "user_b", testDate, testSlot)
	if err != nil || eb.Position != 2 {
		t.Fatalf("expected position 2, got %d (%v)", eb.Position, err)
	}
	if _, err := e.JoinWaitlist(ctx, "user_a", testDate, testSlot); !errors.Is(err, ErrAlreadyWaitlisted) {
		t.Fatalf("expected ErrAlreadyWaitlisted, got %v", err)
	}
	if _, err := e.JoinWaitlist(ctx, "user_fill0", testDate, testSlot); !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("booked user joining queue: expected ErrAlreadyBooked, got %v", err)
	}
}

func TestPromotionDropsCreditShortHead(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	fillSlot(t, e, f, testDate)
	f.addUser("user_a", "Amy Ames", 0, false) // head, cannot pay
	f.addUser("user_b", "Bob Byrd", 1, false)
	f.addUser("user_c", "Cay Cole", 1, false)
	ctx := context.Background()

	for _, id := range []string{"user_a", "user_b", "user_c"} {
		if _, err := e.JoinWaitlist(ctx, id, testDate, testSlot); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}

	// free one seat; the head cannot pay and is dropped, the next in
	// line is promoted, the last moves to the head
	cancelled, err := f.GetBooking(ctx, firstActiveBookingID(t, f))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Cancel(ctx, cancelled.UserID, false, cancelled.BookingID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	active, _ := f.Active(ctx, testDate, testSlot)
	if len(active) != Capacity {
		t.Fatalf("expected a full slot after promotion, got %d", len(active))
	}
	var promoted *models.Booking
	for i := range active {
		if active[i].UserID == "user_b" {
			promoted = &active[i]
		}
		if active[i].UserID == "user_a" {
			t.Fatal("credit-short head must not be promoted")
		}
	}
	if promoted == nil {
		t.Fatal("expected user_b to be promoted")
	}
	if !promoted.WaitlistOrigin {
		t.Fatal("promoted booking must record its waitlist origin")
	}
	if got := f.creditsOf(t, "user_b"); got != 0 {
		t.Fatalf("promotion must debit, balance %d", got)
	}

	queue, _ := f.List(ctx, testDate, testSlot)
	if len(queue) != 1 || queue[0].UserID != "user_c" || queue[0].Position != 1 {
		t.Fatalf("expected user_c alone at position 1, got %+v", queue)
	}

	names := f.eventNames()
	wantTail := []string{
		models.EventBookingCancelled,
		models.EventWaitlistDropped,
		models.EventWaitlistPromoted,
	}
	if len(names) < len(wantTail) {
		t.Fatalf("missing events, got %v", names)
	}
	tail := names[len(names)-len(wantTail):]
	for i, want := range wantTail {
		if tail[i] != want {
			t.Fatalf("expected event order %v, got %v", wantTail, tail)
		}
	}
}

func firstActiveBookingID(t *testing.T, f *fakeStore) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.bookings {
		if b.Status == models.BookingActive {
			return id
		}
	}
	t.Fatal("no active booking")
	return ""
}

func TestDirectBookingClearsOwnWaitlistEntry(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 2, false)
	ctx := context.Background()

	// stale entry left behind while the slot has seats again
	if _, err := f.Append(ctx, models.User{UserID: "user_a", Name: "Amy Ames"}, testDate, testSlot); err != nil {
		t.Fatal(err)
	}

	if _, err := e.BookSingle(ctx, "user_a", testDate, testSlot); err != nil {
		t.Fatal(err)
	}
	queue, _ := f.List(ctx, testDate, testSlot)
	if len(queue) != 0 {
		t.Fatalf("booking must clear the user's queue entry, got %+v", queue)
	}
}

func TestBookRecurringWaitlistFallback(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	ctx := context.Background()

	week2 := "2030-01-14"
	fillSlot(t, e, f, week2)

	f.addUser("user_a", "Amy Ames", 5, false)
	summary, err := e.BookRecurring(ctx, "user_a", testDate, testSlot, 3)
	if err != nil {
		t.Fatalf("recurring: %v", err)
	}

	wantBooked := []string{"2030-01-07", "2030-01-21"}
	if len(summary.Booked) != 2 || summary.Booked[0] != wantBooked[0] || summary.Booked[1] != wantBooked[1] {
		t.Fatalf("expected booked %v, got %v", wantBooked, summary.Booked)
	}
	if len(summary.Waitlisted) != 1 || summary.Waitlisted[0] != week2 {
		t.Fatalf("expected %s waitlisted, got %v", week2, summary.Waitlisted)
	}
	if summary.Halted {
		t.Fatal("fallback run must not halt")
	}
	if got := f.creditsOf(t, "user_a"); got != 3 {
		t.Fatalf("expected 2 debits (waitlist join is free), balance %d", got)
	}

	// booked weeks carry the recurring flag
	f.mu.Lock()
	for _, b := range f.bookings {
		if b.UserID == "user_a" && !b.Recurring {
			t.Errorf("booking %s on %s not marked recurring", b.BookingID, b.Date)
		}
	}
	f.mu.Unlock()
}

func TestBookRecurringHaltsOnInsufficientCredit(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 1, false)

	summary, err := e.BookRecurring(context.Background(), "user_a", testDate, testSlot, 4)
	if err != nil {
		t.Fatalf("recurring: %v", err)
	}
	if !summary.Halted {
		t.Fatal("expected the run to halt")
	}
	if len(summary.Booked) != 1 || summary.Booked[0] != testDate {
		t.Fatalf("expected only week 1 booked, got %v", summary.Booked)
	}
	// the halting week is reported and later weeks are never attempted
	if len(summary.Failed) != 1 || summary.Failed[0].Date != "2030-01-14" {
		t.Fatalf("expected a single failure for week 2, got %v", summary.Failed)
	}
}

func TestBookRecurringZeroSuccessIsAnError(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 0, false)

	summary, err := e.BookRecurring(context.Background(), "user_a", testDate, testSlot, 2)
	if !errors.Is(err, ErrRecurringFailed) {
		t.Fatalf("expected ErrRecurringFailed, got %v", err)
	}
	if len(summary.Failed) == 0 {
		t.Fatal("failure reasons must accompany the error")
	}
	if got := statusFor(err); got != 400 {
		t.Fatalf("ErrRecurringFailed must map to 400, got %d", got)
	}
}

func TestBookRecurringWeeksBounds(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	f.addUser("user_a", "Amy Ames", 20, false)
	ctx := context.Background()

	for _, weeks := range []int{0, -1, 13} {
		if _, err := e.BookRecurring(ctx, "user_a", testDate, testSlot, weeks); !errors.Is(err, ErrInvalidWeeks) {
			t.Errorf("weeks=%d: expected ErrInvalidWeeks, got %v", weeks, err)
		}
	}
	if got := statusFor(ErrInvalidWeeks); got != 400 {
		t.Fatalf("ErrInvalidWeeks must map to 400, got %d", got)
	}
	if _, err := e.BookRecurring(ctx, "user_a", "bad", testSlot, 2); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("bad anchor: expected ErrInvalidDate, got %v", err)
	}
}

func TestLeaveWaitlistClosesGap(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	fillSlot(t, e, f, testDate)
	f.addUser("user_a", "Amy Ames", 1, false)
	f.addUser("user_b", "Bob Byrd", 1, false)
	ctx := context.Background()

	ea, _ := e.JoinWaitlist(ctx, "user_a", testDate, testSlot)
	if _, err := e.JoinWaitlist(ctx, "user_b", testDate, testSlot); err != nil {
		t.Fatal(err)
	}

	if err := e.LeaveWaitlist(ctx, "user_b", false, ea.WaitlistID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := e.LeaveWaitlist(ctx, "user_a", false, ea.WaitlistID); err != nil {
		t.Fatal(err)
	}

	queue, _ := f.List(ctx, testDate, testSlot)
	if len(queue) != 1 || queue[0].UserID != "user_b" || queue[0].Position != 1 {
		t.Fatalf("expected user_b at position 1, got %+v", queue)
	}
	if err := e.LeaveWaitlist(ctx, "user_a", false, ea.WaitlistID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a removed entry, got %v", err)
	}
}

func TestDisabledSlotRejectsMutations(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f)
	e.slotConfig = func(ctx context.Context, slot string) (string, bool) { return "", false }
	f.addUser("user_a", "Amy Ames", 2, false)
	ctx := context.Background()

	if _, err := e.BookSingle(ctx, "user_a", testDate, testSlot); !errors.Is(err, ErrSlotDisabled) {
		t.Fatalf("expected ErrSlotDisabled, got %v", err)
	}
	if _, err := e.JoinWaitlist(ctx, "user_a", testDate, testSlot); !errors.Is(err, ErrSlotDisabled) {
		t.Fatalf("expected ErrSlotDisabled, got %v", err)
	}
}
