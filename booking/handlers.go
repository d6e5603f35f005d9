package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pulsefit/credits"
	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/settings"
	"pulsefit/utils"
	"pulsefit/waitlist"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// statusFor maps engine outcomes to HTTP statuses. Unknown errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrSlotFull),
		errors.Is(err, ErrSlotNotFull),
		errors.Is(err, ErrAlreadyBooked),
		errors.Is(err, ErrAlreadyWaitlisted),
		errors.Is(err, ErrPastDate),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidSlot),
		errors.Is(err, ErrInvalidWeeks),
		errors.Is(err, ErrSlotDisabled),
		errors.Is(err, ErrRecurringFailed),
		errors.Is(err, credits.ErrInsufficientCredit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondEngineError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	utils.RespondWithError(w, code, msg)
}

// GetSlotsByDate returns the availability view for every slot on a date.
// Past dates are readable; mutations against them are rejected elsewhere.
func GetSlotsByDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date")
		return
	}
	requesterID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out := utils.M{"date": date}
	for _, slot := range Slots {
		bookings, err := engine.bookings.Active(ctx, date, slot)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "db error")
			return
		}
		entries, err := waitlist.List(ctx, date, slot)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "db error")
			return
		}
		display, enabled := settings.SlotConfig(ctx, slot)
		out[slot] = DeriveSlotState(slot, display, enabled, bookings, entries, requesterID)
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// CreateBooking books a single session, or a weekly series when weeks > 1.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Date     string `json:"date"`
		TimeSlot string `json:"time_slot"`
		Weeks    int    `json:"weeks"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil || body.Date == "" || body.TimeSlot == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if body.Weeks > 1 {
		summary, err := BookRecurring(ctx, userID, body.Date, body.TimeSlot, body.Weeks)
		if errors.Is(err, ErrRecurringFailed) {
			// The per-week reasons travel with the failure.
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"error":   err.Error(),
				"summary": summary,
			})
			return
		}
		if err != nil {
			respondEngineError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, summary)
		return
	}

	b, err := BookSingle(ctx, userID, body.Date, body.TimeSlot)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"booking": b,
		"message": "Booking confirmed!",
	})
}

// CancelBooking cancels on behalf of the owner or an admin.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actorID := utils.GetUserIDFromRequest(r)
	isAdmin := utils.IsAdminRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := Cancel(ctx, actorID, isAdmin, ps.ByName("id")); err != nil {
		respondEngineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Booking cancelled"})
}

// MyBookings lists the caller's bookings, soonest first.
func MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"date": 1}).SetLimit(100)
	cur, err := db.BookingsCollection.Find(ctx, bson.M{
		"userid": userID, "status": models.BookingActive,
	}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// JoinWaitlistHandler queues the caller for a full slot.
func JoinWaitlistHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Date     string `json:"date"`
		TimeSlot string `json:"time_slot"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil || body.Date == "" || body.TimeSlot == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entry, err := JoinWaitlist(ctx, userID, body.Date, body.TimeSlot)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"entry": entry})
}

// LeaveWaitlistHandler removes a waitlist entry.
func LeaveWaitlistHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actorID := utils.GetUserIDFromRequest(r)
	isAdmin := utils.IsAdminRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := LeaveWaitlist(ctx, actorID, isAdmin, ps.ByName("id")); err != nil {
		respondEngineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Removed from waitlist"})
}

// MyWaitlist lists the caller's waitlist entries.
func MyWaitlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"date": 1})
	cur, err := db.WaitlistCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	entries := []models.WaitlistEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
