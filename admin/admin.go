package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pulsefit/booking"
	"pulsefit/credits"
	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/mq"
	"pulsefit/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListBookings returns all bookings, optionally bounded by ?from / ?to
// dates.
func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	dateFilter := bson.M{}
	if from := r.URL.Query().Get("from"); from != "" {
		dateFilter["$gte"] = from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		dateFilter["$lte"] = to
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"date": -1}).SetLimit(1000)
	cur, err := db.BookingsCollection.Find(ctx, filter, opts)
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

// ListClients returns every non-admin account.
func ListClients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.UserCollection.Find(ctx, bson.M{"is_admin": false})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	clients := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		clients = append(clients, u.Public())
	}
	utils.RespondWithJSON(w, http.StatusOK, clients)
}

// ListTransactions returns all credit transactions, optionally filtered by
// ?status.
func ListTransactions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdat": -1}).SetLimit(1000)
	cur, err := db.TransactionsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	transactions := []models.CreditTransaction{}
	if err := cur.All(ctx, &transactions); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, transactions)
}

// ConfirmTransaction marks a pending purchase as paid, crediting the
// buyer's ledger. This is the only path that moves purchased credits.
func ConfirmTransaction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txn, err := credits.ConfirmTransaction(ctx, ps.ByName("id"), adminID)
	if err != nil {
		switch {
		case errors.Is(err, credits.ErrTxnNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		case errors.Is(err, credits.ErrTxnAlreadyDone):
			utils.RespondWithError(w, http.StatusBadRequest, "Transaction already confirmed")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "confirm failed")
		}
		return
	}

	mq.Emit(ctx, models.Event{
		Name:    models.EventCreditsConfirmed,
		UserID:  txn.UserID,
		Message: fmt.Sprintf("Your %s package purchase was confirmed.", txn.PackageType),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Transaction confirmed and credits added"})
}

// MakeAdmin promotes a user.
func MakeAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": ps.ByName("id")},
		bson.M{"$set": bson.M{"is_admin": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User is now an admin"})
}

// ForceCancelBooking cancels any booking through the same engine entry
// point clients use, so refunds and waitlist admission behave identically.
func ForceCancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking.CancelBooking(w, r, ps)
}
