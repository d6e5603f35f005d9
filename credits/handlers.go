package credits

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListPackages returns the purchasable package catalog.
func ListPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, Packages)
}

// Purchase creates a pending transaction. No credits move until an admin
// confirms the payment.
func Purchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		PackageType   string `json:"package_type"`
		PaymentMethod string `json:"payment_method"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	pkg, ok := Packages[body.PackageType]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid package type")
		return
	}
	if body.PaymentMethod != "cash" && body.PaymentMethod != "transfer" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Replay of the same purchase returns the original transaction.
	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey != "" {
		var existing models.CreditTransaction
		if err := db.TransactionsCollection.FindOne(ctx, bson.M{
			"userid": userID, "idempotencykey": idempotencyKey,
		}).Decode(&existing); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, existing)
			return
		}
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	txn := models.CreditTransaction{
		TransactionID:  utils.NewID("txn"),
		UserID:         userID,
		UserName:       user.Name,
		PackageType:    body.PackageType,
		CreditsAdded:   pkg.Credits,
		Amount:         pkg.Amount,
		PaymentMethod:  body.PaymentMethod,
		Status:         models.TxnPending,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := db.TransactionsCollection.InsertOne(ctx, txn); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "purchase failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"transaction_id": txn.TransactionID,
		"message": fmt.Sprintf("Please pay $%.0f via %s. Your purchase will be confirmed by admin.",
			pkg.Amount, body.PaymentMethod),
	})
}

// MyTransactions lists the caller's transactions, newest first.
func MyTransactions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdat": -1}).SetLimit(100)
	cur, err := db.TransactionsCollection.Find(ctx, bson.M{"userid": userID}, opts)
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

// Balance returns the caller's credit balance and unlimited state.
func Balance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"credits":       user.Credits,
		"has_unlimited": user.HasUnlimited,
	})
}
