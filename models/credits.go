package models

import "time"

// Transaction statuses. Confirmed is terminal.
const (
	TxnPending   = "pending"
	TxnConfirmed = "confirmed"
)

type CreditTransaction struct {
	TransactionID  string    `json:"transaction_id" bson:"transactionid"`
	UserID         string    `json:"user_id" bson:"userid"`
	UserName       string    `json:"user_name" bson:"username"`
	PackageType    string    `json:"package_type" bson:"packagetype"`
	CreditsAdded   int       `json:"credits_added" bson:"creditsadded"`
	Amount         float64   `json:"amount" bson:"amount"`
	PaymentMethod  string    `json:"payment_method" bson:"paymentmethod"`
	Status         string    `json:"status" bson:"status"`
	IdempotencyKey string    `json:"-" bson:"idempotencykey,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"createdat"`
	ConfirmedAt    time.Time `json:"confirmed_at,omitempty" bson:"confirmedat,omitempty"`
	ConfirmedBy    string    `json:"confirmed_by,omitempty" bson:"confirmedby,omitempty"`
}

// CreditPackage is a purchasable session bundle. Unlimited grants the flag
// instead of a numeric balance.
type CreditPackage struct {
	Name      string  `json:"name"`
	Credits   int     `json:"credits"`
	Amount    float64 `json:"amount"`
	Unlimited bool    `json:"unlimited,omitempty"`
}
