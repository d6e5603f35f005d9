// Package credits is the ledger for purchasable session credits. All
// balance mutations go through here; the guarded update in Debit is what
// keeps two concurrent debits from both passing a balance check only one
// should have passed.
package credits

import (
	"context"
	"errors"
	"time"

	"pulsefit/db"
	"pulsefit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrTxnNotFound        = errors.New("transaction not found")
	ErrTxnAlreadyDone     = errors.New("transaction already confirmed")
	ErrUnknownPackage     = errors.New("unknown package type")
)

// Packages is the fixed catalog. Unlimited grants a flag, not a count.
var Packages = map[string]models.CreditPackage{
	"single":    {Name: "Single Session", Credits: 1, Amount: 30.0},
	"double":    {Name: "2 Sessions", Credits: 2, Amount: 40.0},
	"unlimited": {Name: "Unlimited", Credits: 0, Amount: 50.0, Unlimited: true},
}

// Debit takes n credits from the user. Unlimited users pass without their
// balance being touched; the returned bool reports whether a credit was
// actually consumed. The balance check and decrement are a single
// conditional update, so no partial debit can occur.
func Debit(ctx context.Context, userID string, n int) (bool, error) {
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "has_unlimited": false, "credits": bson.M{"$gte": n}},
		bson.M{"$inc": bson.M{"credits": -n}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	// No match: either the user holds unlimited or the balance is short.
	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		return false, err
	}
	if user.HasUnlimited {
		return false, nil
	}
	return false, ErrInsufficientCredit
}

// CreditBack returns n credits to the user unconditionally.
func CreditBack(ctx context.Context, userID string, n int) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$inc": bson.M{"credits": n}},
	)
	return err
}

// GrantUnlimited flips the unlimited flag without touching the numeric
// balance.
func GrantUnlimited(ctx context.Context, userID string) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"has_unlimited": true}},
	)
	return err
}

// ConfirmTransaction moves a pending transaction to confirmed and credits
// the ledger. The status flip is a conditional update, so confirming the
// same transaction twice credits exactly once.
func ConfirmTransaction(ctx context.Context, transactionID, adminID string) (models.CreditTransaction, error) {
	var txn models.CreditTransaction

	res := db.TransactionsCollection.FindOneAndUpdate(ctx,
		bson.M{"transactionid": transactionID, "status": models.TxnPending},
		bson.M{"$set": bson.M{
			"status":      models.TxnConfirmed,
			"confirmedat": time.Now().UTC(),
			"confirmedby": adminID,
		}},
	)
	if err := res.Decode(&txn); err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish missing from already-confirmed for the caller.
			count, cerr := db.TransactionsCollection.CountDocuments(ctx, bson.M{"transactionid": transactionID})
			if cerr != nil {
				return txn, cerr
			}
			if count == 0 {
				return txn, ErrTxnNotFound
			}
			return txn, ErrTxnAlreadyDone
		}
		return txn, err
	}

	pkg, ok := Packages[txn.PackageType]
	if !ok {
		return txn, ErrUnknownPackage
	}

	if pkg.Unlimited {
		if err := GrantUnlimited(ctx, txn.UserID); err != nil {
			return txn, err
		}
	} else if err := CreditBack(ctx, txn.UserID, pkg.Credits); err != nil {
		return txn, err
	}

	txn.Status = models.TxnConfirmed
	return txn, nil
}
