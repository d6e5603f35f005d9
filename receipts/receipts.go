// Package receipts renders PDF documents for clients: a session pass
// with a signed QR code for a booking, and a payment receipt for a
// confirmed credit transaction.
package receipts

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var hmacSecret = func() []byte {
	if s := os.Getenv("PASS_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("pulsefit-pass-secret")
}()

// SignPassPayload returns bookingID|userID|date|slot|timestamp|signature.
// The front desk scans this to verify a pass without a database lookup.
func SignPassPayload(bookingID, userID, date, slot string) string {
	timestamp := time.Now().Unix()
	data := fmt.Sprintf("%s|%s|%s|%s|%d", bookingID, userID, date, slot, timestamp)

	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPassPayload checks the trailing signature of a scanned payload.
func VerifyPassPayload(payload string) bool {
	idx := -1
	for i := len(payload) - 1; i >= 0; i-- {
		if payload[i] == '|' {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

// PrintBookingPass returns a PDF session pass for an active booking.
// Only the booking owner or an admin may download it.
func PrintBookingPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	requesterID := utils.GetUserIDFromRequest(r)

	var booking models.Booking
	err := db.BookingsCollection.FindOne(r.Context(), bson.M{"bookingid": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load booking")
		return
	}
	if booking.UserID != requesterID && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "not your booking")
		return
	}
	if booking.Status != models.BookingActive {
		utils.RespondWithError(w, http.StatusBadRequest, "booking is not active")
		return
	}

	qrPayload := SignPassPayload(booking.BookingID, booking.UserID, booking.Date, booking.TimeSlot)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Session Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", booking.UserName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", booking.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Session: %s", booking.TimeDisplay))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking Ref: %s", booking.BookingID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// PrintTransactionReceipt returns a PDF receipt for a confirmed credit
// purchase. Only the purchaser or an admin may download it.
func PrintTransactionReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	transactionID := ps.ByName("id")
	requesterID := utils.GetUserIDFromRequest(r)

	var txn models.CreditTransaction
	err := db.TransactionsCollection.FindOne(r.Context(), bson.M{"transactionid": transactionID}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	if txn.UserID != requesterID && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "not your transaction")
		return
	}
	if txn.Status != models.TxnConfirmed {
		utils.RespondWithError(w, http.StatusBadRequest, "transaction is not confirmed")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Receipt No: %s", txn.TransactionID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", txn.UserName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Package: %s", txn.PackageType))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Amount Paid: $%.2f", txn.Amount))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Payment Method: %s", txn.PaymentMethod))
	pdf.Ln(8)
	if !txn.ConfirmedAt.IsZero() {
		pdf.Cell(0, 10, fmt.Sprintf("Confirmed: %s", txn.ConfirmedAt.Format("2006-01-02 15:04")))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+txn.TransactionID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
