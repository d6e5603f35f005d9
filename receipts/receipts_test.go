package receipts

import (
	"strings"
	"testing"
)

func TestSignAndVerifyPassPayload(t *testing.T) {
	payload := SignPassPayload("book_abc123", "user_xyz", "2026-03-02", "morning")

	if !strings.HasPrefix(payload, "book_abc123|user_xyz|2026-03-02|morning|") {
		t.Fatalf("unexpected payload shape: %s", payload)
	}
	if !VerifyPassPayload(payload) {
		t.Fatal("freshly signed payload failed verification")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	payload := SignPassPayload("book_abc123", "user_xyz", "2026-03-02", "morning")

	tampered := strings.Replace(payload, "user_xyz", "user_other", 1)
	if VerifyPassPayload(tampered) {
		t.Fatal("tampered payload passed verification")
	}

	if VerifyPassPayload("no-signature-here") {
		t.Fatal("payload without signature passed verification")
	}
	if VerifyPassPayload("") {
		t.Fatal("empty payload passed verification")
	}
}
