package waitlist

import (
	"testing"
	"time"

	"pulsefit/models"
)

func entry(id, userID string, pos int, joined time.Time) models.WaitlistEntry {
	return models.WaitlistEntry{
		WaitlistID: id,
		UserID:     userID,
		Date:       "2026-03-02",
		TimeSlot:   "morning",
		Position:   pos,
		CreatedAt:  joined,
	}
}

func TestRenumberPreservesOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []models.WaitlistEntry{
		entry("wait_a", "user_a", 1, base),
		entry("wait_b", "user_b", 2, base.Add(time.Minute)),
		entry("wait_c", "user_c", 3, base.Add(2*time.Minute)),
	}

	out := Renumber(entries)
	for i, e := range out {
		if e.Position != i+1 {
			t.Errorf("entry %s: expected position %d, got %d", e.WaitlistID, i+1, e.Position)
		}
	}
	if out[0].UserID != "user_a" || out[2].UserID != "user_c" {
		t.Fatal("renumbering must not reorder the queue")
	}
}

func TestRenumberClosesGap(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// B left the queue; A and C keep their stale positions 1 and 3.
	entries := []models.WaitlistEntry{
		entry("wait_a", "user_a", 1, base),
		entry("wait_c", "user_c", 3, base.Add(2*time.Minute)),
	}

	out := Renumber(entries)
	if out[0].UserID != "user_a" || out[0].Position != 1 {
		t.Fatalf("expected user_a at position 1, got %s at %d", out[0].UserID, out[0].Position)
	}
	if out[1].UserID != "user_c" || out[1].Position != 2 {
		t.Fatalf("expected user_c at position 2, got %s at %d", out[1].UserID, out[1].Position)
	}
}

func TestRenumberTiesBreakOnJoinTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// duplicate positions after a repair; earlier join wins
	entries := []models.WaitlistEntry{
		entry("wait_late", "user_late", 2, base.Add(time.Hour)),
		entry("wait_early", "user_early", 2, base),
	}

	out := Renumber(entries)
	if out[0].UserID != "user_early" {
		t.Fatalf("expected earlier join first, got %s", out[0].UserID)
	}
	if out[0].Position != 1 || out[1].Position != 2 {
		t.Fatalf("expected positions 1 and 2, got %d and %d", out[0].Position, out[1].Position)
	}
}

func TestRenumberEmpty(t *testing.T) {
	if out := Renumber(nil); len(out) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(out))
	}
}
