// Package waitlist holds the FIFO queue records per (date, slot). Position
// bookkeeping lives here; admission decisions are the booking engine's.
// Callers must hold the slot lock for every mutation, so removal and
// renumbering are observed together.
package waitlist

import (
	"context"
	"sort"
	"time"

	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns the queue for (date, slot) ordered by position.
func List(ctx context.Context, date, slot string) ([]models.WaitlistEntry, error) {
	opts := options.Find().SetSort(bson.M{"position": 1})
	cur, err := db.WaitlistCollection.Find(ctx, bson.M{"date": date, "timeslot": slot}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.WaitlistEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Find looks an entry up by id.
func Find(ctx context.Context, waitlistID string) (models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	err := db.WaitlistCollection.FindOne(ctx, bson.M{"waitlistid": waitlistID}).Decode(&entry)
	return entry, err
}

// FindByUser looks an entry up by (user, date, slot).
func FindByUser(ctx context.Context, userID, date, slot string) (models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	err := db.WaitlistCollection.FindOne(ctx, bson.M{
		"userid": userID, "date": date, "timeslot": slot,
	}).Decode(&entry)
	return entry, err
}

// Append joins user at the back of the queue and returns the new entry.
func Append(ctx context.Context, user models.User, date, slot string) (models.WaitlistEntry, error) {
	count, err := db.WaitlistCollection.CountDocuments(ctx, bson.M{"date": date, "timeslot": slot})
	if err != nil {
		return models.WaitlistEntry{}, err
	}

	entry := models.WaitlistEntry{
		WaitlistID:   utils.NewID("wait"),
		UserID:       user.UserID,
		UserName:     user.Name,
		UserInitials: user.Initials,
		Date:         date,
		TimeSlot:     slot,
		Position:     int(count) + 1,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := db.WaitlistCollection.InsertOne(ctx, entry); err != nil {
		return models.WaitlistEntry{}, err
	}
	return entry, nil
}

// Remove deletes the entry and closes the position gap it leaves behind.
func Remove(ctx context.Context, entry models.WaitlistEntry) error {
	res, err := db.WaitlistCollection.DeleteOne(ctx, bson.M{"waitlistid": entry.WaitlistID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	_, err = db.WaitlistCollection.UpdateMany(ctx,
		bson.M{
			"date":     entry.Date,
			"timeslot": entry.TimeSlot,
			"position": bson.M{"$gt": entry.Position},
		},
		bson.M{"$inc": bson.M{"position": -1}},
	)
	return err
}

// PurgeExpired drops queue entries whose date has passed; their slot can
// no longer admit anyone.
func PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	today := now.UTC().Format(utils.DateLayout)
	res, err := db.WaitlistCollection.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": today}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// RepairPositions sweeps every queue and rewrites positions that drifted
// from the contiguous 1..n order (a crash between Remove's delete and its
// renumber update leaves a gap). Returns how many entries were rewritten.
func RepairPositions(ctx context.Context) (int64, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "timeslot", Value: 1},
		{Key: "position", Value: 1},
	})
	cur, err := db.WaitlistCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var all []models.WaitlistEntry
	if err := cur.All(ctx, &all); err != nil {
		return 0, err
	}

	var fixed int64
	for start := 0; start < len(all); {
		end := start
		for end < len(all) && all[end].Date == all[start].Date && all[end].TimeSlot == all[start].TimeSlot {
			end++
		}
		queue := all[start:end]
		start = end

		for i, want := range Renumber(queue) {
			if queue[i].Position == want.Position {
				continue
			}
			_, err := db.WaitlistCollection.UpdateOne(ctx,
				bson.M{"waitlistid": want.WaitlistID},
				bson.M{"$set": bson.M{"position": want.Position}},
			)
			if err != nil {
				return fixed, err
			}
			fixed++
		}
	}
	return fixed, nil
}

// Renumber recomputes contiguous 1-based positions for a queue snapshot,
// preserving the current order (position, then join time as tiebreak).
// Pure; RepairPositions persists its output.
func Renumber(entries []models.WaitlistEntry) []models.WaitlistEntry {
	out := make([]models.WaitlistEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
