package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"schedly/models"
	"schedly/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// conflictScanFilter bounds the candidate set for the overlap re-check: any
// BOOKED appointment that could overlap [startAt, startAt+durationMin) must
// start before the candidate's end and, since durations are capped at
// MaxDurationMin, no earlier than MaxDurationMin before the candidate's
// start. Exact overlap is re-tested per candidate.
func conflictScanFilter(businessID string, startAt time.Time, durationMin int, excludeID string) bson.M {
	end := startAt.Add(time.Duration(durationMin) * time.Minute)
	earliest := startAt.Add(-time.Duration(utils.MaxDurationMin) * time.Minute)

	filter := bson.M{
		"businessId": businessID,
		"status":     models.AppointmentBooked,
		"startAt":    bson.M{"$lt": end, "$gt": earliest},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// scanForConflict runs the bounded overlap scan under the given session
// context and returns ErrBookingConflict on any hit.
func (r *MongoAppointmentRepo) scanForConflict(sc mongo.SessionContext, businessID string, startAt time.Time, durationMin int, excludeID string) error {
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}})
	cursor, err := r.coll.Find(sc, conflictScanFilter(businessID, startAt, durationMin, excludeID), opts)
	if err != nil {
		return fmt.Errorf("conflict scan failed: %w", err)
	}
	defer cursor.Close(sc)

	for cursor.Next(sc) {
		var existing models.Appointment
		if err := cursor.Decode(&existing); err != nil {
			return fmt.Errorf("conflict scan decode failed: %w", err)
		}
		if utils.InstantsOverlap(existing.StartAt, existing.DurationMin, startAt, durationMin) {
			return ErrBookingConflict
		}
	}
	return cursor.Err()
}

// withTransaction runs fn inside a session transaction, aborting on error.
func (r *MongoAppointmentRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// InsertBookedIfNoConflict inserts a BOOKED appointment after re-checking for
// overlaps inside the same transaction. The transaction is what keeps two
// concurrent creates for overlapping times from both succeeding; Mongo's
// write-conflict detection on the scanned range is the arbiter for true
// concurrent races.
func (r *MongoAppointmentRepo) InsertBookedIfNoConflict(ctx context.Context, appt *models.Appointment) error {
	now := time.Now().UTC()
	appt.Status = models.AppointmentBooked
	appt.CreatedAt = now
	appt.UpdatedAt = now

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.scanForConflict(sc, appt.BusinessID, appt.StartAt, appt.DurationMin, ""); err != nil {
			return err
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	})
	if err == nil || err == ErrBookingConflict {
		return err
	}
	return fmt.Errorf("booking transaction failed: %w", err)
}

// UpdateTimesIfNoConflict moves a BOOKED appointment to a new interval after
// re-checking for overlaps (excluding the appointment itself) inside the same
// transaction.
func (r *MongoAppointmentRepo) UpdateTimesIfNoConflict(ctx context.Context, id string, startAt time.Time, durationMin int) (*models.Appointment, error) {
	var updated models.Appointment

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current models.Appointment
		if err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("fetch appointment failed: %w", err)
		}

		if err := r.scanForConflict(sc, current.BusinessID, startAt, durationMin, id); err != nil {
			return err
		}

		update := bson.M{"$set": bson.M{
			"startAt":     startAt,
			"durationMin": durationMin,
			"updatedAt":   time.Now().UTC(),
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := r.coll.FindOneAndUpdate(sc, bson.M{"id": id}, update, opts).Decode(&updated); err != nil {
			return fmt.Errorf("update appointment failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if err == ErrBookingConflict || err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return &updated, nil
}
