package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"schedly/database"
	"schedly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
// Windows live in "working_hours" (unique per businessId+dayOfWeek), breaks
// in "breaks".
type MongoAvailabilityRepo struct {
	windowColl *mongo.Collection
	breakColl  *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoAvailabilityRepo{
		windowColl: db.Collection("working_hours"),
		breakColl:  db.Collection("breaks"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces the one-window-per-weekday invariant and supports
// per-day break lookups.
func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.windowColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create working_hours index: %w", err)
	}

	_, err = r.breakColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create breaks index: %w", err)
	}
	return nil
}

// GetWindows returns all weekday windows for a business, ascending by weekday.
func (r *MongoAvailabilityRepo) GetWindows(ctx context.Context, businessID string) ([]models.WeeklyWindow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}})
	cursor, err := r.windowColl.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch working hours for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var windows []models.WeeklyWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode working hours: %w", err)
	}
	return windows, nil
}

// GetBreaks returns all break rows for a business.
func (r *MongoAvailabilityRepo) GetBreaks(ctx context.Context, businessID string) ([]models.WeeklyBreak, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startMin", Value: 1}})
	cursor, err := r.breakColl.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch breaks for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var breaks []models.WeeklyBreak
	if err := cursor.All(ctx, &breaks); err != nil {
		return nil, fmt.Errorf("failed to decode breaks: %w", err)
	}
	return breaks, nil
}

// ReplaceSchedule atomically replaces the whole schedule of a business inside
// a single Mongo session transaction.
func (r *MongoAvailabilityRepo) ReplaceSchedule(ctx context.Context, businessID string, windows []models.WeeklyWindow, breaks []models.WeeklyBreak) error {
	client := r.windowColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		enabledDays := make([]int, 0, len(windows))
		for _, w := range windows {
			enabledDays = append(enabledDays, w.DayOfWeek)
		}

		// Drop windows for weekdays absent from the new input.
		removeFilter := bson.M{"businessId": businessID}
		if len(enabledDays) > 0 {
			removeFilter["dayOfWeek"] = bson.M{"$nin": enabledDays}
		}
		if _, err := r.windowColl.DeleteMany(sc, removeFilter); err != nil {
			return fmt.Errorf("delete stale windows failed: %w", err)
		}

		// Upsert windows for present weekdays.
		for _, w := range windows {
			filter := bson.M{"businessId": businessID, "dayOfWeek": w.DayOfWeek}
			update := bson.M{"$set": bson.M{"startMin": w.StartMin, "endMin": w.EndMin}}
			opts := options.Update().SetUpsert(true)
			if _, err := r.windowColl.UpdateOne(sc, filter, update, opts); err != nil {
				return fmt.Errorf("upsert window for day %d failed: %w", w.DayOfWeek, err)
			}
		}

		// Replace breaks wholesale (simple + deterministic).
		if _, err := r.breakColl.DeleteMany(sc, bson.M{"businessId": businessID}); err != nil {
			return fmt.Errorf("delete breaks failed: %w", err)
		}
		if len(breaks) > 0 {
			docs := make([]interface{}, 0, len(breaks))
			for _, b := range breaks {
				docs = append(docs, b)
			}
			if _, err := r.breakColl.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert breaks failed: %w", err)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("schedule replace transaction failed: %w", err)
	}

	return nil
}
