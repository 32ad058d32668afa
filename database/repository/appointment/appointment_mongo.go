package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes supports the businessId+startAt range prefilter and per-user
// listings.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "startAt", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "startAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) listByField(ctx context.Context, field, value string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{field: value}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListByClient returns a client's appointments ascending by start.
func (r *MongoAppointmentRepo) ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	return r.listByField(ctx, "clientId", clientID)
}

// ListByBusiness returns a business's appointments ascending by start.
func (r *MongoAppointmentRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return r.listByField(ctx, "businessId", businessID)
}

// ListBookedInRange returns BOOKED appointments of a business whose startAt
// falls in [from, to).
func (r *MongoAppointmentRepo) ListBookedInRange(ctx context.Context, businessID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"businessId": businessID,
		"status":     models.AppointmentBooked,
		"startAt":    bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked appointments for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListBookedByBusiness returns every BOOKED appointment of a business.
func (r *MongoAppointmentRepo) ListBookedByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	filter := bson.M{"businessId": businessID, "status": models.AppointmentBooked}
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked appointments for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// BusinessIDsWithBooked lists distinct business IDs holding BOOKED
// appointments.
func (r *MongoAppointmentRepo) BusinessIDsWithBooked(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "businessId", bson.M{"status": models.AppointmentBooked})
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses with bookings: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// SetStatus updates the status and stamps updatedAt.
func (r *MongoAppointmentRepo) SetStatus(ctx context.Context, id string, status string) (*models.Appointment, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set status for appointment %s: %w", id, err)
	}
	return &appt, nil
}
