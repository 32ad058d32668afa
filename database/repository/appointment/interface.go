package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"schedly/models"
)

// ErrNotFound is returned when no appointment matches the lookup.
var ErrNotFound = errors.New("appointment not found")

// ErrBookingConflict is returned when a transactional insert or update finds
// an overlapping BOOKED appointment for the same business.
var ErrBookingConflict = errors.New("overlapping booking exists")

// AppointmentRepository defines appointment data access. The conflict-checked
// writes run their overlap scan and the resulting write inside one Mongo
// session transaction, so two concurrent attempts to book overlapping
// intervals cannot both observe "no conflict".
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByClient returns a client's appointments ascending by start.
	ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error)
	// ListByBusiness returns a business's appointments ascending by start.
	ListByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error)
	// ListBookedInRange returns BOOKED appointments of a business whose
	// startAt falls in [from, to). Used as the slot generator's prefilter.
	ListBookedInRange(ctx context.Context, businessID string, from, to time.Time) ([]models.Appointment, error)
	// InsertBookedIfNoConflict inserts appt (status BOOKED) unless a BOOKED
	// appointment of the same business overlaps it; then ErrBookingConflict.
	InsertBookedIfNoConflict(ctx context.Context, appt *models.Appointment) error
	// UpdateTimesIfNoConflict moves an existing BOOKED appointment to a new
	// start/duration unless another BOOKED appointment of the same business
	// overlaps the new interval; then ErrBookingConflict. Returns the
	// updated appointment.
	UpdateTimesIfNoConflict(ctx context.Context, id string, startAt time.Time, durationMin int) (*models.Appointment, error)
	// SetStatus updates the status and stamps updatedAt, returning the
	// resulting appointment.
	SetStatus(ctx context.Context, id string, status string) (*models.Appointment, error)
	// BusinessIDsWithBooked lists the distinct business IDs that currently
	// hold BOOKED appointments. Used by the overlap audit worker.
	BusinessIDsWithBooked(ctx context.Context) ([]string, error)
	// ListBookedByBusiness returns every BOOKED appointment of a business.
	ListBookedByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error)
}
