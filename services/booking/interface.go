package booking

import (
	"context"
	"time"

	appointmentRepo "schedly/database/repository/appointment"
	userRepo "schedly/database/repository/user"
	"schedly/models"
	"schedly/services/scheduling"
)

// BookingService validates and commits appointment state transitions against
// the availability schedule and existing bookings.
type BookingService interface {
	// CreateAppointment books [startAt, startAt+durationMin) for a client at
	// a business. Conflicting or out-of-availability requests fail with a
	// CONFLICT-coded error.
	CreateAppointment(ctx context.Context, clientID, businessID string, startAt time.Time, durationMin int) (*models.Appointment, error)
	// RescheduleAppointment moves a BOOKED appointment owned by the acting
	// client to a new interval, under the same validation and conflict
	// discipline as create.
	RescheduleAppointment(ctx context.Context, appointmentID, actingClientID string, startAt time.Time, durationMin int) (*models.Appointment, error)
	// CancelAppointment transitions BOOKED -> CANCELED. Idempotent: an
	// already-canceled appointment is returned unchanged, not an error.
	CancelAppointment(ctx context.Context, appointmentID, actingUserID, actingRole string) (*models.Appointment, error)
	// ListAppointmentsForUser lists a client's appointments as client, or a
	// business's appointments as business.
	ListAppointmentsForUser(ctx context.Context, userID, role string) ([]models.Appointment, error)
}

// DefaultBookingService implements BookingService on top of the appointment
// repository's transactional writes.
type DefaultBookingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Scheduler    scheduling.ScheduleService
}
