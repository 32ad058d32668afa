package scheduling

import (
	"context"
	"time"

	availabilityRepo "schedly/database/repository/availability"
	appointmentRepo "schedly/database/repository/appointment"
	userRepo "schedly/database/repository/user"
	"schedly/models"

	"github.com/go-redis/redis/v8"
)

// ScheduleService owns a business's recurring weekly schedule and projects it
// onto concrete date ranges.
type ScheduleService interface {
	// GetWeeklySchedule assembles the windows and breaks of a business.
	// A business with nothing configured yields an empty Days list, never an
	// error.
	GetWeeklySchedule(ctx context.Context, businessID string) (*models.WeeklySchedule, error)
	// ReplaceWeeklySchedule validates and atomically replaces the whole
	// schedule of a business, returning the resulting state.
	ReplaceWeeklySchedule(ctx context.Context, businessID string, input models.WeeklyScheduleInput) (*models.WeeklySchedule, error)
	// IsInstantWithinAvailability reports whether the half-open interval
	// [startAt, startAt+durationMin) fits inside the business's schedule,
	// resolved in the business's stored timezone frame.
	IsInstantWithinAvailability(ctx context.Context, businessID string, startAt time.Time, durationMin int) (bool, error)
	// GenerateFreeSlots enumerates bookable UTC start instants in
	// [rangeStart, rangeEnd), ascending. Pure given schedule and booking
	// state: identical inputs with no intervening mutation yield identical
	// output.
	GenerateFreeSlots(ctx context.Context, businessID string, rangeStart, rangeEnd time.Time, durationMin, slotStepMin int) ([]time.Time, error)
	// FreeSlotsForLocalDate is GenerateFreeSlots over one calendar day of
	// the business's local frame ("YYYY-MM-DD").
	FreeSlotsForLocalDate(ctx context.Context, businessID string, date string, durationMin, slotStepMin int) ([]time.Time, error)
}

// DefaultScheduleService is the production implementation backed by Mongo
// repositories with a Redis read-through cache for assembled schedules.
type DefaultScheduleService struct {
	Availability availabilityRepo.AvailabilityRepository
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository

	// Cache holds assembled weekly schedules keyed by business ID. Optional;
	// nil disables caching (tests).
	Cache *redis.Client

	// StrictAvailability rejects instants for businesses that never
	// configured any weekday window. Off by default: unconfigured (legacy)
	// businesses stay default-open.
	StrictAvailability bool
}
