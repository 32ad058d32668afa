package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "schedly/database/repository/appointment"
	userRepo "schedly/database/repository/user"
	"schedly/models"
	"schedly/services/scheduling"
	"schedly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validateTimes covers the checks shared by create and reschedule: a real
// future instant and an in-range duration.
func validateTimes(startAt time.Time, durationMin int) error {
	if startAt.IsZero() {
		return newServiceError(CodeValidation, "startAt is invalid")
	}
	if !startAt.After(time.Now()) {
		return newServiceError(CodeValidation, "startAt must be in the future")
	}
	if durationMin < utils.MinDurationMin {
		return newServiceError(CodeValidation, "durationMin must be >= %d", utils.MinDurationMin)
	}
	if durationMin > utils.MaxDurationMin {
		return newServiceError(CodeValidation, "durationMin must be <= %d", utils.MaxDurationMin)
	}
	return nil
}

// ensureWithinAvailability maps an availability miss to a CONFLICT distinct
// from the "already booked" one, so the caller can message them differently.
func (s *DefaultBookingService) ensureWithinAvailability(ctx context.Context, businessID string, startAt time.Time, durationMin int) error {
	within, err := s.Scheduler.IsInstantWithinAvailability(ctx, businessID, startAt, durationMin)
	if err != nil {
		var ve *scheduling.ValidationError
		if errors.As(err, &ve) {
			return newServiceError(CodeValidation, "%s", ve.Message)
		}
		return newServiceError(CodeInternal, "failed to check availability: %v", err)
	}
	if !within {
		return newServiceError(CodeConflict, "Time slot is outside business availability")
	}
	return nil
}

// CreateAppointment validates the request, checks availability, then hands
// the conflict re-check plus insert to the repository as one transaction.
func (s *DefaultBookingService) CreateAppointment(ctx context.Context, clientID, businessID string, startAt time.Time, durationMin int) (*models.Appointment, error) {
	if err := validateTimes(startAt, durationMin); err != nil {
		return nil, err
	}

	business, err := s.Users.GetByID(businessID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, newServiceError(CodeNotFound, "Business not found")
		}
		return nil, newServiceError(CodeInternal, "failed to load business: %v", err)
	}
	if business.Role != models.RoleBusiness {
		return nil, newServiceError(CodeValidation, "businessId does not refer to a BUSINESS account")
	}

	if err := s.ensureWithinAvailability(ctx, businessID, startAt, durationMin); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		BusinessID:  businessID,
		StartAt:     startAt.UTC(),
		DurationMin: durationMin,
	}

	if err := s.Appointments.InsertBookedIfNoConflict(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrBookingConflict) {
			return nil, newServiceError(CodeConflict, "Time slot is already booked")
		}
		return nil, newServiceError(CodeInternal, "booking failed: %v", err)
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("businessID", businessID),
		zap.Time("startAt", appt.StartAt),
		zap.Int("durationMin", durationMin))
	return appt, nil
}

// RescheduleAppointment re-runs all create-style validation against the new
// interval and commits the move under the same transactional discipline,
// excluding the appointment's own interval from the conflict scan.
func (s *DefaultBookingService) RescheduleAppointment(ctx context.Context, appointmentID, actingClientID string, startAt time.Time, durationMin int) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, newServiceError(CodeNotFound, "Appointment not found")
		}
		return nil, newServiceError(CodeInternal, "failed to load appointment: %v", err)
	}

	if appt.ClientID != actingClientID {
		return nil, newServiceError(CodeForbidden, "You can reschedule only your own appointments")
	}
	if appt.Status != models.AppointmentBooked {
		return nil, newServiceError(CodeConflict, "Only BOOKED appointments can be rescheduled")
	}

	if err := validateTimes(startAt, durationMin); err != nil {
		return nil, err
	}
	if err := s.ensureWithinAvailability(ctx, appt.BusinessID, startAt, durationMin); err != nil {
		return nil, err
	}

	updated, err := s.Appointments.UpdateTimesIfNoConflict(ctx, appointmentID, startAt.UTC(), durationMin)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrBookingConflict):
			return nil, newServiceError(CodeConflict, "Time slot is already booked")
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return nil, newServiceError(CodeNotFound, "Appointment not found")
		default:
			return nil, newServiceError(CodeInternal, "reschedule failed: %v", err)
		}
	}

	utils.GetLogger().Info("appointment rescheduled",
		zap.String("appointmentID", appointmentID),
		zap.Time("startAt", updated.StartAt),
		zap.Int("durationMin", updated.DurationMin))
	return updated, nil
}

// CancelAppointment transitions BOOKED -> CANCELED. A second cancel returns
// the stored CANCELED state without error; the transition is terminal.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, appointmentID, actingUserID, actingRole string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, newServiceError(CodeNotFound, "Appointment not found")
		}
		return nil, newServiceError(CodeInternal, "failed to load appointment: %v", err)
	}

	if appt.Status == models.AppointmentCanceled {
		return appt, nil
	}

	allowed := (actingRole == models.RoleClient && appt.ClientID == actingUserID) ||
		(actingRole == models.RoleBusiness && appt.BusinessID == actingUserID)
	if !allowed {
		return nil, newServiceError(CodeForbidden, "You can cancel only your own appointments")
	}

	updated, err := s.Appointments.SetStatus(ctx, appointmentID, models.AppointmentCanceled)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, newServiceError(CodeNotFound, "Appointment not found")
		}
		return nil, newServiceError(CodeInternal, "cancel failed: %v", err)
	}

	utils.GetLogger().Info("appointment canceled",
		zap.String("appointmentID", appointmentID),
		zap.String("actingRole", actingRole))
	return updated, nil
}

// ListAppointmentsForUser lists by the side of the appointment the user
// owns: clients see what they booked, businesses see what was booked with
// them.
func (s *DefaultBookingService) ListAppointmentsForUser(ctx context.Context, userID, role string) ([]models.Appointment, error) {
	if role == models.RoleClient {
		appts, err := s.Appointments.ListByClient(ctx, userID)
		if err != nil {
			return nil, newServiceError(CodeInternal, "failed to list appointments: %v", err)
		}
		return appts, nil
	}

	appts, err := s.Appointments.ListByBusiness(ctx, userID)
	if err != nil {
		return nil, newServiceError(CodeInternal, "failed to list appointments: %v", err)
	}
	return appts, nil
}
