package handlers

import (
	"net/http"
	"time"

	"schedly/services/booking"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes appointment booking, rescheduling, cancellation and
// listing.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type createAppointmentRequest struct {
	BusinessID  string    `json:"businessId" binding:"required"`
	StartAt     time.Time `json:"startAt" binding:"required"`
	DurationMin int       `json:"durationMin" binding:"required"`
}

type rescheduleRequest struct {
	StartAt     time.Time `json:"startAt" binding:"required"`
	DurationMin int       `json:"durationMin" binding:"required"`
}

// Create books an appointment for the authenticated client.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Invalid request: "+err.Error())
		return
	}

	appt, err := h.Bookings.CreateAppointment(c.Request.Context(), currentUserID(c), req.BusinessID, req.StartAt, req.DurationMin)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// Reschedule moves one of the authenticated client's appointments.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Invalid request: "+err.Error())
		return
	}

	appt, err := h.Bookings.RescheduleAppointment(c.Request.Context(), c.Param("id"), currentUserID(c), req.StartAt, req.DurationMin)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel transitions the appointment to CANCELED. Safe to repeat.
func (h *BookingHandler) Cancel(c *gin.Context) {
	appt, err := h.Bookings.CancelAppointment(c.Request.Context(), c.Param("id"), currentUserID(c), currentUserRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMine returns the authenticated user's appointments, from whichever side
// of the booking they own.
func (h *BookingHandler) ListMine(c *gin.Context) {
	appts, err := h.Bookings.ListAppointmentsForUser(c.Request.Context(), currentUserID(c), currentUserRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}
