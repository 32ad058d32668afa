package handlers

import (
	"net/http"
	"strconv"
	"time"

	"schedly/models"
	"schedly/services/booking"
	"schedly/services/scheduling"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes weekly schedule management and free-slot
// queries.
type AvailabilityHandler struct {
	Scheduler scheduling.ScheduleService
}

func NewAvailabilityHandler(scheduler scheduling.ScheduleService) *AvailabilityHandler {
	return &AvailabilityHandler{Scheduler: scheduler}
}

// GetMySchedule returns the authenticated business's weekly schedule.
func (h *AvailabilityHandler) GetMySchedule(c *gin.Context) {
	schedule, err := h.Scheduler.GetWeeklySchedule(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// ReplaceMySchedule validates and atomically replaces the authenticated
// business's weekly schedule, returning the stored result.
func (h *AvailabilityHandler) ReplaceMySchedule(c *gin.Context) {
	var input models.WeeklyScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Invalid request: "+err.Error())
		return
	}

	schedule, err := h.Scheduler.ReplaceWeeklySchedule(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// GetSchedule returns any business's weekly schedule. Read-only and public to
// authenticated users so clients can inspect hours before booking.
func (h *AvailabilityHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.Scheduler.GetWeeklySchedule(c.Request.Context(), c.Param("businessID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// GetFreeSlots enumerates bookable start instants for a business. Accepts
// either ?date=YYYY-MM-DD (one local day) or ?from=&to= (RFC 3339 UTC range),
// plus durationMin and optional slotStepMin.
func (h *AvailabilityHandler) GetFreeSlots(c *gin.Context) {
	businessID := c.Param("businessID")

	durationMin, err := strconv.Atoi(c.DefaultQuery("durationMin", "0"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "durationMin must be an integer")
		return
	}
	slotStepMin, err := strconv.Atoi(c.DefaultQuery("slotStepMin", "0"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "slotStepMin must be an integer")
		return
	}

	var slots []time.Time
	if date := c.Query("date"); date != "" {
		slots, err = h.Scheduler.FreeSlotsForLocalDate(c.Request.Context(), businessID, date, durationMin, slotStepMin)
	} else {
		var from, to time.Time
		from, err = time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "from must be an RFC 3339 timestamp")
			return
		}
		to, err = time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "to must be an RFC 3339 timestamp")
			return
		}
		slots, err = h.Scheduler.GenerateFreeSlots(c.Request.Context(), businessID, from, to, durationMin, slotStepMin)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.UTC().Format(time.RFC3339))
	}
	c.JSON(http.StatusOK, gin.H{"businessId": businessID, "durationMin": durationMin, "slots": out})
}
