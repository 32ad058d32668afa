package scheduling

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"schedly/models"
	"schedly/utils"
)

var dateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// GenerateFreeSlots walks the local calendar days covering
// [rangeStart, rangeEnd), steps candidate start minutes through each
// weekday's window, and keeps the candidates that fall inside the range, off
// breaks, off existing BOOKED appointments, and more than the clock-skew
// grace period in the future. Results are ascending UTC instants.
func (s *DefaultScheduleService) GenerateFreeSlots(ctx context.Context, businessID string, rangeStart, rangeEnd time.Time, durationMin, slotStepMin int) ([]time.Time, error) {
	if durationMin < utils.MinDurationMin || durationMin > utils.MaxDurationMin {
		return nil, newValidationError("durationMin must be between %d and %d", utils.MinDurationMin, utils.MaxDurationMin)
	}
	slotStepMin = utils.ClampInt(orDefault(slotStepMin), utils.MinSlotStepMin, utils.MaxSlotStepMin)

	slots := []time.Time{}
	if !rangeEnd.After(rangeStart) {
		return slots, nil
	}

	// Resolve the business's stored offset once; the whole walk happens in
	// that single local frame.
	offsetMin, err := s.Users.TimezoneOffsetMin(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone offset: %w", err)
	}
	offsetMin = utils.ClampTimezoneOffset(offsetMin)

	schedule, err := s.GetWeeklySchedule(ctx, businessID)
	if err != nil {
		return nil, err
	}

	windowByDay := make(map[int]models.DaySchedule, len(schedule.Days))
	for _, d := range schedule.Days {
		windowByDay[d.DayOfWeek] = d
	}

	// Superset prefilter: anything that could overlap the range starts within
	// a max-duration pad on either side. Exact overlap is re-checked per
	// candidate below.
	pad := time.Duration(utils.MaxDurationMin) * time.Minute
	booked, err := s.Appointments.ListBookedInRange(ctx, businessID, rangeStart.Add(-pad), rangeEnd.Add(pad))
	if err != nil {
		return nil, fmt.Errorf("failed to load booked appointments: %w", err)
	}

	offset := time.Duration(offsetMin) * time.Minute
	notBefore := time.Now().Add(utils.SlotGracePeriod)

	// Walk local calendar days from the local day of rangeStart through the
	// local day of rangeEnd. Local midnight in UTC terms is local + offset.
	firstLocal := utils.ToLocal(rangeStart, offsetMin).UTC()
	lastLocal := utils.ToLocal(rangeEnd, offsetMin).UTC()
	day := time.Date(firstLocal.Year(), firstLocal.Month(), firstLocal.Day(), 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(lastLocal.Year(), lastLocal.Month(), lastLocal.Day(), 0, 0, 0, 0, time.UTC)

	for ; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		window, ok := windowByDay[int(day.Weekday())]
		if !ok {
			continue
		}

		for t := window.StartMin; t+durationMin <= window.EndMin; t += slotStepMin {
			tEnd := t + durationMin

			startAt := day.Add(time.Duration(t) * time.Minute).Add(offset)
			if startAt.Before(rangeStart) || !startAt.Before(rangeEnd) {
				continue
			}
			if !startAt.After(notBefore) {
				continue
			}

			inBreak := false
			for _, b := range window.Breaks {
				if utils.Overlaps(t, tEnd, b.StartMin, b.EndMin) {
					inBreak = true
					break
				}
			}
			if inBreak {
				continue
			}

			conflict := false
			for _, appt := range booked {
				if utils.InstantsOverlap(appt.StartAt, appt.DurationMin, startAt, durationMin) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			slots = append(slots, startAt)
		}
	}

	return slots, nil
}

// FreeSlotsForLocalDate lists free slots for one calendar day, interpreting
// the YYYY-MM-DD string as a date in the business's local frame.
func (s *DefaultScheduleService) FreeSlotsForLocalDate(ctx context.Context, businessID string, date string, durationMin, slotStepMin int) ([]time.Time, error) {
	m := dateRe.FindStringSubmatch(date)
	if m == nil {
		return nil, newValidationError("invalid date (expected YYYY-MM-DD): %q", date)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	dayNum, _ := strconv.Atoi(m[3])

	// time.Date normalizes overflow (month 13, Feb 30); a round-trip check
	// rejects dates that do not exist on the calendar.
	localMidnight := time.Date(year, time.Month(month), dayNum, 0, 0, 0, 0, time.UTC)
	if localMidnight.Year() != year || localMidnight.Month() != time.Month(month) || localMidnight.Day() != dayNum {
		return nil, newValidationError("invalid date (no such calendar day): %q", date)
	}

	offsetMin, err := s.Users.TimezoneOffsetMin(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone offset: %w", err)
	}
	offsetMin = utils.ClampTimezoneOffset(offsetMin)

	// Local midnight of the requested date, expressed in UTC.
	from := localMidnight.Add(time.Duration(offsetMin) * time.Minute)
	to := from.Add(24 * time.Hour)

	return s.GenerateFreeSlots(ctx, businessID, from, to, durationMin, slotStepMin)
}
