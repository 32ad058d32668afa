package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"schedly/models"
	"schedly/utils"

	"go.uber.org/zap"
)

const scheduleCacheTTL = 5 * time.Minute

// hhmmRe accepts strict HH:MM (00:00..23:59) only, so nothing malformed can
// reach minute arithmetic.
var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

func parseHHMM(s string) (int, error) {
	m := hhmmRe.FindStringSubmatch(s)
	if m == nil {
		return 0, newValidationError("invalid time (expected HH:MM): %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, nil
}

func scheduleCacheKey(businessID string) string {
	return "availability:" + businessID
}

// GetWeeklySchedule assembles the windows and breaks of a business. Absent
// weekdays are simply missing from Days; an empty Days list is a valid
// "never configured" state.
func (s *DefaultScheduleService) GetWeeklySchedule(ctx context.Context, businessID string) (*models.WeeklySchedule, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, scheduleCacheKey(businessID)).Result(); err == nil {
			var cached models.WeeklySchedule
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	windows, err := s.Availability.GetWindows(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load windows: %w", err)
	}
	breaks, err := s.Availability.GetBreaks(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load breaks: %w", err)
	}

	breaksByDay := make(map[int][]models.BreakInterval)
	for _, b := range breaks {
		breaksByDay[b.DayOfWeek] = append(breaksByDay[b.DayOfWeek], models.BreakInterval{
			StartMin: b.StartMin,
			EndMin:   b.EndMin,
		})
	}

	days := make([]models.DaySchedule, 0, len(windows))
	for _, w := range windows {
		dayBreaks := breaksByDay[w.DayOfWeek]
		if dayBreaks == nil {
			dayBreaks = []models.BreakInterval{}
		}
		days = append(days, models.DaySchedule{
			DayOfWeek: w.DayOfWeek,
			StartMin:  w.StartMin,
			EndMin:    w.EndMin,
			Breaks:    dayBreaks,
		})
	}

	// Slot step is not persisted per business (kept simple on purpose);
	// callers may pass a preferred value and the server clamps it.
	schedule := &models.WeeklySchedule{
		SlotStepMin: utils.DefaultSlotStepMin,
		Days:        days,
	}

	if s.Cache != nil {
		if data, err := json.Marshal(schedule); err == nil {
			if err := s.Cache.Set(ctx, scheduleCacheKey(businessID), data, scheduleCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache weekly schedule",
					zap.String("businessID", businessID), zap.Error(err))
			}
		}
	}

	return schedule, nil
}

// ReplaceWeeklySchedule validates the input and atomically replaces the whole
// schedule of a business. Disabled weekdays are dropped; breaks that do not
// overlap their day's window are silently discarded rather than erroring, to
// keep schedule editing forgiving.
func (s *DefaultScheduleService) ReplaceWeeklySchedule(ctx context.Context, businessID string, input models.WeeklyScheduleInput) (*models.WeeklySchedule, error) {
	var windows []models.WeeklyWindow
	var breaks []models.WeeklyBreak

	for _, day := range input.Days {
		if !day.Enabled {
			continue
		}
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, newValidationError("dayOfWeek must be 0..6, got %d", day.DayOfWeek)
		}
		if day.Start == "" || day.End == "" {
			return nil, newValidationError("missing start/end for enabled day %d", day.DayOfWeek)
		}
		startMin, err := parseHHMM(day.Start)
		if err != nil {
			return nil, err
		}
		endMin, err := parseHHMM(day.End)
		if err != nil {
			return nil, err
		}
		if endMin <= startMin {
			return nil, newValidationError("end must be after start for day %d", day.DayOfWeek)
		}

		windows = append(windows, models.WeeklyWindow{
			BusinessID: businessID,
			DayOfWeek:  day.DayOfWeek,
			StartMin:   startMin,
			EndMin:     endMin,
		})

		for _, b := range day.Breaks {
			bStart, err := parseHHMM(b.Start)
			if err != nil {
				return nil, err
			}
			bEnd, err := parseHHMM(b.End)
			if err != nil {
				return nil, err
			}
			if bEnd <= bStart {
				continue
			}
			// Breaks fully outside the working window are inert; drop them.
			if !utils.Overlaps(bStart, bEnd, startMin, endMin) {
				continue
			}
			breaks = append(breaks, models.WeeklyBreak{
				BusinessID: businessID,
				DayOfWeek:  day.DayOfWeek,
				StartMin:   bStart,
				EndMin:     bEnd,
			})
		}
	}

	if err := s.Availability.ReplaceSchedule(ctx, businessID, windows, breaks); err != nil {
		return nil, fmt.Errorf("failed to replace schedule: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, scheduleCacheKey(businessID)).Err(); err != nil {
			utils.GetLogger().Warn("failed to invalidate schedule cache",
				zap.String("businessID", businessID), zap.Error(err))
		}
	}

	schedule, err := s.GetWeeklySchedule(ctx, businessID)
	if err != nil {
		return nil, err
	}
	schedule.SlotStepMin = utils.ClampInt(orDefault(input.SlotStepMin), utils.MinSlotStepMin, utils.MaxSlotStepMin)
	return schedule, nil
}

func orDefault(step int) int {
	if step == 0 {
		return utils.DefaultSlotStepMin
	}
	return step
}

// IsInstantWithinAvailability resolves the business's stored timezone offset,
// converts startAt to the local weekday and minute-of-day, and requires the
// interval to sit fully inside that weekday's window and off every break.
// A business with no configured windows at all is treated as always
// available unless StrictAvailability is set, so accounts that never went
// through schedule setup stay bookable.
func (s *DefaultScheduleService) IsInstantWithinAvailability(ctx context.Context, businessID string, startAt time.Time, durationMin int) (bool, error) {
	schedule, err := s.GetWeeklySchedule(ctx, businessID)
	if err != nil {
		return false, err
	}
	if len(schedule.Days) == 0 {
		return !s.StrictAvailability, nil
	}

	offsetMin, err := s.Users.TimezoneOffsetMin(businessID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve timezone offset: %w", err)
	}
	offsetMin = utils.ClampTimezoneOffset(offsetMin)

	dayOfWeek := utils.LocalDayOfWeek(startAt, offsetMin)
	startMin := utils.LocalMinuteOfDay(startAt, offsetMin)
	endMin := startMin + durationMin

	var day *models.DaySchedule
	for i := range schedule.Days {
		if schedule.Days[i].DayOfWeek == dayOfWeek {
			day = &schedule.Days[i]
			break
		}
	}
	if day == nil {
		return false, nil
	}

	if startMin < day.StartMin || endMin > day.EndMin {
		return false, nil
	}
	for _, b := range day.Breaks {
		if utils.Overlaps(startMin, endMin, b.StartMin, b.EndMin) {
			return false, nil
		}
	}
	return true, nil
}
