package utils

import "time"

// Appointment duration bounds, integer minutes.
const (
	MinDurationMin = 15
	MaxDurationMin = 240
)

// Slot generation parameters. Steps outside [MinSlotStepMin, MaxSlotStepMin]
// are clamped, never rejected.
const (
	DefaultSlotStepMin = 15
	MinSlotStepMin     = 5
	MaxSlotStepMin     = 120
)

// SlotGracePeriod keeps slots that are about to start out of listings, so a
// client never gets offered an instant that is already past by the time they
// submit.
const SlotGracePeriod = time.Minute

// MaxTimezoneOffsetMin bounds stored timezone offsets to +/- 14 hours.
const MaxTimezoneOffsetMin = 14 * 60

// ClampInt bounds n to [min, max].
func ClampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// ClampTimezoneOffset bounds a stored offset to the valid range.
func ClampTimezoneOffset(offsetMin int) int {
	return ClampInt(offsetMin, -MaxTimezoneOffsetMin, MaxTimezoneOffsetMin)
}
