package utils

import "time"

// Overlaps is the half-open interval test [aStart, aEnd) vs [bStart, bEnd).
// Touching endpoints never overlap, so back-to-back appointments are legal.
// Used identically for minute-of-day and absolute-instant arithmetic.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// InstantsOverlap applies the same half-open algebra to absolute instants,
// with end = start + duration minutes.
func InstantsOverlap(aStart time.Time, aDurationMin int, bStart time.Time, bDurationMin int) bool {
	aEnd := aStart.Add(time.Duration(aDurationMin) * time.Minute)
	bEnd := bStart.Add(time.Duration(bDurationMin) * time.Minute)
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ToLocal shifts a UTC instant into a business's local frame. tzOffsetMin
// follows Date.getTimezoneOffset() semantics: minutes = UTC - local.
func ToLocal(utc time.Time, tzOffsetMin int) time.Time {
	return utc.Add(-time.Duration(tzOffsetMin) * time.Minute)
}

// LocalDayOfWeek resolves the weekday (0..6, Sunday = 0) of a UTC instant in
// the business's local frame.
func LocalDayOfWeek(utc time.Time, tzOffsetMin int) int {
	return int(ToLocal(utc, tzOffsetMin).UTC().Weekday())
}

// LocalMinuteOfDay resolves the minute-of-day (0..1439) of a UTC instant in
// the business's local frame.
func LocalMinuteOfDay(utc time.Time, tzOffsetMin int) int {
	local := ToLocal(utc, tzOffsetMin).UTC()
	return local.Hour()*60 + local.Minute()
}
