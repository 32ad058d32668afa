package availabilityRepo

import (
	"context"

	"schedly/models"
)

// AvailabilityRepository owns a business's recurring weekly schedule: one
// optional working window per weekday plus zero or more breaks per weekday.
type AvailabilityRepository interface {
	// GetWindows returns all weekday windows for a business, ascending by
	// weekday. An empty slice means the business never configured a schedule.
	GetWindows(ctx context.Context, businessID string) ([]models.WeeklyWindow, error)
	// GetBreaks returns all break rows for a business, ascending by weekday
	// then start minute.
	GetBreaks(ctx context.Context, businessID string) ([]models.WeeklyBreak, error)
	// ReplaceSchedule atomically replaces the whole schedule of a business:
	// windows for weekdays absent from the input are deleted, windows for
	// present weekdays are upserted, and all prior breaks are deleted and
	// re-inserted. A failure mid-write must leave the previous schedule
	// intact, never windows without matching breaks or vice versa.
	ReplaceSchedule(ctx context.Context, businessID string, windows []models.WeeklyWindow, breaks []models.WeeklyBreak) error
}
