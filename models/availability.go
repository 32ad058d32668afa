package models

// WeeklyWindow is the recurring working interval for one weekday of a
// business, in minutes since local midnight. At most one window per
// (businessId, dayOfWeek); absence means the business is closed that day.
type WeeklyWindow struct {
	BusinessID string `bson:"businessId" json:"businessId"`
	DayOfWeek  int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0..6, Sunday = 0
	StartMin   int    `bson:"startMin" json:"startMin"`
	EndMin     int    `bson:"endMin" json:"endMin"`
}

// WeeklyBreak is one break interval inside a weekday, minutes since local
// midnight. Zero or more per weekday.
type WeeklyBreak struct {
	BusinessID string `bson:"businessId" json:"businessId"`
	DayOfWeek  int    `bson:"dayOfWeek" json:"dayOfWeek"`
	StartMin   int    `bson:"startMin" json:"startMin"`
	EndMin     int    `bson:"endMin" json:"endMin"`
}

// BreakInterval is a break as exposed over the API.
type BreakInterval struct {
	StartMin int `json:"startMin"`
	EndMin   int `json:"endMin"`
}

// DaySchedule is one weekday of the assembled weekly schedule.
type DaySchedule struct {
	DayOfWeek int             `json:"dayOfWeek"`
	StartMin  int             `json:"startMin"`
	EndMin    int             `json:"endMin"`
	Breaks    []BreakInterval `json:"breaks"`
}

// WeeklySchedule is the full recurring schedule of a business. Days missing
// from the list are closed; an empty list means the business never
// configured a schedule.
type WeeklySchedule struct {
	SlotStepMin int           `json:"slotStepMin"`
	Days        []DaySchedule `json:"days"`
}

// BreakInput is a break interval in HH:MM form, as submitted by the business.
type BreakInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayInput is one weekday entry of a schedule replace request. Disabled days
// are dropped entirely; enabled days require HH:MM start/end.
type DayInput struct {
	DayOfWeek int          `json:"dayOfWeek"`
	Enabled   bool         `json:"enabled"`
	Start     string       `json:"start,omitempty"`
	End       string       `json:"end,omitempty"`
	Breaks    []BreakInput `json:"breaks,omitempty"`
}

// WeeklyScheduleInput is the full-replace payload for a business's schedule.
type WeeklyScheduleInput struct {
	SlotStepMin int        `json:"slotStepMin"`
	Days        []DayInput `json:"days" binding:"required"`
}
