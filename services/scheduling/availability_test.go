package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"schedly/models"
	"schedly/utils"

	"go.uber.org/zap"
)

func init() {
	utils.Logger = zap.NewNop()
}

func newTestService(avail *fakeAvailabilityRepo, users *fakeUserRepo, appts *fakeAppointmentRepo) *DefaultScheduleService {
	if avail == nil {
		avail = &fakeAvailabilityRepo{}
	}
	if users == nil {
		users = newFakeUserRepo()
	}
	if appts == nil {
		appts = &fakeAppointmentRepo{}
	}
	return &DefaultScheduleService{
		Availability: avail,
		Users:        users,
		Appointments: appts,
	}
}

func businessUser(id string, tzOffsetMin int) *models.User {
	return &models.User{
		ID:                id,
		Name:              "Biz",
		Email:             id + "@example.com",
		Role:              models.RoleBusiness,
		TimezoneOffsetMin: tzOffsetMin,
	}
}

func weekdayInput(day int, start, end string, breaks ...models.BreakInput) models.DayInput {
	return models.DayInput{DayOfWeek: day, Enabled: true, Start: start, End: end, Breaks: breaks}
}

func TestGetWeeklyScheduleUnconfigured(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	schedule, err := svc.GetWeeklySchedule(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("GetWeeklySchedule: %v", err)
	}
	if len(schedule.Days) != 0 {
		t.Errorf("expected empty Days for unconfigured business, got %d", len(schedule.Days))
	}
	if schedule.SlotStepMin != utils.DefaultSlotStepMin {
		t.Errorf("SlotStepMin = %d, want %d", schedule.SlotStepMin, utils.DefaultSlotStepMin)
	}
}

func TestReplaceWeeklySchedule(t *testing.T) {
	avail := &fakeAvailabilityRepo{}
	svc := newTestService(avail, nil, nil)

	input := models.WeeklyScheduleInput{
		SlotStepMin: 30,
		Days: []models.DayInput{
			weekdayInput(1, "09:00", "17:00", models.BreakInput{Start: "13:00", End: "14:00"}),
			weekdayInput(3, "10:00", "16:00"),
			{DayOfWeek: 5, Enabled: false},
		},
	}

	schedule, err := svc.ReplaceWeeklySchedule(context.Background(), "biz-1", input)
	if err != nil {
		t.Fatalf("ReplaceWeeklySchedule: %v", err)
	}
	if avail.replaceCalls != 1 {
		t.Fatalf("replaceCalls = %d, want 1", avail.replaceCalls)
	}
	if schedule.SlotStepMin != 30 {
		t.Errorf("SlotStepMin = %d, want 30", schedule.SlotStepMin)
	}
	if len(schedule.Days) != 2 {
		t.Fatalf("Days = %d, want 2 (disabled day dropped)", len(schedule.Days))
	}

	monday := schedule.Days[0]
	if monday.DayOfWeek != 1 || monday.StartMin != 540 || monday.EndMin != 1020 {
		t.Errorf("monday = %+v, want day 1, 540..1020", monday)
	}
	if len(monday.Breaks) != 1 || monday.Breaks[0].StartMin != 780 || monday.Breaks[0].EndMin != 840 {
		t.Errorf("monday breaks = %+v, want one 780..840", monday.Breaks)
	}
}

func TestReplaceWeeklyScheduleValidation(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		input models.WeeklyScheduleInput
	}{
		{"bad dayOfWeek", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(7, "09:00", "17:00")}}},
		{"negative dayOfWeek", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(-1, "09:00", "17:00")}}},
		{"missing times", models.WeeklyScheduleInput{Days: []models.DayInput{{DayOfWeek: 1, Enabled: true}}}},
		{"malformed time", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(1, "9:00", "17:00")}}},
		{"hour out of range", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(1, "24:00", "25:00")}}},
		{"end before start", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(1, "17:00", "09:00")}}},
		{"end equals start", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(1, "09:00", "09:00")}}},
		{"malformed break", models.WeeklyScheduleInput{Days: []models.DayInput{weekdayInput(1, "09:00", "17:00", models.BreakInput{Start: "13:xx", End: "14:00"})}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ReplaceWeeklySchedule(ctx, "biz-1", tc.input)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestReplaceWeeklyScheduleDropsInertBreaks(t *testing.T) {
	avail := &fakeAvailabilityRepo{}
	svc := newTestService(avail, nil, nil)

	input := models.WeeklyScheduleInput{
		Days: []models.DayInput{
			weekdayInput(1, "09:00", "17:00",
				models.BreakInput{Start: "07:00", End: "08:00"}, // before window
				models.BreakInput{Start: "18:00", End: "19:00"}, // after window
				models.BreakInput{Start: "12:00", End: "12:00"}, // zero length
				models.BreakInput{Start: "16:30", End: "17:30"}, // straddles the end, kept
			),
		},
	}

	schedule, err := svc.ReplaceWeeklySchedule(context.Background(), "biz-1", input)
	if err != nil {
		t.Fatalf("ReplaceWeeklySchedule: %v", err)
	}
	breaks := schedule.Days[0].Breaks
	if len(breaks) != 1 {
		t.Fatalf("breaks = %+v, want only the straddling one", breaks)
	}
	if breaks[0].StartMin != 990 || breaks[0].EndMin != 1050 {
		t.Errorf("kept break = %+v, want 990..1050", breaks[0])
	}
}

func TestReplaceWeeklyScheduleIdempotent(t *testing.T) {
	avail := &fakeAvailabilityRepo{}
	svc := newTestService(avail, nil, nil)
	ctx := context.Background()

	input := models.WeeklyScheduleInput{
		Days: []models.DayInput{
			weekdayInput(1, "09:00", "17:00", models.BreakInput{Start: "13:00", End: "14:00"}),
			weekdayInput(2, "09:00", "12:00"),
		},
	}

	first, err := svc.ReplaceWeeklySchedule(ctx, "biz-1", input)
	if err != nil {
		t.Fatalf("first replace: %v", err)
	}
	second, err := svc.ReplaceWeeklySchedule(ctx, "biz-1", input)
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}

	if len(first.Days) != len(second.Days) {
		t.Fatalf("day counts differ: %d vs %d", len(first.Days), len(second.Days))
	}
	for i := range first.Days {
		a, b := first.Days[i], second.Days[i]
		if a.DayOfWeek != b.DayOfWeek || a.StartMin != b.StartMin || a.EndMin != b.EndMin || len(a.Breaks) != len(b.Breaks) {
			t.Errorf("day %d differs after identical replace: %+v vs %+v", i, a, b)
		}
	}
	if got := len(avail.windows); got != 2 {
		t.Errorf("stored windows = %d, want 2 (no duplicates)", got)
	}
}

func TestReplaceWeeklyScheduleClampsSlotStep(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	ctx := context.Background()

	input := models.WeeklyScheduleInput{SlotStepMin: 3, Days: []models.DayInput{weekdayInput(1, "09:00", "17:00")}}
	schedule, err := svc.ReplaceWeeklySchedule(ctx, "biz-1", input)
	if err != nil {
		t.Fatalf("ReplaceWeeklySchedule: %v", err)
	}
	if schedule.SlotStepMin != utils.MinSlotStepMin {
		t.Errorf("SlotStepMin = %d, want clamped to %d", schedule.SlotStepMin, utils.MinSlotStepMin)
	}

	input.SlotStepMin = 600
	schedule, err = svc.ReplaceWeeklySchedule(ctx, "biz-1", input)
	if err != nil {
		t.Fatalf("ReplaceWeeklySchedule: %v", err)
	}
	if schedule.SlotStepMin != utils.MaxSlotStepMin {
		t.Errorf("SlotStepMin = %d, want clamped to %d", schedule.SlotStepMin, utils.MaxSlotStepMin)
	}
}

func TestIsInstantWithinAvailability(t *testing.T) {
	users := newFakeUserRepo(businessUser("biz-1", 0))
	avail := &fakeAvailabilityRepo{
		windows: []models.WeeklyWindow{
			{BusinessID: "biz-1", DayOfWeek: 1, StartMin: 540, EndMin: 1020},
		},
		breaks: []models.WeeklyBreak{
			{BusinessID: "biz-1", DayOfWeek: 1, StartMin: 780, EndMin: 840},
		},
	}
	svc := newTestService(avail, users, nil)
	ctx := context.Background()

	monday := func(hour, min int) time.Time {
		return time.Date(2030, time.January, 7, hour, min, 0, 0, time.UTC)
	}

	cases := []struct {
		name        string
		startAt     time.Time
		durationMin int
		want        bool
	}{
		{"inside window", monday(9, 0), 60, true},
		{"ends at close", monday(16, 0), 60, true},
		{"overruns close", monday(16, 30), 60, false},
		{"before open", monday(8, 30), 60, false},
		{"overlaps break", monday(12, 30), 60, false},
		{"ends at break start", monday(12, 0), 60, true},
		{"starts at break end", monday(14, 0), 60, true},
		{"closed day", monday(9, 0).AddDate(0, 0, 1), 60, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsInstantWithinAvailability(ctx, "biz-1", tc.startAt, tc.durationMin)
			if err != nil {
				t.Fatalf("IsInstantWithinAvailability: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsInstantWithinAvailabilityHonorsTimezone(t *testing.T) {
	// Business at UTC-5 (offset +300). Monday 09:00 local is 14:00 UTC.
	users := newFakeUserRepo(businessUser("biz-1", 300))
	avail := &fakeAvailabilityRepo{
		windows: []models.WeeklyWindow{
			{BusinessID: "biz-1", DayOfWeek: 1, StartMin: 540, EndMin: 1020},
		},
	}
	svc := newTestService(avail, users, nil)
	ctx := context.Background()

	localNine := time.Date(2030, time.January, 7, 14, 0, 0, 0, time.UTC)
	within, err := svc.IsInstantWithinAvailability(ctx, "biz-1", localNine, 60)
	if err != nil {
		t.Fatalf("IsInstantWithinAvailability: %v", err)
	}
	if !within {
		t.Error("Monday 09:00 local must be within the window")
	}

	// 09:00 UTC is 04:00 local, outside the window.
	utcNine := time.Date(2030, time.January, 7, 9, 0, 0, 0, time.UTC)
	within, err = svc.IsInstantWithinAvailability(ctx, "biz-1", utcNine, 60)
	if err != nil {
		t.Fatalf("IsInstantWithinAvailability: %v", err)
	}
	if within {
		t.Error("04:00 local must be outside the window")
	}
}

func TestUnconfiguredBusinessAvailabilityPolicy(t *testing.T) {
	users := newFakeUserRepo(businessUser("biz-1", 0))
	instant := time.Date(2030, time.January, 7, 3, 0, 0, 0, time.UTC)
	ctx := context.Background()

	open := newTestService(&fakeAvailabilityRepo{}, users, nil)
	within, err := open.IsInstantWithinAvailability(ctx, "biz-1", instant, 60)
	if err != nil {
		t.Fatalf("IsInstantWithinAvailability: %v", err)
	}
	if !within {
		t.Error("unconfigured business must be default-open")
	}

	strict := newTestService(&fakeAvailabilityRepo{}, users, nil)
	strict.StrictAvailability = true
	within, err = strict.IsInstantWithinAvailability(ctx, "biz-1", instant, 60)
	if err != nil {
		t.Fatalf("IsInstantWithinAvailability: %v", err)
	}
	if within {
		t.Error("strict mode must reject unconfigured businesses")
	}
}
