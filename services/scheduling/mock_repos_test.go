package scheduling

import (
	"context"
	"sort"
	"time"

	userRepo "schedly/database/repository/user"
	"schedly/models"
)

// fakeAvailabilityRepo keeps schedule rows in memory and records replace
// calls.
type fakeAvailabilityRepo struct {
	windows []models.WeeklyWindow
	breaks  []models.WeeklyBreak

	replaceCalls int
}

func (f *fakeAvailabilityRepo) GetWindows(ctx context.Context, businessID string) ([]models.WeeklyWindow, error) {
	var out []models.WeeklyWindow
	for _, w := range f.windows {
		if w.BusinessID == businessID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (f *fakeAvailabilityRepo) GetBreaks(ctx context.Context, businessID string) ([]models.WeeklyBreak, error) {
	var out []models.WeeklyBreak
	for _, b := range f.breaks {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartMin < out[j].StartMin
	})
	return out, nil
}

func (f *fakeAvailabilityRepo) ReplaceSchedule(ctx context.Context, businessID string, windows []models.WeeklyWindow, breaks []models.WeeklyBreak) error {
	var keptWindows []models.WeeklyWindow
	for _, w := range f.windows {
		if w.BusinessID != businessID {
			keptWindows = append(keptWindows, w)
		}
	}
	f.windows = append(keptWindows, windows...)

	var keptBreaks []models.WeeklyBreak
	for _, b := range f.breaks {
		if b.BusinessID != businessID {
			keptBreaks = append(keptBreaks, b)
		}
	}
	f.breaks = append(keptBreaks, breaks...)

	f.replaceCalls++
	return nil
}

// fakeUserRepo serves the small slice of UserRepository the schedule and
// booking paths touch.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	m := make(map[string]*models.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.TokenHash == tokenHash {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) GetAll(role string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return userRepo.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateSetDocument(id string, updateDoc map[string]interface{}) error {
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	if v, ok := updateDoc["tokenHash"]; ok {
		u.TokenHash, _ = v.(string)
	}
	return nil
}

func (f *fakeUserRepo) Delete(id string) error {
	if _, ok := f.users[id]; !ok {
		return userRepo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) TimezoneOffsetMin(id string) (int, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	return u.TimezoneOffsetMin, nil
}

// fakeAppointmentRepo serves the read side the slot generator needs.
type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListBookedInRange(ctx context.Context, businessID string, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.BusinessID != businessID || a.Status != models.AppointmentBooked {
			continue
		}
		if a.StartAt.Before(from) || !a.StartAt.Before(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) InsertBookedIfNoConflict(ctx context.Context, appt *models.Appointment) error {
	appt.Status = models.AppointmentBooked
	f.appointments = append(f.appointments, *appt)
	return nil
}

func (f *fakeAppointmentRepo) UpdateTimesIfNoConflict(ctx context.Context, id string, startAt time.Time, durationMin int) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) SetStatus(ctx context.Context, id string, status string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) BusinessIDsWithBooked(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListBookedByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return nil, nil
}

func booked(businessID string, startAt time.Time, durationMin int) models.Appointment {
	return models.Appointment{
		ID:          "appt-" + startAt.Format("150405"),
		ClientID:    "client-1",
		BusinessID:  businessID,
		StartAt:     startAt,
		DurationMin: durationMin,
		Status:      models.AppointmentBooked,
	}
}
