package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "schedly/database/repository/appointment"
	userRepo "schedly/database/repository/user"
	"schedly/models"
	"schedly/utils"
)

// memAppointmentRepo mirrors the Mongo repository's conflict semantics in
// memory, including the half-open overlap scan on writes.
type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[string]*models.Appointment)}
}

func (m *memAppointmentRepo) conflictsLocked(businessID string, startAt time.Time, durationMin int, excludeID string) bool {
	for _, a := range m.appointments {
		if a.BusinessID != businessID || a.ID == excludeID || a.Status != models.AppointmentBooked {
			continue
		}
		if utils.InstantsOverlap(a.StartAt, a.DurationMin, startAt, durationMin) {
			return true
		}
	}
	return false
}

func (m *memAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAppointmentRepo) listBy(match func(*models.Appointment) bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if match(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

func (m *memAppointmentRepo) ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	return m.listBy(func(a *models.Appointment) bool { return a.ClientID == clientID }), nil
}

func (m *memAppointmentRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return m.listBy(func(a *models.Appointment) bool { return a.BusinessID == businessID }), nil
}

func (m *memAppointmentRepo) ListBookedInRange(ctx context.Context, businessID string, from, to time.Time) ([]models.Appointment, error) {
	return m.listBy(func(a *models.Appointment) bool {
		return a.BusinessID == businessID && a.Status == models.AppointmentBooked &&
			!a.StartAt.Before(from) && a.StartAt.Before(to)
	}), nil
}

func (m *memAppointmentRepo) InsertBookedIfNoConflict(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflictsLocked(appt.BusinessID, appt.StartAt, appt.DurationMin, "") {
		return appointmentRepo.ErrBookingConflict
	}
	now := time.Now().UTC()
	appt.Status = models.AppointmentBooked
	appt.CreatedAt = now
	appt.UpdatedAt = now
	copied := *appt
	m.appointments[appt.ID] = &copied
	return nil
}

func (m *memAppointmentRepo) UpdateTimesIfNoConflict(ctx context.Context, id string, startAt time.Time, durationMin int) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	if m.conflictsLocked(a.BusinessID, startAt, durationMin, id) {
		return nil, appointmentRepo.ErrBookingConflict
	}
	a.StartAt = startAt
	a.DurationMin = durationMin
	a.UpdatedAt = time.Now().UTC()
	copied := *a
	return &copied, nil
}

func (m *memAppointmentRepo) SetStatus(ctx context.Context, id string, status string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	copied := *a
	return &copied, nil
}

func (m *memAppointmentRepo) BusinessIDsWithBooked(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	for _, a := range m.listBy(func(a *models.Appointment) bool { return a.Status == models.AppointmentBooked }) {
		seen[a.BusinessID] = struct{}{}
	}
	var out []string
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memAppointmentRepo) ListBookedByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return m.listBy(func(a *models.Appointment) bool {
		return a.BusinessID == businessID && a.Status == models.AppointmentBooked
	}), nil
}

// memUserRepo holds users keyed by ID.
type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	m := make(map[string]*models.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &memUserRepo{users: m}
}

func (f *memUserRepo) Create(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *memUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (f *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.TokenHash == tokenHash {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *memUserRepo) GetAll(role string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *memUserRepo) Update(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return userRepo.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *memUserRepo) UpdateSetDocument(id string, updateDoc map[string]interface{}) error {
	if _, ok := f.users[id]; !ok {
		return userRepo.ErrNotFound
	}
	return nil
}

func (f *memUserRepo) Delete(id string) error {
	if _, ok := f.users[id]; !ok {
		return userRepo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *memUserRepo) TimezoneOffsetMin(id string) (int, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	return u.TimezoneOffsetMin, nil
}

// memAvailabilityRepo serves a fixed weekly schedule.
type memAvailabilityRepo struct {
	windows []models.WeeklyWindow
	breaks  []models.WeeklyBreak
}

func (f *memAvailabilityRepo) GetWindows(ctx context.Context, businessID string) ([]models.WeeklyWindow, error) {
	var out []models.WeeklyWindow
	for _, w := range f.windows {
		if w.BusinessID == businessID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *memAvailabilityRepo) GetBreaks(ctx context.Context, businessID string) ([]models.WeeklyBreak, error) {
	var out []models.WeeklyBreak
	for _, b := range f.breaks {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *memAvailabilityRepo) ReplaceSchedule(ctx context.Context, businessID string, windows []models.WeeklyWindow, breaks []models.WeeklyBreak) error {
	f.windows = windows
	f.breaks = breaks
	return nil
}
