package models

import "time"

// Appointment status values. BOOKED -> CANCELED is the only transition and
// it is terminal.
const (
	AppointmentBooked   = "BOOKED"
	AppointmentCanceled = "CANCELED"
)

// Appointment is the booked unit. StartAt is an absolute UTC instant; the
// occupied interval is the half-open [StartAt, StartAt+DurationMin).
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	ClientID    string    `bson:"clientId" json:"clientId"`
	BusinessID  string    `bson:"businessId" json:"businessId"`
	StartAt     time.Time `bson:"startAt" json:"startAt"`
	DurationMin int       `bson:"durationMin" json:"durationMin"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EndAt is the exclusive end instant of the appointment interval.
func (a *Appointment) EndAt() time.Time {
	return a.StartAt.Add(time.Duration(a.DurationMin) * time.Minute)
}
