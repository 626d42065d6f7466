package models

import (
	"errors"
	"time"
)

// AppointmentDuration is the fixed length of every booked appointment,
// whatever service was chosen.
const AppointmentDuration = 60 * time.Minute

// Appointment statuses reported by the service.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// Client is the booking-time record of the person receiving a service.
// A new one is created for every booking submission.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	SalonID int64  `json:"salon_id"`
	UserID  *int64 `json:"user_id,omitempty"`
}

// NewClient is the payload of POST /clients/.
type NewClient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	SalonID int64  `json:"salon_id"`
}

// Appointment links a Master and a Client over [StartTime, EndTime).
type Appointment struct {
	ID        int64     `json:"id"`
	MasterID  int64     `json:"master_id"`
	ClientID  int64     `json:"client_id"`
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`
	Service   Service   `json:"service"`
	Price     *float64  `json:"price,omitempty"`
	Status    string    `json:"status,omitempty"`
}

// Upcoming reports whether the appointment starts after now.
func (a Appointment) Upcoming(now time.Time) bool {
	return a.StartTime.After(now)
}

// NewAppointment is the payload of POST /appointments/.
type NewAppointment struct {
	MasterID  int64     `json:"master_id"`
	ClientID  int64     `json:"client_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Service   Service   `json:"service"`
}

// Validate checks the time range invariant.
func (a NewAppointment) Validate() error {
	if !a.EndTime.After(a.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
