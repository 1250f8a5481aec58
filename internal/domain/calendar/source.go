package calendar

import "context"

// AppointmentSource lists the raw appointment records the calendar renders.
// The production implementation talks to the clinic management API; tests
// substitute an in-memory source.
type AppointmentSource interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
}
