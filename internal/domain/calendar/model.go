package calendar

import (
	"encoding/json"
	"strings"
	"time"
)

// Appointment is the raw record served by the upstream clinic API. The
// backend has historically emitted several shapes for the same data, so
// every field is optional and the accessors below normalize across the
// variants. Nothing in this service mutates an Appointment.
type Appointment struct {
	ID                   json.Number    `json:"id"`
	AppointmentDate      string         `json:"appointment_date"`
	AppointmentDateEnd   string         `json:"appointment_date_end,omitempty"`
	DurationMinutes      int            `json:"duration_minutes,omitempty"`
	PatientStatus        string         `json:"patient_status,omitempty"`
	PatientStatusDisplay string         `json:"patient_status_display,omitempty"`
	Status               string         `json:"status,omitempty"`
	StatusDisplay        string         `json:"status_display,omitempty"`
	Doctor               *DoctorRef     `json:"doctor,omitempty"`
	Department           *DepartmentRef `json:"department,omitempty"`
	Patient              *PatientRef    `json:"patient,omitempty"`
}

// DoctorRef carries the doctor display fields used for filtering.
type DoctorRef struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
}

// DepartmentRef carries the department display name used for filtering.
type DepartmentRef struct {
	DepartmentName string `json:"department_name"`
}

// PatientRef carries the patient display name shown on event cards.
type PatientRef struct {
	FullName string `json:"full_name,omitempty"`
}

// DoctorUsername returns the doctor filter key, or "" when absent.
func (a *Appointment) DoctorUsername() string {
	if a.Doctor == nil {
		return ""
	}
	return strings.TrimSpace(a.Doctor.Username)
}

// DepartmentName returns the department filter key, or "" when absent.
func (a *Appointment) DepartmentName() string {
	if a.Department == nil {
		return ""
	}
	return strings.TrimSpace(a.Department.DepartmentName)
}

// PatientName returns the patient display name, or "" when absent.
func (a *Appointment) PatientName() string {
	if a.Patient == nil {
		return ""
	}
	return strings.TrimSpace(a.Patient.FullName)
}

// MinDurationMinutes is the floor applied to appointment durations so that
// zero-width intervals cannot break the overlap sweep.
const MinDurationMinutes = 5

// DefaultDurationMinutes is assumed when the record carries neither an
// explicit duration nor a parseable end time.
const DefaultDurationMinutes = 60

// Duration resolves the appointment length in minutes: the explicit
// duration_minutes field wins, then the end-start difference, then the
// 60-minute default. The result is floored at MinDurationMinutes.
func (a *Appointment) Duration(start time.Time) int {
	dur := a.DurationMinutes
	if dur <= 0 {
		if end, ok := ParseAPIDate(a.AppointmentDateEnd); ok {
			dur = MinutesBetween(start, end)
		}
	}
	if dur <= 0 {
		dur = DefaultDurationMinutes
	}
	if dur < MinDurationMinutes {
		dur = MinDurationMinutes
	}
	return dur
}

// Event is an appointment normalized for layout: parsed start, resolved
// duration and classified status. Events are derived fresh on every compose
// pass and never persisted.
type Event struct {
	ID         string    `json:"id"`
	Start      time.Time `json:"start_time"`
	Duration   int       `json:"duration_minutes"`
	Status     Status    `json:"status"`
	Doctor     string    `json:"doctor,omitempty"`
	Department string    `json:"department,omitempty"`
	Patient    string    `json:"patient,omitempty"`
}

// End returns the exclusive end instant of the event interval.
func (e Event) End() time.Time {
	return e.Start.Add(time.Duration(e.Duration) * time.Minute)
}

// LayoutSlot is the column assignment computed by LayoutDay for one event.
// Column is the zero-based lane inside the overlap cluster, Columns the
// cluster's total lane count; LeftPct/WidthPct are the percentage geometry
// derived from them.
type LayoutSlot struct {
	Column   int     `json:"column"`
	Columns  int     `json:"columns"`
	LeftPct  float64 `json:"left_pct"`
	WidthPct float64 `json:"width_pct"`
}

// EventBox is a fully laid-out event ready for rendering: the normalized
// event, its column slot and its pixel geometry inside the visible hour
// window.
type EventBox struct {
	Event
	LayoutSlot

	TopPx        float64 `json:"top_px"`
	HeightPx     float64 `json:"height_px"`
	ClippedStart bool    `json:"clipped_start,omitempty"`
	ClippedEnd   bool    `json:"clipped_end,omitempty"`
	StartLabel   string  `json:"start_label"`
	EndLabel     string  `json:"end_label"`
	StatusLabel  string  `json:"status_label"`
}

// Day is one column of the weekly grid.
type Day struct {
	Date   time.Time  `json:"date"`
	Events []EventBox `json:"events"`
}

// NowMarker is the current-time indicator. It is present only when the
// displayed week contains today and the clock falls inside the visible hour
// window.
type NowMarker struct {
	DayIndex int     `json:"day_index"`
	TopPx    float64 `json:"top_px"`
}

// WeekView is the complete derived model for one rendered week. It is
// recomputed atomically from the current appointment snapshot on every
// request; nothing in it is persisted.
type WeekView struct {
	WeekStart time.Time  `json:"week_start"`
	Days      [7]Day     `json:"days"`
	HourSlots []string   `json:"hour_slots"`
	Now       *NowMarker `json:"now,omitempty"`

	// AutoScrollPx is the suggested initial scroll offset; set only when
	// the week contains today.
	AutoScrollPx *float64 `json:"auto_scroll_px,omitempty"`

	// Dropped counts appointments excluded for unparseable dates.
	Dropped int `json:"dropped,omitempty"`
}

// Option is a value/label pair for the doctor and department filters.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
