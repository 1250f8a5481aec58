package calendar

import (
	"fmt"
	"sort"
	"time"
)

// FilterAll is the wildcard value for the doctor and department filters.
const FilterAll = "all"

// GridConfig holds the compile-time render constants of the weekly grid.
// Values are configurable through the environment but never user-facing.
type GridConfig struct {
	DayStartHour     int
	DayEndHour       int
	RowHeightPx      float64
	MinEventHeightPx float64
	ColumnPadPct     float64
	ScrollLeadPx     float64
}

// DefaultGridConfig mirrors the dashboard's visual constants: a 08:00-20:00
// window at 164px per hour.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		DayStartHour:     8,
		DayEndHour:       20,
		RowHeightPx:      164,
		MinEventHeightPx: 96,
		ColumnPadPct:     DefaultColumnPadPct,
		ScrollLeadPx:     120,
	}
}

// Validate rejects hour windows the grid cannot render.
func (g GridConfig) Validate() error {
	if g.DayStartHour < 0 || g.DayEndHour > 24 || g.DayStartHour >= g.DayEndHour {
		return fmt.Errorf("invalid hour window %d-%d", g.DayStartHour, g.DayEndHour)
	}
	if g.RowHeightPx <= 0 {
		return fmt.Errorf("row height must be positive, got %v", g.RowHeightPx)
	}
	return nil
}

// PxPerMinute is the vertical scale shared by events and the now marker.
func (g GridConfig) PxPerMinute() float64 {
	return g.RowHeightPx / 60
}

// BuildHourSlots returns the half-open hour labels of the visible window,
// e.g. ["08:00", ..., "19:00"] for an 8-20 window.
func BuildHourSlots(startHour, endHour int) []string {
	slots := make([]string, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// WeekQuery selects what ComposeWeek renders: the week and the doctor and
// department filters. Empty filter values mean FilterAll. All view state is
// explicit here; compose itself keeps no hidden state.
type WeekQuery struct {
	WeekStart  time.Time
	Doctor     string
	Department string
}

func (q WeekQuery) matches(a *Appointment) bool {
	if q.Doctor != "" && q.Doctor != FilterAll && a.DoctorUsername() != q.Doctor {
		return false
	}
	if q.Department != "" && q.Department != FilterAll && a.DepartmentName() != q.Department {
		return false
	}
	return true
}

// ComposeWeek derives the full weekly view model from the raw appointment
// snapshot: filter by week and doctor/department, group by weekday, lay out
// overlaps per day, and attach pixel geometry, the hour axis, the now marker
// and the auto-scroll hint. Records with unparseable dates are dropped and
// counted. The pass is pure: same inputs, same view.
func ComposeWeek(records []Appointment, q WeekQuery, now time.Time, cfg GridConfig) WeekView {
	weekStart := StartOfWeek(q.WeekStart)
	weekEnd := AddDays(weekStart, 7)

	view := WeekView{
		WeekStart: weekStart,
		HourSlots: BuildHourSlots(cfg.DayStartHour, cfg.DayEndHour),
	}
	for i := range view.Days {
		view.Days[i].Date = AddDays(weekStart, i)
		view.Days[i].Events = []EventBox{}
	}

	byDay := map[int][]Event{}
	for i := range records {
		rec := &records[i]
		start, ok := ParseAPIDate(rec.AppointmentDate)
		if !ok {
			view.Dropped++
			continue
		}
		if !q.matches(rec) {
			continue
		}
		if start.Before(weekStart) || !start.Before(weekEnd) {
			continue
		}
		dayIdx := (int(start.Weekday()) + 6) % 7
		byDay[dayIdx] = append(byDay[dayIdx], Event{
			ID:         rec.ID.String(),
			Start:      start,
			Duration:   rec.Duration(start),
			Status:     ClassifyStatus(rec),
			Doctor:     rec.DoctorUsername(),
			Department: rec.DepartmentName(),
			Patient:    rec.PatientName(),
		})
	}

	windowStartMin := cfg.DayStartHour * 60
	windowEndMin := cfg.DayEndHour * 60
	ppm := cfg.PxPerMinute()

	for dayIdx := 0; dayIdx < 7; dayIdx++ {
		events := byDay[dayIdx]
		if len(events) == 0 {
			continue
		}
		slots := LayoutDay(events, cfg.ColumnPadPct)

		boxes := make([]EventBox, 0, len(events))
		for i, ev := range events {
			box, visible := placeEvent(ev, slots[i], windowStartMin, windowEndMin, ppm, cfg.MinEventHeightPx)
			if !visible {
				continue
			}
			boxes = append(boxes, box)
		}
		sort.SliceStable(boxes, func(a, b int) bool {
			return boxes[a].Start.Before(boxes[b].Start)
		})
		view.Days[dayIdx].Events = boxes
	}

	if !now.Before(weekStart) && now.Before(weekEnd) {
		view.Now = nowMarker(now, windowStartMin, windowEndMin, ppm)
		scroll := autoScrollPx(now, windowStartMin, windowEndMin, ppm, cfg.ScrollLeadPx)
		view.AutoScrollPx = &scroll
	}

	return view
}

// placeEvent computes the vertical geometry of one event inside the visible
// hour window. Events crossing a window edge are truncated, never hidden;
// events entirely outside on both ends are omitted.
func placeEvent(ev Event, slot LayoutSlot, windowStartMin, windowEndMin int, ppm, minHeightPx float64) (EventBox, bool) {
	startMin := ClockMinutes(ev.Start)
	endMin := startMin + ev.Duration

	if endMin <= windowStartMin || startMin >= windowEndMin {
		return EventBox{}, false
	}

	visStart := ClampInt(startMin, windowStartMin, windowEndMin)
	visEnd := ClampInt(endMin, windowStartMin, windowEndMin)

	box := EventBox{
		Event:        ev,
		LayoutSlot:   slot,
		TopPx:        float64(visStart-windowStartMin) * ppm,
		HeightPx:     float64(visEnd-visStart) * ppm,
		ClippedStart: startMin < windowStartMin,
		ClippedEnd:   endMin > windowEndMin,
		StartLabel:   FormatClock(ev.Start),
		EndLabel:     FormatClock(ev.End()),
		StatusLabel:  ev.Status.Style().Label,
	}
	if box.HeightPx < minHeightPx {
		box.HeightPx = minHeightPx
	}
	return box, true
}

// nowMarker positions the current-time indicator, or returns nil when the
// clock is outside the visible window.
func nowMarker(now time.Time, windowStartMin, windowEndMin int, ppm float64) *NowMarker {
	mins := ClockMinutes(now)
	if mins < windowStartMin || mins > windowEndMin {
		return nil
	}
	return &NowMarker{
		DayIndex: (int(now.Weekday()) + 6) % 7,
		TopPx:    float64(mins-windowStartMin) * ppm,
	}
}

// autoScrollPx suggests an initial scroll offset that puts the current time
// a fixed lead below the top of the viewport, floored at zero.
func autoScrollPx(now time.Time, windowStartMin, windowEndMin int, ppm, leadPx float64) float64 {
	offsetMin := ClampInt(ClockMinutes(now)-windowStartMin, 0, windowEndMin-windowStartMin)
	px := float64(offsetMin)*ppm - leadPx
	if px < 0 {
		return 0
	}
	return px
}

// FilterOptions derives the sorted doctor and department option lists from
// the full (unfiltered) appointment snapshot. Doctor labels carry the job
// title when present.
func FilterOptions(records []Appointment) (doctors, departments []Option) {
	docLabels := map[string]string{}
	depSet := map[string]bool{}
	for i := range records {
		rec := &records[i]
		if u := rec.DoctorUsername(); u != "" {
			label := u
			if rec.Doctor.JobTitle != "" {
				label = fmt.Sprintf("%s (%s)", u, rec.Doctor.JobTitle)
			}
			docLabels[u] = label
		}
		if d := rec.DepartmentName(); d != "" {
			depSet[d] = true
		}
	}

	doctors = make([]Option, 0, len(docLabels))
	for v, l := range docLabels {
		doctors = append(doctors, Option{Value: v, Label: l})
	}
	sort.Slice(doctors, func(a, b int) bool { return doctors[a].Label < doctors[b].Label })

	departments = make([]Option, 0, len(depSet))
	for d := range depSet {
		departments = append(departments, Option{Value: d, Label: d})
	}
	sort.Slice(departments, func(a, b int) bool { return departments[a].Label < departments[b].Label })

	return doctors, departments
}
