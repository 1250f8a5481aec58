package calendar

import (
	"strings"
	"time"
)

// StartOfWeek returns the Monday 00:00:00 of the week containing t, in t's
// location. Sunday is treated as the last day of the week (ISO numbering).
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday => 0
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays advances t by n calendar days, rolling over month and year
// boundaries. Pure wall-clock arithmetic, no timezone shifting.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// MinutesBetween returns the rounded whole-minute difference b - a. The
// result is negative when b precedes a.
func MinutesBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(time.Minute) / time.Minute)
}

// ClampInt bounds v to [min, max]. Behavior is undefined when min > max;
// the hour-window invariants guarantee that never happens here.
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampFloat bounds v to [min, max].
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// apiDateLayouts lists the two formats the backend has historically emitted,
// space- and T-separated. Order matters: the ISO-like form is tried first.
var apiDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02-01-2006 15:04",
	"02-01-2006T15:04",
}

// fallbackLayouts are generic forms tried after the primary two, with any
// space separator already normalized to "T".
var fallbackLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseAPIDate parses an appointment timestamp in either of the backend's
// wire formats ("YYYY-MM-DD HH:mm" or "DD-MM-YYYY HH:mm", space or T
// separated), then falls back to generic parsing. The position of the
// 4-digit year disambiguates the two structurally; out-of-range day or
// month values fail the parse instead of silently rolling over. Returns
// ok=false when nothing matches.
func ParseAPIDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range apiDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	normalized := strings.Replace(s, " ", "T", 1)
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, normalized, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatClock renders t as zero-padded "HH:mm", or "--:--" for the zero
// time so invalid inputs stay visible instead of crashing a card label.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

// ClockMinutes returns the minutes elapsed since local midnight of t.
func ClockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
