// Package campus defines the two university campuses and helpers shared by
// the availability generators and the intent engine.
package campus

import (
	"strings"
	"time"
)

// Campus identifies one of the two physical campuses.
type Campus string

const (
	// Songjiang is the main campus and the default when nothing else applies.
	Songjiang Campus = "songjiang"

	// Yanan is the downtown campus on Yan'an Road.
	Yanan Campus = "yanan"
)

// All lists the campuses in display order.
var All = []Campus{Songjiang, Yanan}

// Label returns the Chinese display name of the campus.
func (c Campus) Label() string {
	if c == Yanan {
		return "延安路校区"
	}
	return "松江校区"
}

// Valid reports whether c is one of the known campuses.
func (c Campus) Valid() bool {
	return c == Songjiang || c == Yanan
}

// Parse maps free text to a campus. It accepts the canonical identifiers,
// Chinese campus names and common shorthand. ok is false when the text
// mentions no campus at all.
func Parse(text string) (Campus, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return Songjiang, false
	}

	if strings.Contains(s, "松江") || strings.Contains(s, string(Songjiang)) {
		return Songjiang, true
	}
	if strings.Contains(s, "延安") || strings.Contains(s, string(Yanan)) {
		return Yanan, true
	}
	return Songjiang, false
}

// WeekDays are the weekday labels, Monday first.
var WeekDays = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// DayIndex converts a wall-clock time to the Monday-based index 0..6 used by
// every generator.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayLabel returns the weekday label for the given Monday-based index.
// Out-of-range indexes are clamped into 0..6.
func DayLabel(dateIndex int) string {
	if dateIndex < 0 {
		dateIndex = 0
	}
	return WeekDays[dateIndex%7]
}
