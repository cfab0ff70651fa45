// Package availability generates deterministic venue availability for the
// campus assistant. All generators are pure functions of campus, weekday
// index and wall-clock input, so the same query always renders the same
// data without any backing booking system.
package availability

import (
	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

// Category identifies a bookable service family.
type Category string

const (
	CategorySports     Category = "sports"
	CategoryMeeting    Category = "meeting"
	CategoryClassroom  Category = "classroom"
	CategoryLibrary    Category = "library"
	CategoryCounseling Category = "counseling"
	CategoryCanteen    Category = "canteen"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategorySports, CategoryMeeting, CategoryClassroom,
		CategoryLibrary, CategoryCounseling, CategoryCanteen:
		return true
	}
	return false
}

// Status of a single bookable unit in a time slot.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
)

// Item is one bookable unit in one time slot.
type Item struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Zone             string   `json:"zone"`
	Tags             []string `json:"tags,omitempty"`
	Time             string   `json:"time"`
	Hour             int      `json:"hour"`
	Status           Status   `json:"status"`
	Price            int      `json:"price"`
	Capacity         int      `json:"capacity"`
	RequiresApproval bool     `json:"requires_approval,omitempty"`
}

// Available reports whether the item can be booked.
func (it Item) Available() bool {
	return it.Status == StatusAvailable
}

// Dataset is the generated grid for a slot-based category
// (sports, meeting, classroom).
type Dataset struct {
	Category  Category      `json:"category"`
	Campus    campus.Campus `json:"campus"`
	DateIndex int           `json:"date_index"`
	Zones     []string      `json:"zones"`
	TimeSlots []string      `json:"time_slots"`
	Items     []Item        `json:"items"`
}

// LibraryStatus grades how full a reading area is.
type LibraryStatus string

const (
	LibraryPlenty LibraryStatus = "plenty"
	LibraryFew    LibraryStatus = "few"
	LibraryFull   LibraryStatus = "full"
)

// LibraryArea is the seat summary for one reading area.
type LibraryArea struct {
	Area      string        `json:"area"`
	Total     int           `json:"total"`
	Available int           `json:"available"`
	Status    LibraryStatus `json:"status"`
}

// LibrarySummary is the per-campus library seat report for one weekday.
type LibrarySummary struct {
	Campus    campus.Campus `json:"campus"`
	DateIndex int           `json:"date_index"`
	Areas     []LibraryArea `json:"areas"`
}

// CounselingSlot is one bookable counseling session.
type CounselingSlot struct {
	Counselor string `json:"counselor"`
	Topic     string `json:"topic"`
	Time      string `json:"time"`
}

// CounselingSchedule is the counseling rota for one campus and weekday.
// Slots is empty on days without sessions.
type CounselingSchedule struct {
	Campus    campus.Campus    `json:"campus"`
	Location  string           `json:"location"`
	DateIndex int              `json:"date_index"`
	Slots     []CounselingSlot `json:"slots"`
}

// CanteenSample is one occupancy reading on the five-minute grid.
type CanteenSample struct {
	Time      string `json:"time"`
	Minute    int    `json:"minute"`
	Occupancy int    `json:"occupancy"`
	Future    bool   `json:"future"`
}

// CanteenTrend is the occupancy curve for one canteen around the
// requested wall-clock time. Occupancy and Status describe the reading
// at the requested time itself; Status is empty while closed.
type CanteenTrend struct {
	Name        string          `json:"name"`
	Open        bool            `json:"open"`
	Occupancy   int             `json:"occupancy"`
	Status      string          `json:"status,omitempty"`
	Samples     []CanteenSample `json:"samples"`
	Recommended *CanteenSample  `json:"recommended,omitempty"`
}

// CanteenReport is the per-campus canteen crowd report.
type CanteenReport struct {
	Campus   campus.Campus  `json:"campus"`
	Canteens []CanteenTrend `json:"canteens"`
}
