package availability

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

// DefaultSport is assumed when the user names no sport.
const DefaultSport = "羽毛球"

// BilliardsPrice is the hourly fee for billiards tables. Every other sport
// is free for students.
const BilliardsPrice = 10

var sportsZones = map[campus.Campus][]string{
	campus.Songjiang: {"主体育馆", "副馆", "室内专项馆", "室外场地"},
	campus.Yanan:     {"延安路体育馆", "室外苑区"},
}

var sportsTags = map[string][]string{
	"主体育馆":   {"室内", "木地板"},
	"副馆":     {"室内"},
	"室内专项馆":  {"室内", "空调"},
	"室外场地":   {"室外"},
	"延安路体育馆": {"室内", "木地板"},
	"室外苑区":   {"室外"},
}

// sportsSlotHours are the bookable hours, one-hour slots from 08:00 to 21:00.
var sportsSlotHours = func() []int {
	hours := make([]int, 0, 13)
	for h := 8; h <= 20; h++ {
		hours = append(hours, h)
	}
	return hours
}()

// SlotLabel formats an hour as its one-hour slot label, e.g. "08:00-09:00".
func SlotLabel(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
}

func slotLabels() []string {
	labels := make([]string, len(sportsSlotHours))
	for i, h := range sportsSlotHours {
		labels[i] = SlotLabel(h)
	}
	return labels
}

// courtCount is larger for the main gym than for the satellite venues.
func courtCount(zone string) int {
	if strings.Contains(zone, "主") {
		return 12
	}
	return 6
}

// Sports generates the court grid for one campus, sport and weekday.
// dateIndex is the Monday-based weekday 0..6.
func Sports(c campus.Campus, sport string, dateIndex int) Dataset {
	if !c.Valid() {
		c = campus.Songjiang
	}
	if sport == "" {
		sport = DefaultSport
	}
	dateIndex = clampDay(dateIndex)

	zones := sportsZones[c]
	price := 0
	if sport == "台球" {
		price = BilliardsPrice
	}

	var items []Item
	for _, zone := range zones {
		zoneLen := utf8.RuneCountInString(zone)
		for i := 1; i <= courtCount(zone); i++ {
			for _, hour := range sportsSlotHours {
				seed := zoneLen + i + hour + dateIndex*7

				busyThreshold := 40
				if hour >= 18 {
					busyThreshold = 80
				}
				if dateIndex == 5 || dateIndex == 6 {
					busyThreshold += 20
				}

				status := StatusAvailable
				if seed%100 < busyThreshold {
					status = StatusBusy
				}

				slot := SlotLabel(hour)
				items = append(items, Item{
					ID:       fmt.Sprintf("%s-%s-%d-%s-%d", sport, zone, i, slot, dateIndex),
					Name:     fmt.Sprintf("%s %d号场", zone, i),
					Zone:     zone,
					Tags:     sportsTags[zone],
					Time:     slot,
					Hour:     hour,
					Status:   status,
					Price:    price,
					Capacity: 4,
				})
			}
		}
	}

	return Dataset{
		Category:  CategorySports,
		Campus:    c,
		DateIndex: dateIndex,
		Zones:     zones,
		TimeSlots: slotLabels(),
		Items:     items,
	}
}

func clampDay(dateIndex int) int {
	if dateIndex < 0 {
		return 0
	}
	if dateIndex > 6 {
		return 6
	}
	return dateIndex
}
