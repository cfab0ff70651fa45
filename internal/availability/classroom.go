package availability

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

type classroomZone struct {
	Name  string
	Rooms int
	Quiet bool
}

var classroomZones = map[campus.Campus][]classroomZone{
	campus.Songjiang: {
		{Name: "第一教学楼", Rooms: 8},
		{Name: "第二教学楼", Rooms: 8},
		{Name: "综合楼", Rooms: 4, Quiet: true},
	},
	campus.Yanan: {
		{Name: "教学主楼", Rooms: 6},
		{Name: "实验楼", Rooms: 4, Quiet: true},
	},
}

var classroomCapacities = []int{30, 60, 90}

// Classroom generates the self-study classroom grid for one campus and
// weekday. Morning class hours are mostly occupied by lectures; quiet
// zones fill up in the evening.
func Classroom(c campus.Campus, dateIndex int) Dataset {
	if !c.Valid() {
		c = campus.Songjiang
	}
	dateIndex = clampDay(dateIndex)

	zones := classroomZones[c]
	zoneNames := make([]string, len(zones))

	var items []Item
	for zi, zone := range zones {
		zoneNames[zi] = zone.Name
		zoneLen := utf8.RuneCountInString(zone.Name)

		tags := []string{"自习", "投影"}
		if zone.Quiet {
			tags = []string{"自习", "静音"}
		}

		for i := 1; i <= zone.Rooms; i++ {
			for _, hour := range sportsSlotHours {
				seed := zoneLen + i + hour + dateIndex*11

				busyThreshold := 35
				if hour >= 8 && hour <= 11 {
					busyThreshold = 70
				}
				if zone.Quiet && hour >= 18 {
					busyThreshold += 30
				}

				status := StatusAvailable
				if seed%100 < busyThreshold {
					status = StatusBusy
				}

				slot := SlotLabel(hour)
				items = append(items, Item{
					ID:       fmt.Sprintf("cls-%s-%d-%s-%d", zone.Name, i, slot, dateIndex),
					Name:     fmt.Sprintf("%s %02d教室", zone.Name, i),
					Zone:     zone.Name,
					Tags:     tags,
					Time:     slot,
					Hour:     hour,
					Status:   status,
					Capacity: classroomCapacities[(i-1)%len(classroomCapacities)],
				})
			}
		}
	}

	return Dataset{
		Category:  CategoryClassroom,
		Campus:    c,
		DateIndex: dateIndex,
		Zones:     zoneNames,
		TimeSlots: slotLabels(),
		Items:     items,
	}
}
