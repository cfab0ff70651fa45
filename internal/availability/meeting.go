package availability

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

type meetingZone struct {
	Name       string
	Rooms      int
	Tags       []string
	Capacities []int
	Approval   bool
}

var meetingZones = map[campus.Campus][]meetingZone{
	campus.Songjiang: {
		{Name: "图文信息中心", Rooms: 11, Tags: []string{"投影", "视频会议"}, Capacities: []int{10, 20, 30, 40}},
		{Name: "图书馆", Rooms: 8, Tags: []string{"白板"}, Capacities: []int{6, 10, 16}},
		{Name: "大学生活动中心", Rooms: 5, Tags: []string{"音响"}, Capacities: []int{20, 40, 60}},
		{Name: "复材楼", Rooms: 4, Tags: []string{"白板"}, Capacities: []int{8, 12}},
		{Name: "32号楼", Rooms: 3, Capacities: []int{8, 16}},
		{Name: "锦绣会堂", Rooms: 1, Tags: []string{"舞台", "音响", "投影"}, Capacities: []int{300}, Approval: true},
	},
	campus.Yanan: {
		{Name: "中心大楼", Rooms: 6, Tags: []string{"投影"}, Capacities: []int{10, 20, 30}},
		{Name: "第三教学楼", Rooms: 5, Tags: []string{"白板"}, Capacities: []int{8, 16}},
		{Name: "大学生活动中心", Rooms: 4, Tags: []string{"音响"}, Capacities: []int{20, 40}},
	},
}

// Meeting generates the meeting-room grid for one campus and weekday.
// Early-afternoon slots are the contested ones.
func Meeting(c campus.Campus, dateIndex int) Dataset {
	if !c.Valid() {
		c = campus.Songjiang
	}
	dateIndex = clampDay(dateIndex)

	zones := meetingZones[c]
	zoneNames := make([]string, len(zones))

	var items []Item
	for zi, zone := range zones {
		zoneNames[zi] = zone.Name
		zoneLen := utf8.RuneCountInString(zone.Name)
		for i := 1; i <= zone.Rooms; i++ {
			for _, hour := range sportsSlotHours {
				seed := zoneLen + i + hour + dateIndex*13

				busyThreshold := 30
				if hour >= 13 && hour <= 16 {
					busyThreshold = 60
				}

				status := StatusAvailable
				if seed%100 < busyThreshold {
					status = StatusBusy
				}

				slot := SlotLabel(hour)
				items = append(items, Item{
					ID:               fmt.Sprintf("mtg-%s-%d-%s-%d", zone.Name, i, slot, dateIndex),
					Name:             fmt.Sprintf("%s %02d室", zone.Name, i),
					Zone:             zone.Name,
					Tags:             zone.Tags,
					Time:             slot,
					Hour:             hour,
					Status:           status,
					Capacity:         zone.Capacities[(i-1)%len(zone.Capacities)],
					RequiresApproval: zone.Approval,
				})
			}
		}
	}

	return Dataset{
		Category:  CategoryMeeting,
		Campus:    c,
		DateIndex: dateIndex,
		Zones:     zoneNames,
		TimeSlots: slotLabels(),
		Items:     items,
	}
}
