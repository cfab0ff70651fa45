package availability

import (
	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

var counselingLocations = map[campus.Campus]string{
	campus.Songjiang: "松江大学生活动中心205",
	campus.Yanan:     "延安路校区心理咨询室",
}

// counselingRota maps Monday-based weekday to the sessions offered that day.
var counselingRota = map[campus.Campus]map[int][]CounselingSlot{
	campus.Songjiang: {
		0: {{Counselor: "值班医生", Topic: "综合咨询", Time: "13:00-16:00"}},
		2: {{Counselor: "王老师", Topic: "学业压力", Time: "14:00-17:00"}},
		3: {{Counselor: "李老师", Topic: "人际关系", Time: "09:00-11:30"}},
		4: {{Counselor: "值班医生", Topic: "综合咨询", Time: "13:00-16:00"}},
	},
	campus.Yanan: {
		1: {{Counselor: "张老师", Topic: "情绪管理", Time: "13:00-16:00"}},
		4: {{Counselor: "赵老师", Topic: "职业规划", Time: "10:00-12:00"}},
	},
}

// Counseling returns the counseling rota for one campus and weekday.
// Slots is empty on days without sessions.
func Counseling(c campus.Campus, dateIndex int) CounselingSchedule {
	if !c.Valid() {
		c = campus.Songjiang
	}
	dateIndex = clampDay(dateIndex)

	slots := counselingRota[c][dateIndex]
	out := make([]CounselingSlot, len(slots))
	copy(out, slots)

	return CounselingSchedule{
		Campus:    c,
		Location:  counselingLocations[c],
		DateIndex: dateIndex,
		Slots:     out,
	}
}
