package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

func findItem(t *testing.T, ds Dataset, id string) Item {
	t.Helper()
	for _, it := range ds.Items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %q not found", id)
	return Item{}
}

func TestSportsDeterministic(t *testing.T) {
	a := Sports(campus.Songjiang, "羽毛球", 2)
	b := Sports(campus.Songjiang, "羽毛球", 2)
	assert.Equal(t, a, b)
}

func TestSportsKnownValues(t *testing.T) {
	// 主体育馆 court 1 at 08:00: seed = 4+1+8+d*7.
	monday := Sports(campus.Songjiang, "羽毛球", 0)
	it := findItem(t, monday, "羽毛球-主体育馆-1-08:00-09:00-0")
	assert.Equal(t, StatusBusy, it.Status) // seed 13 < 40

	friday := Sports(campus.Songjiang, "羽毛球", 4)
	it = findItem(t, friday, "羽毛球-主体育馆-1-08:00-09:00-4")
	assert.Equal(t, StatusAvailable, it.Status) // seed 41 >= 40
	assert.Equal(t, "主体育馆 1号场", it.Name)
	assert.Equal(t, 0, it.Price)
}

func TestSportsWeekendEveningFullyBooked(t *testing.T) {
	ds := Sports(campus.Songjiang, "羽毛球", 6)
	for _, it := range ds.Items {
		if it.Hour >= 18 {
			assert.Equal(t, StatusBusy, it.Status, "item %s", it.ID)
		}
	}
}

func TestSportsBilliardsPrice(t *testing.T) {
	ds := Sports(campus.Yanan, "台球", 1)
	require.NotEmpty(t, ds.Items)
	for _, it := range ds.Items {
		assert.Equal(t, BilliardsPrice, it.Price)
	}
}

func TestSportsZonesAndCounts(t *testing.T) {
	ds := Sports(campus.Songjiang, "", 0)
	assert.Equal(t, []string{"主体育馆", "副馆", "室内专项馆", "室外场地"}, ds.Zones)
	// 主体育馆 has 12 courts, the rest 6, with 13 one-hour slots each.
	assert.Len(t, ds.Items, (12+6+6+6)*13)
	assert.Equal(t, "08:00-09:00", ds.TimeSlots[0])
	assert.Equal(t, "20:00-21:00", ds.TimeSlots[len(ds.TimeSlots)-1])
}

func TestMeetingKnownValues(t *testing.T) {
	// 图文信息中心 room 1: seed = 6+1+hour+d*13.
	monday := Meeting(campus.Songjiang, 0)
	it := findItem(t, monday, "mtg-图文信息中心-1-08:00-09:00-0")
	assert.Equal(t, StatusBusy, it.Status) // seed 15 < 30
	assert.Equal(t, "图文信息中心 01室", it.Name)
	assert.Contains(t, it.Tags, "投影")

	tuesday := Meeting(campus.Songjiang, 1)
	it = findItem(t, tuesday, "mtg-图文信息中心-1-10:00-11:00-1")
	assert.Equal(t, StatusAvailable, it.Status) // seed 30 >= 30
}

func TestMeetingAfternoonContention(t *testing.T) {
	ds := Meeting(campus.Songjiang, 0)
	it := findItem(t, ds, "mtg-图文信息中心-1-14:00-15:00-0")
	assert.Equal(t, StatusBusy, it.Status) // seed 21 < 60 afternoon threshold
}

func TestMeetingApprovalHall(t *testing.T) {
	ds := Meeting(campus.Songjiang, 3)
	for _, it := range ds.Items {
		if it.Zone == "锦绣会堂" {
			assert.True(t, it.RequiresApproval)
			assert.Equal(t, 300, it.Capacity)
		} else {
			assert.False(t, it.RequiresApproval)
		}
	}
}

func TestMeetingCapacityCycle(t *testing.T) {
	ds := Meeting(campus.Songjiang, 0)
	assert.Equal(t, 10, findItem(t, ds, "mtg-图文信息中心-1-08:00-09:00-0").Capacity)
	assert.Equal(t, 20, findItem(t, ds, "mtg-图文信息中心-2-08:00-09:00-0").Capacity)
	assert.Equal(t, 10, findItem(t, ds, "mtg-图文信息中心-5-08:00-09:00-0").Capacity)
}

func TestClassroomKnownValues(t *testing.T) {
	// 第一教学楼 room 1 at 12:00: seed = 5+1+12+d*11.
	monday := Classroom(campus.Songjiang, 0)
	it := findItem(t, monday, "cls-第一教学楼-1-12:00-13:00-0")
	assert.Equal(t, StatusBusy, it.Status) // seed 18 < 35

	thursday := Classroom(campus.Songjiang, 3)
	it = findItem(t, thursday, "cls-第一教学楼-1-12:00-13:00-3")
	assert.Equal(t, StatusAvailable, it.Status) // seed 51 >= 35
}

func TestClassroomQuietZoneEvening(t *testing.T) {
	ds := Classroom(campus.Songjiang, 0)
	it := findItem(t, ds, "cls-综合楼-1-19:00-20:00-0")
	assert.Equal(t, StatusBusy, it.Status) // seed 23 < 65 raised threshold
	assert.Contains(t, it.Tags, "静音")
}

func TestLibraryKnownValues(t *testing.T) {
	sum := Library(campus.Songjiang, 0)
	require.Len(t, sum.Areas, 4)

	// 一楼自修室: seed 5, usage (5*17)%100 = 85, available 18 of 120.
	area := sum.Areas[0]
	assert.Equal(t, "一楼自修室", area.Area)
	assert.Equal(t, 120, area.Total)
	assert.Equal(t, 18, area.Available)
	assert.Equal(t, LibraryFew, area.Status)
}

func TestLibraryPlentyDay(t *testing.T) {
	sum := Library(campus.Songjiang, 1)
	// seed 6, usage 2, available 117 of 120.
	assert.Equal(t, 117, sum.Areas[0].Available)
	assert.Equal(t, LibraryPlenty, sum.Areas[0].Status)
}

func TestCounselingRota(t *testing.T) {
	wed := Counseling(campus.Songjiang, 2)
	require.Len(t, wed.Slots, 1)
	assert.Equal(t, "王老师", wed.Slots[0].Counselor)
	assert.Equal(t, "学业压力", wed.Slots[0].Topic)
	assert.Equal(t, "14:00-17:00", wed.Slots[0].Time)
	assert.Equal(t, "松江大学生活动中心205", wed.Location)

	tue := Counseling(campus.Songjiang, 1)
	assert.Empty(t, tue.Slots)

	yananTue := Counseling(campus.Yanan, 1)
	require.Len(t, yananTue.Slots, 1)
	assert.Equal(t, "张老师", yananTue.Slots[0].Counselor)
}

func TestCanteenClosedBeforeDawn(t *testing.T) {
	now := time.Date(2026, 8, 24, 5, 0, 0, 0, time.UTC)
	report := Canteen(campus.Songjiang, now)
	require.Len(t, report.Canteens, 3)
	for _, tr := range report.Canteens {
		assert.False(t, tr.Open)
		assert.Equal(t, 0, tr.Occupancy)
		assert.Empty(t, tr.Status)
		assert.Nil(t, tr.Recommended)
		for _, s := range tr.Samples {
			assert.Equal(t, 0, s.Occupancy)
		}
	}
}

func TestCanteenLunchPeakNoRecommendation(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	report := Canteen(campus.Songjiang, now)
	tr := report.Canteens[0] // 松江一餐, offset 13

	assert.True(t, tr.Open)
	assert.Equal(t, 100, tr.Occupancy) // base 95 + offset 13, capped
	assert.Equal(t, "拥挤", tr.Status)
	// Every future sample in the window sits above the comfort threshold.
	assert.Nil(t, tr.Recommended)
}

func TestCanteenStatusLabel(t *testing.T) {
	assert.Equal(t, "宽松", CanteenStatusLabel(10))
	assert.Equal(t, "一般", CanteenStatusLabel(40))
	assert.Equal(t, "拥挤", CanteenStatusLabel(70))
	assert.Equal(t, "08:05", FormatClock(485))
}

func TestCanteenPostLunchRecommendation(t *testing.T) {
	now := time.Date(2026, 8, 24, 13, 30, 0, 0, time.UTC)
	report := Canteen(campus.Songjiang, now)
	tr := report.Canteens[0]

	require.NotNil(t, tr.Recommended)
	assert.Equal(t, "13:35", tr.Recommended.Time)
	assert.True(t, tr.Recommended.Occupancy < comfortThreshold)
	assert.True(t, tr.Recommended.Future)
}

func TestCanteenWindowShape(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	report := Canteen(campus.Yanan, now)
	require.Len(t, report.Canteens, 1)

	samples := report.Canteens[0].Samples
	require.Len(t, samples, 19)
	assert.Equal(t, "10:45", samples[0].Time)
	assert.Equal(t, "12:15", samples[len(samples)-1].Time)
	assert.False(t, samples[0].Future)
	assert.True(t, samples[len(samples)-1].Future)
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategorySports.Valid())
	assert.True(t, CategoryCanteen.Valid())
	assert.False(t, Category("karaoke").Valid())
}

func TestInvalidCampusFallsBack(t *testing.T) {
	ds := Sports(campus.Campus("mars"), "", 0)
	assert.Equal(t, campus.Songjiang, ds.Campus)
}
