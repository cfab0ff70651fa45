package availability

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

var canteenNames = map[campus.Campus][]string{
	campus.Songjiang: {"松江一餐", "松江二餐", "清真餐厅"},
	campus.Yanan:     {"延安路餐厅"},
}

// Canteens open at 06:00 and close at 20:00.
const (
	canteenOpenMinute  = 6 * 60
	canteenCloseMinute = 20 * 60
)

// occupancyAnchors define the base crowd curve as (minute of day, percent)
// points with linear interpolation between them. The three peaks are the
// breakfast, lunch and dinner rushes.
var occupancyAnchors = [][2]int{
	{360, 0},   // 06:00 doors open
	{420, 40},  // 07:00
	{450, 80},  // 07:30 breakfast peak
	{510, 20},  // 08:30
	{660, 25},  // 11:00
	{690, 70},  // 11:30
	{720, 95},  // 12:00 lunch peak
	{780, 40},  // 13:00
	{900, 15},  // 15:00
	{1020, 30}, // 17:00
	{1080, 85}, // 18:00 dinner peak
	{1140, 35}, // 19:00
	{1199, 10}, // 19:59
}

// baseOccupancy interpolates the crowd curve at a minute of day.
// Returns 0 outside opening hours.
func baseOccupancy(minute int) int {
	if minute < canteenOpenMinute || minute >= canteenCloseMinute {
		return 0
	}
	for i := 1; i < len(occupancyAnchors); i++ {
		prev, next := occupancyAnchors[i-1], occupancyAnchors[i]
		if minute > next[0] {
			continue
		}
		span := next[0] - prev[0]
		if span == 0 {
			return next[1]
		}
		return prev[1] + (next[1]-prev[1])*(minute-prev[0])/span
	}
	return occupancyAnchors[len(occupancyAnchors)-1][1]
}

// canteenOffset shifts the curve per canteen so the halls do not move in
// lockstep. Deterministic in the canteen name.
func canteenOffset(name string) int {
	return (utf8.RuneCountInString(name) * 7) % 15
}

// shiftedOccupancy applies a canteen's offset to the base curve, capped
// at 100. Closed minutes stay at zero.
func shiftedOccupancy(minute, offset int) int {
	base := baseOccupancy(minute)
	if base == 0 {
		return 0
	}
	occupancy := base + offset
	if occupancy > 100 {
		occupancy = 100
	}
	return occupancy
}

const (
	canteenSampleStep   = 5 * time.Minute
	canteenWindowBefore = 75 * time.Minute
	canteenWindowAfter  = 15 * time.Minute

	// comfortThreshold is the occupancy below which an entry time is
	// recommended.
	comfortThreshold = 60
)

// Canteen generates the crowd report for one campus around the given
// wall-clock time. The window covers the recent past plus the next few
// minutes on a five-minute grid; Recommended is the first future sample
// below the comfort threshold.
func Canteen(c campus.Campus, now time.Time) CanteenReport {
	if !c.Valid() {
		c = campus.Songjiang
	}

	names := canteenNames[c]
	canteens := make([]CanteenTrend, 0, len(names))

	start := now.Add(-canteenWindowBefore).Truncate(canteenSampleStep)
	end := now.Add(canteenWindowAfter)
	nowMinute := now.Hour()*60 + now.Minute()

	for _, name := range names {
		offset := canteenOffset(name)
		trend := CanteenTrend{
			Name: name,
			Open: nowMinute >= canteenOpenMinute && nowMinute < canteenCloseMinute,
		}
		if trend.Open {
			trend.Occupancy = shiftedOccupancy(nowMinute, offset)
			trend.Status = CanteenStatusLabel(trend.Occupancy)
		}

		for t := start; !t.After(end); t = t.Add(canteenSampleStep) {
			minute := t.Hour()*60 + t.Minute()

			sample := CanteenSample{
				Time:      FormatClock(minute),
				Minute:    minute,
				Occupancy: shiftedOccupancy(minute, offset),
				Future:    t.After(now),
			}
			trend.Samples = append(trend.Samples, sample)

			if trend.Recommended == nil && sample.Future &&
				minute >= canteenOpenMinute && minute < canteenCloseMinute &&
				sample.Occupancy < comfortThreshold {
				s := sample
				trend.Recommended = &s
			}
		}

		canteens = append(canteens, trend)
	}

	return CanteenReport{Campus: c, Canteens: canteens}
}

// CanteenStatusLabel grades an occupancy percentage for display.
func CanteenStatusLabel(occupancy int) string {
	switch {
	case occupancy < 40:
		return "宽松"
	case occupancy < 70:
		return "一般"
	default:
		return "拥挤"
	}
}

// FormatClock renders a minute of day as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
