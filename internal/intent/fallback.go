package intent

import (
	"fmt"
	"strings"

	"github.com/dhuhelper/dhu-portal-go/internal/availability"
	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/directory"
	"github.com/dhuhelper/dhu-portal-go/internal/recommend"
	"github.com/dhuhelper/dhu-portal-go/internal/sliceutil"
	"github.com/dhuhelper/dhu-portal-go/internal/stringutil"
)

// Keyword families for the local classifier, checked in strict
// priority order. The order is part of the contract; tests assert it.
var (
	counselingKeywords = []string{"心理", "咨询", "辅导"}
	libraryKeywords    = []string{"图书馆", "阅览", "借书"}
	meetingKeywords    = []string{"会议", "研讨"}
	canteenKeywords    = []string{"食堂", "餐厅", "吃饭", "就餐"}
	classroomKeywords  = []string{"教室", "自习"}
	sportsKeywords     = []string{"体育", "运动", "球", "场馆", "游泳", "健身"}
)

// sportNames disambiguate which sport to show; the first hit wins and
// overrides the 羽毛球 default.
var sportNames = []string{"台球", "篮球", "乒乓球", "网球", "排球", "游泳", "健身", "羽毛球"}

// featureLexicon maps text keywords to the requirement tokens the
// scorer understands. 安静 folds into the 静音 zone tag.
var featureLexicon = []struct {
	keyword     string
	requirement string
}{
	{"视频会议", "视频会议"},
	{"投影", "投影"},
	{"白板", "白板"},
	{"音响", "音响"},
	{"舞台", "舞台"},
	{"静音", "静音"},
	{"安静", "静音"},
}

// classify is the deterministic local baseline used when no LLM
// credential is configured. It never fails; unmatched input gets the
// fixed apology.
func classify(text string, preferred campus.Campus) Result {
	folded := strings.ToLower(stringutil.Fold(text))

	if strings.HasPrefix(strings.TrimSpace(text), BookingEventPrefix) {
		return confirmBooking(folded)
	}

	var explicit campus.Campus
	if c, ok := campus.Parse(text); ok {
		explicit = c
	}
	resolved := resolveCampus(explicit, campus.Campus(""), preferred)
	criteria := extractCriteria(folded)

	switch {
	case containsAny(folded, counselingKeywords):
		return Result{
			Text:    textFallbackAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindCounseling, Title: titleCounseling, Campus: resolved},
		}
	case containsAny(folded, libraryKeywords):
		return Result{
			Text:    textFallbackAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindLibrary, Title: titleLibrary, Campus: resolved},
		}
	case containsAny(folded, meetingKeywords):
		return Result{
			Text:    textFallbackAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindMeeting, Title: titleMeeting, Campus: resolved, Criteria: criteria},
		}
	case containsAny(folded, canteenKeywords):
		return Result{
			Text:    textFallbackAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindCanteen, Title: titleCanteen, Campus: resolved},
		}
	case containsAny(folded, classroomKeywords):
		return Result{
			Text:    textFallbackAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindClassroom, Title: titleClassroom, Campus: resolved, Criteria: criteria},
		}
	case containsAny(folded, sportsKeywords):
		sport := detectSport(folded)
		return Result{
			Text:    textFallbackAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindSports, Title: sport, Campus: resolved, Sport: sport, Criteria: criteria},
		}
	}

	return classifyEntity(text, explicit, preferred)
}

// classifyEntity tries the directory before giving up with the apology.
func classifyEntity(text string, explicit, preferred campus.Campus) Result {
	if entry, ok := directory.FindInText(text); ok {
		resolved := resolveCampus(explicit, entry.Campus, preferred)
		return Result{
			Text:    fmt.Sprintf(entityAckFormat, entry.Name),
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindEntityLink, Title: entry.Name, Campus: resolved, Entity: &entry},
		}
	}
	return Result{Text: textApology}
}

// confirmBooking answers a synthetic booking event. Sports bookings
// confirm immediately; everything else goes to an approval queue.
func confirmBooking(folded string) Result {
	if strings.Contains(folded, string(availability.CategorySports)) {
		return Result{Text: textBookedSports}
	}
	return Result{Text: textBookedGeneric}
}

// detectSport finds a specific sport mention, defaulting to 羽毛球.
func detectSport(folded string) string {
	for _, name := range sportNames {
		if strings.Contains(folded, name) {
			return name
		}
	}
	return availability.DefaultSport
}

// extractCriteria pulls capacity and feature keywords out of folded
// text so the deterministic baseline still feeds the scorer.
func extractCriteria(folded string) recommend.Criteria {
	var requirements []string
	for _, entry := range featureLexicon {
		if strings.Contains(folded, entry.keyword) {
			requirements = append(requirements, entry.requirement)
		}
	}
	requirements = sliceutil.Deduplicate(requirements, func(s string) string { return s })

	return recommend.Criteria{
		Requirements: requirements,
		MinCapacity:  stringutil.CapacityHint(folded),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
