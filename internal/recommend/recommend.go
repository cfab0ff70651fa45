// Package recommend scores generated availability items against the
// criteria extracted from a user request and picks the best candidates.
package recommend

import (
	"math"
	"strings"

	"github.com/dhuhelper/dhu-portal-go/internal/availability"
)

// Criteria are the soft and hard constraints extracted from a request.
type Criteria struct {
	// Requirements are feature keywords such as 投影 or 白板.
	Requirements []string `json:"requirements,omitempty"`

	// MinCapacity is the required headcount. Zero means unconstrained.
	MinCapacity int `json:"min_capacity,omitempty"`
}

// Empty reports whether the criteria constrain nothing.
func (c Criteria) Empty() bool {
	return len(c.Requirements) == 0 && c.MinCapacity <= 0
}

// Scoring weights. Excluded marks items that can never satisfy the
// request regardless of other merits.
const (
	tagMatchScore   = 5
	nameMatchScore  = 2
	capacityScore   = 10
	oversizePenalty = 2
	availableScore  = 20

	// Band is the score distance from the best item within which an item
	// still counts as recommended.
	Band = 5

	// Excluded is the score of items failing a hard constraint.
	Excluded = math.MinInt32
)

// tagMatches reports whether a tag and a requirement keyword refer to the
// same feature. Substring containment runs both ways so 视频会议 matches a
// 会议 requirement and vice versa.
func tagMatches(tag, keyword string) bool {
	tag = strings.ToLower(tag)
	keyword = strings.ToLower(keyword)
	return strings.Contains(tag, keyword) || strings.Contains(keyword, tag)
}

// Score rates one item against the criteria. Items below the capacity
// floor get the Excluded sentinel.
func Score(item availability.Item, criteria Criteria) int {
	score := 0

	for _, keyword := range criteria.Requirements {
		if keyword == "" {
			continue
		}
		for _, tag := range item.Tags {
			if tagMatches(tag, keyword) {
				score += tagMatchScore
				break
			}
		}
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(keyword)) {
			score += nameMatchScore
		}
	}

	if criteria.MinCapacity > 0 {
		if item.Capacity < criteria.MinCapacity {
			return Excluded
		}
		score += capacityScore
		if item.Capacity > 3*criteria.MinCapacity {
			score -= oversizePenalty
		}
	}

	if item.Available() {
		score += availableScore
	}

	return score
}

// SelectBest returns the highest-scoring available item. Ties keep the
// earliest item, so output order is stable for equal scores. ok is false
// when no available item survives the hard constraints.
func SelectBest(items []availability.Item, criteria Criteria) (availability.Item, bool) {
	best := availability.Item{}
	bestScore := Excluded
	found := false

	for _, item := range items {
		if !item.Available() {
			continue
		}
		s := Score(item, criteria)
		if s == Excluded {
			continue
		}
		if !found || s > bestScore {
			best = item
			bestScore = s
			found = true
		}
	}

	return best, found
}

// Recommended returns the IDs of available items whose score is within
// Band of the best score. Empty when nothing is selectable.
func Recommended(items []availability.Item, criteria Criteria) map[string]bool {
	_, ok := SelectBest(items, criteria)
	if !ok {
		return map[string]bool{}
	}

	maxScore := Excluded
	for _, item := range items {
		if !item.Available() {
			continue
		}
		if s := Score(item, criteria); s != Excluded && s > maxScore {
			maxScore = s
		}
	}

	out := make(map[string]bool)
	for _, item := range items {
		if !item.Available() {
			continue
		}
		if s := Score(item, criteria); s != Excluded && maxScore-s <= Band {
			out[item.ID] = true
		}
	}
	return out
}
