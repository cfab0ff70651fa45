package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dhuhelper/dhu-portal-go/internal/availability"
	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/recommend"
)

// datasetResponse is a slot-category dataset annotated with the scorer
// output when the request carried criteria.
type datasetResponse struct {
	availability.Dataset
	Recommended []string           `json:"recommended,omitempty"`
	Best        *availability.Item `json:"best,omitempty"`
}

// GetAvailability renders one category's generated dataset. Query
// parameters: campus (default songjiang), date (weekday index 0..6,
// default today), sport (sports only), requirements and min_capacity
// (slot categories, annotate the recommended items).
func (h *Handler) GetAvailability(c *gin.Context) {
	category := availability.Category(c.Param("category"))
	if !category.Valid() {
		h.recordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	camp := campus.Songjiang
	if parsed, ok := campus.Parse(c.Query("campus")); ok {
		camp = parsed
	}

	now := h.now()
	dateIndex := campus.DayIndex(now)
	if v := c.Query("date"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			h.recordHTTPError("invalid_input")
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be a weekday index 0..6"})
			return
		}
		dateIndex = n
	}

	criteria := queryCriteria(c)

	switch category {
	case availability.CategorySports:
		sport := c.Query("sport")
		if sport == "" {
			sport = availability.DefaultSport
		}
		c.JSON(http.StatusOK, annotate(availability.Sports(camp, sport, dateIndex), criteria))
	case availability.CategoryMeeting:
		c.JSON(http.StatusOK, annotate(availability.Meeting(camp, dateIndex), criteria))
	case availability.CategoryClassroom:
		c.JSON(http.StatusOK, annotate(availability.Classroom(camp, dateIndex), criteria))
	case availability.CategoryLibrary:
		c.JSON(http.StatusOK, availability.Library(camp, dateIndex))
	case availability.CategoryCounseling:
		c.JSON(http.StatusOK, availability.Counseling(camp, dateIndex))
	case availability.CategoryCanteen:
		// Canteen trends follow the wall clock, not the weekday grid.
		c.JSON(http.StatusOK, availability.Canteen(camp, now))
	}
}

// queryCriteria reads the scorer constraints from the query string.
// requirements may repeat or hold a comma-separated list.
func queryCriteria(c *gin.Context) recommend.Criteria {
	var criteria recommend.Criteria
	for _, raw := range c.QueryArray("requirements") {
		for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
			return r == ',' || r == '、' || r == '，' || r == ' '
		}) {
			criteria.Requirements = append(criteria.Requirements, part)
		}
	}
	if n, err := strconv.Atoi(c.Query("min_capacity")); err == nil && n > 0 {
		criteria.MinCapacity = n
	}
	return criteria
}

// annotate attaches the best item and the recommended band to a slot
// dataset. Without criteria the dataset passes through unchanged.
func annotate(ds availability.Dataset, criteria recommend.Criteria) datasetResponse {
	resp := datasetResponse{Dataset: ds}
	if criteria.Empty() {
		return resp
	}

	if best, ok := recommend.SelectBest(ds.Items, criteria); ok {
		resp.Best = &best
	}
	band := recommend.Recommended(ds.Items, criteria)
	for _, item := range ds.Items {
		if band[item.ID] {
			resp.Recommended = append(resp.Recommended, item.ID)
		}
	}
	return resp
}
