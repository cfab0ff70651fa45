package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhuhelper/dhu-portal-go/internal/availability"
	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/config"
	"github.com/dhuhelper/dhu-portal-go/internal/directory"
	"github.com/dhuhelper/dhu-portal-go/internal/intent"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/portal"
	"github.com/dhuhelper/dhu-portal-go/internal/session"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type replyEnvelope struct {
	Reply     session.Message `json:"reply"`
	Transient bool            `json:"transient"`
	Duplicate bool            `json:"duplicate"`
}

func newTestHandler(t *testing.T, mutate func(*config.Config)) *Handler {
	t.Helper()

	cfg := &config.Config{
		LLMProvider:       config.LLMProviderGemini,
		LLMMaxConcurrent:  4,
		SessionTTL:        30 * time.Minute,
		SessionRateBurst:  10,
		SessionRateRefill: 5,
	}
	if mutate != nil {
		mutate(cfg)
	}

	log := logger.NewWithWriter("error", io.Discard)
	sessions := session.NewManager(cfg, log, nil)
	t.Cleanup(sessions.Stop)

	engine := intent.NewEngine(cfg, log, nil, nil)
	board := portal.NewNoticeBoard(nil, nil, "", log, nil)
	return NewHandler(cfg, log, nil, sessions, engine, nil, board)
}

func newTestRouter(h *Handler) *gin.Engine {
	router := gin.New()
	h.Register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func openSession(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID       string            `json:"session_id"`
		Messages []session.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, intent.Greeting, resp.Messages[0].Text)
	return resp.ID
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))
	id := openSession(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/agent/sessions/"+id+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/agent/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/agent/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/agent/sessions/"+id+"/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMessageResolvesLocally(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))
	id := openSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/messages",
		gin.H{"text": "帮我找个能容纳6人的投影会议室"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp replyEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, session.SenderAssistant, resp.Reply.Sender)
	assert.Equal(t, "我明白您的意思，请查看：", resp.Reply.Text)
	require.NotNil(t, resp.Reply.Payload)
	assert.Equal(t, intent.KindMeeting, resp.Reply.Payload.Kind)
	assert.Equal(t, 6, resp.Reply.Payload.Criteria.MinCapacity)
	assert.Contains(t, resp.Reply.Payload.Criteria.Requirements, "投影")

	// The round trip persists both turns.
	w = doJSON(t, router, http.MethodGet, "/api/agent/sessions/"+id+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Messages []session.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Messages, 3)
}

func TestPostMessageValidation(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))
	id := openSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/messages", gin.H{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/agent/sessions/missing/messages", gin.H{"text": "你好"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMessageWhileResolving(t *testing.T) {
	h := newTestHandler(t, nil)
	router := newTestRouter(h)
	id := openSession(t, router)

	s, err := h.sessions.Get(id)
	require.NoError(t, err)
	_, _, err = s.BeginResolution("第一条")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/messages", gin.H{"text": "第二条"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPostMessageRateLimited(t *testing.T) {
	router := newTestRouter(newTestHandler(t, func(cfg *config.Config) {
		cfg.SessionRateBurst = 1
		cfg.SessionRateRefill = 0.001
	}))
	id := openSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/messages", gin.H{"text": "图书馆"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/messages", gin.H{"text": "图书馆"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestBookingConfirmationAndDuplicate(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))
	id := openSession(t, router)

	booking := gin.H{
		"item_id":   "羽毛球-主体育馆-1-10:00-11:00-0",
		"item_name": "主体育馆 1号场",
		"category":  "sports",
		"time":      "10:00-11:00",
	}

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/bookings", booking)
	require.Equal(t, http.StatusOK, w.Code)
	var resp replyEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "预约成功！请按时前往场馆。", resp.Reply.Text)
	assert.False(t, resp.Duplicate)

	// Booking the same item again confirms nothing.
	w = doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/bookings", booking)
	require.Equal(t, http.StatusOK, w.Code)
	resp = replyEnvelope{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Duplicate)
	assert.Empty(t, resp.Reply.Text)
}

func TestBookingApprovalCategories(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))
	id := openSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/bookings", gin.H{
		"item_id":   "mtg-图文信息中心-1-10:00-11:00-0",
		"item_name": "图文信息中心 01室",
		"category":  "meeting",
		"time":      "10:00-11:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp replyEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "您的预约申请已提交，请等待管理员审核。", resp.Reply.Text)
}

func TestBookingValidation(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))
	id := openSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/bookings", gin.H{
		"item_name": "主体育馆 1号场",
		"category":  "sports",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/agent/sessions/"+id+"/bookings", gin.H{
		"item_id":   "x-1",
		"item_name": "场地",
		"category":  "parking",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutCredential(t *testing.T) {
	db, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := storage.NewCredentialRepository(db)

	h := newTestHandler(t, nil)
	h.creds = repo
	router := newTestRouter(h)

	w := doJSON(t, router, http.MethodPut, "/api/agent/credential", gin.H{"api_key": "sk-test", "model": "gemini-2.5-pro"})
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err := repo.Get(t.Context(), config.LLMProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", stored.APIKey)
	assert.Equal(t, "gemini-2.5-pro", stored.Model)

	w = doJSON(t, router, http.MethodPut, "/api/agent/credential", gin.H{"api_key": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutCredentialWithoutStore(t *testing.T) {
	// The default test handler wires no credential repository.
	router := newTestRouter(newTestHandler(t, nil))

	w := doJSON(t, router, http.MethodPut, "/api/agent/credential", gin.H{"api_key": "sk-test"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetAvailabilitySports(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))

	w := doJSON(t, router, http.MethodGet, "/api/availability/sports?campus=yanan&date=0&sport=台球", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ds availability.Dataset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ds))
	assert.Equal(t, availability.CategorySports, ds.Category)
	assert.Contains(t, ds.Zones, "延安路体育馆")
	require.NotEmpty(t, ds.Items)
	assert.Equal(t, 10, ds.Items[0].Price)
}

func TestGetAvailabilityAnnotatesRecommendations(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))

	w := doJSON(t, router, http.MethodGet, "/api/availability/meeting?date=0&requirements=%E6%8A%95%E5%BD%B1&min_capacity=6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		availability.Dataset
		Recommended []string           `json:"recommended"`
		Best        *availability.Item `json:"best"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Best)
	assert.GreaterOrEqual(t, resp.Best.Capacity, 6)
	assert.NotEmpty(t, resp.Recommended)
	assert.Contains(t, resp.Recommended, resp.Best.ID)

	// Without criteria the dataset passes through unannotated.
	w = doJSON(t, router, http.MethodGet, "/api/availability/meeting?date=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"best"`)
}

func TestGetAvailabilityCanteenFollowsClock(t *testing.T) {
	h := newTestHandler(t, nil)
	// Monday lunch peak.
	h.now = func() time.Time {
		return time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local)
	}
	router := newTestRouter(h)

	w := doJSON(t, router, http.MethodGet, "/api/availability/canteen", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report availability.CanteenReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Canteens, 3)
	assert.True(t, report.Canteens[0].Open)
}

func TestGetAvailabilityValidation(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))

	w := doJSON(t, router, http.MethodGet, "/api/availability/parking", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/availability/sports?date=9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortalEndpoints(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))

	w := doJSON(t, router, http.MethodGet, "/api/portal/notices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notices struct {
		Notices []portal.Notice `json:"notices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notices))
	assert.Len(t, notices.Notices, 10)

	w = doJSON(t, router, http.MethodGet, "/api/portal/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var calendar struct {
		Days []portal.CalendarDay `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calendar))
	assert.Len(t, calendar.Days, 35)

	w = doJSON(t, router, http.MethodGet, "/api/portal/apps", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/portal/services", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetEntities(t *testing.T) {
	router := newTestRouter(newTestHandler(t, nil))

	w := doJSON(t, router, http.MethodGet, "/api/portal/entities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Entities []directory.Entry `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Entities, len(directory.Entries))

	w = doJSON(t, router, http.MethodGet, "/api/portal/entities?campus=yanan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp.Entities = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Entities)
	for _, e := range resp.Entities {
		assert.Equal(t, campus.Yanan, e.Campus)
	}

	w = doJSON(t, router, http.MethodGet, "/api/portal/entities?campus=mars", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
