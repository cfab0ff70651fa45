package session

import (
	"sync"
	"time"

	"github.com/dhuhelper/dhu-portal-go/internal/config"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/metrics"
	"github.com/dhuhelper/dhu-portal-go/internal/ratelimit"
)

// Manager tracks live sessions, throttles per-session submissions and
// expires idle sessions in the background.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl     time.Duration
	limiter *ratelimit.PerKeyLimiter
	log     *logger.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

// NewManager creates a manager and starts its sweep loop.
func NewManager(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) *Manager {
	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     cfg.SessionRateBurst,
		RefillRate:    cfg.SessionRateRefill,
		CleanupPeriod: config.RateLimiterCleanupInterval,
	})
	if m != nil {
		limiter.OnDrop(func() { m.RecordRateLimiterDrop("session") })
		limiter.OnUpdate(func(count int) { m.SetActiveRateLimiters(count) })
	}

	mgr := &Manager{
		sessions: make(map[string]*Session),
		ttl:      cfg.SessionTTL,
		limiter:  limiter,
		log:      log.WithModule("session"),
		metrics:  m,
		clock:    time.Now,
		stopCh:   make(chan struct{}),
	}

	go mgr.sweepLoop()

	return mgr
}

// Open creates a new session seeded with the greeting message.
func (m *Manager) Open() *Session {
	s := newSession(m.clock)

	m.mu.Lock()
	m.sessions[s.ID] = s
	active := len(m.sessions)
	m.mu.Unlock()

	m.recordEvent("opened", active)
	m.log.WithSessionID(s.ID).Debugf("session opened")
	return s
}

// Get returns the session or ErrSessionNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

// Close discards the session. Any resolution still in flight will have
// its reply dropped by the generation check.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	active := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return apperrors.ErrSessionNotFound
	}
	s.close()
	m.recordEvent("closed", active)
	return nil
}

// Allow checks the per-session submission rate limit.
func (m *Manager) Allow(id string) bool {
	return m.limiter.Allow(id)
}

// ActiveCount returns the number of live sessions.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Stop halts background loops. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopped.Do(func() {
		close(m.stopCh)
		m.limiter.Stop()
	})
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(config.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep expires sessions idle longer than the TTL.
func (m *Manager) sweep() {
	now := m.clock()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince(now, m.ttl) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
		m.recordEvent("expired", active)
		m.log.WithSessionID(s.ID).Debugf("session expired")
	}
}

func (m *Manager) recordEvent(event string, active int) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordSessionEvent(event)
	m.metrics.SetActiveSessions(active)
}
