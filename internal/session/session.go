// Package session owns the conversation state machine: the ordered
// message log, the resolving flag, booking marks and the sticky campus
// preference. All state is mutated only through the transitions below.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/intent"
)

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one conversational turn. The log is append-only and
// chronological; it is replayed verbatim to the LLM as history.
type Message struct {
	ID        string              `json:"id"`
	Sender    string              `json:"sender"`
	Text      string              `json:"text,omitempty"`
	Payload   *intent.RichPayload `json:"payload,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// Session is one conversational surface. A session lives from
// surface-open to surface-close; nothing survives a close.
type Session struct {
	ID string

	mu         sync.Mutex
	messages   []Message
	resolving  bool
	generation uint64
	preferred  campus.Campus
	booked     map[string]bool
	lastActive time.Time
	closed     bool
	clock      func() time.Time
}

func newSession(clock func() time.Time) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		booked:     make(map[string]bool),
		lastActive: clock(),
		clock:      clock,
	}
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      intent.Greeting,
		Timestamp: clock(),
	})
	return s
}

// Messages returns a copy of the message log in insertion order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// PreferredCampus returns the sticky campus, empty if none inferred yet.
func (s *Session) PreferredCampus() campus.Campus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferred
}

// Resolving reports whether a resolution is in flight.
func (s *Session) Resolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolving
}

// BeginResolution appends the user message and flips to resolving.
// Only one resolution may be in flight; a concurrent submission gets
// ErrResolutionInFlight and changes nothing. The returned generation
// must be passed back to CompleteResolution or FailResolution.
func (s *Session) BeginResolution(text string) (uint64, []intent.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, nil, apperrors.ErrSessionNotFound
	}
	if s.resolving {
		return 0, nil, apperrors.ErrResolutionInFlight
	}

	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: s.clock(),
	})
	s.resolving = true
	s.lastActive = s.clock()

	history := make([]intent.Turn, 0, len(s.messages))
	for _, m := range s.messages {
		if m.Text == "" {
			continue
		}
		role := "user"
		if m.Sender == SenderAssistant {
			role = "assistant"
		}
		history = append(history, intent.Turn{Role: role, Text: m.Text})
	}

	return s.generation, history, nil
}

// CompleteResolution appends the assistant reply and returns to idle.
// A stale generation (the session was closed or reset while the call
// was in flight) discards the reply; ok is false and nothing changes.
func (s *Session) CompleteResolution(generation uint64, res intent.Result) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		return Message{}, false
	}

	msg := Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      res.Text,
		Payload:   res.Payload,
		Timestamp: s.clock(),
	}
	s.messages = append(s.messages, msg)
	s.resolving = false
	s.lastActive = s.clock()
	if res.Campus.Valid() {
		s.preferred = res.Campus
	}
	return msg, true
}

// FailResolution returns to idle without appending anything, so the
// user may simply retry. State is otherwise unchanged.
func (s *Session) FailResolution(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && generation == s.generation {
		s.resolving = false
		s.lastActive = s.clock()
	}
}

// Book marks an item as booked. The mark is one-way and idempotent;
// booking an already-booked item reports false and must not emit a
// second confirmation.
func (s *Session) Book(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || itemID == "" || s.booked[itemID] {
		return false
	}
	s.booked[itemID] = true
	s.lastActive = s.clock()
	return true
}

// Booked reports whether the item was already booked in this session.
func (s *Session) Booked(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.booked[itemID]
}

// close tears the session down. Bumping the generation discards any
// resolution still in flight.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.resolving = false
}

func (s *Session) idleSince(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive) > ttl
}
