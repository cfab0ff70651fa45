// Package intent turns free-text user requests into structured service
// queries. It runs a deterministic local classifier when no LLM
// credential is configured and a tool-calling decoder (Gemini or any
// OpenAI-compatible provider) when one is.
package intent

import (
	"context"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/directory"
	"github.com/dhuhelper/dhu-portal-go/internal/recommend"
)

// Kind names the service view an assistant message asks the rendering
// layer to mount.
type Kind string

const (
	KindSports         Kind = "sports"
	KindMeeting        Kind = "meeting"
	KindClassroom      Kind = "classroom"
	KindLibrary        Kind = "library"
	KindCounseling     Kind = "counseling"
	KindCanteen        Kind = "canteen"
	KindCampusSelector Kind = "campus_selector"
	KindEntityLink     Kind = "entity_link"
)

// RichPayload describes which view to mount and with what generator
// parameters. The core never renders anything itself.
type RichPayload struct {
	Kind     Kind               `json:"kind"`
	Title    string             `json:"title"`
	Campus   campus.Campus      `json:"campus,omitempty"`
	Sport    string             `json:"sport,omitempty"`
	Criteria recommend.Criteria `json:"criteria,omitzero"`
	Entity   *directory.Entry   `json:"entity,omitempty"`
}

// Turn is one conversational turn replayed to the LLM as history.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Request is one resolution request against the engine.
type Request struct {
	// Text is the newest user input (already appended to History).
	Text string
	// History is the ordered message log including Text as last turn.
	History []Turn
	// PreferredCampus is the session's sticky campus, may be empty.
	PreferredCampus campus.Campus
}

// Result is the assistant's reply for one resolution.
type Result struct {
	Text    string
	Payload *RichPayload
	// Campus is the campus the turn resolved to; the session sticks it
	// for later turns. Empty when the turn did not establish one.
	Campus campus.Campus
}

// ToolCall is a single structured function call returned by a provider.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Resolver is one LLM provider. Resolve returns the first function
// call, or free-form text when the model answered without calling a
// tool.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, history []Turn) (*ToolCall, string, error)
}
