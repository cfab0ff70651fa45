package intent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/semaphore"

	"github.com/dhuhelper/dhu-portal-go/internal/availability"
	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/config"
	"github.com/dhuhelper/dhu-portal-go/internal/directory"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/metrics"
	"github.com/dhuhelper/dhu-portal-go/internal/recommend"
	"github.com/dhuhelper/dhu-portal-go/internal/sliceutil"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
	"github.com/dhuhelper/dhu-portal-go/internal/stringutil"
)

// CredentialSource looks up a runtime LLM credential.
// *storage.CredentialRepository implements it.
type CredentialSource interface {
	Get(ctx context.Context, provider string) (storage.Credential, error)
}

// resolverFactory builds a provider resolver per resolution, so a
// credential stored mid-process takes effect without a restart.
type resolverFactory func(ctx context.Context, provider, apiKey, model, baseURL string) (Resolver, error)

// Engine is the intent resolution engine. One instance serves all
// sessions; global LLM concurrency is capped by a weighted semaphore.
type Engine struct {
	cfg        *config.Config
	log        *logger.Logger
	metrics    *metrics.Metrics
	creds      CredentialSource
	sem        *semaphore.Weighted
	newResolve resolverFactory
}

// NewEngine creates the engine. creds may be nil when no credential
// store is wired (fallback-only mode unless the env provides a key).
func NewEngine(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, creds CredentialSource) *Engine {
	return &Engine{
		cfg:        cfg,
		log:        log,
		metrics:    m,
		creds:      creds,
		sem:        semaphore.NewWeighted(cfg.LLMMaxConcurrent),
		newResolve: defaultResolverFactory,
	}
}

func defaultResolverFactory(ctx context.Context, provider, apiKey, model, baseURL string) (Resolver, error) {
	if provider == config.LLMProviderOpenAI {
		return newOpenAIResolver(apiKey, baseURL, model)
	}
	return newGeminiResolver(ctx, apiKey, model)
}

// Resolve turns one user input into an assistant reply. Classification
// failures return wrapped sentinels from the errors package; the
// caller maps them to transient user-visible messages and leaves
// session state unchanged.
func (e *Engine) Resolve(ctx context.Context, req Request) (Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Result{}, fmt.Errorf("%w: empty input", apperrors.ErrInvalidInput)
	}

	// Booking events never reach the LLM; the confirmation text is fixed.
	if strings.HasPrefix(text, BookingEventPrefix) {
		res := confirmBooking(strings.ToLower(stringutil.Fold(text)))
		e.recordIntent("booking")
		return res, nil
	}

	provider, apiKey, model := e.credential(ctx)
	if apiKey == "" {
		start := time.Now()
		res := classify(text, req.PreferredCampus)
		e.recordResolution("fallback", "success", time.Since(start))
		e.recordResult(res)
		return res, nil
	}

	return e.resolveExternal(ctx, req, provider, apiKey, model)
}

func (e *Engine) resolveExternal(ctx context.Context, req Request, provider, apiKey, model string) (Result, error) {
	timeout := e.cfg.LLMTimeout
	if timeout <= 0 {
		timeout = config.ResolutionTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := e.sem.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.Canceled) {
			e.recordResolution(provider, "canceled", 0)
			return Result{}, fmt.Errorf("%w: waiting for resolution slot: %w", apperrors.ErrContextCanceled, err)
		}
		e.recordResolution(provider, "timeout", 0)
		return Result{}, fmt.Errorf("%w: waiting for resolution slot: %w", apperrors.ErrTimeout, err)
	}
	defer e.sem.Release(1)

	resolver, err := e.newResolve(ctx, provider, apiKey, model, e.cfg.OpenAIBaseURL)
	if err != nil {
		e.recordResolution(provider, "error", 0)
		return Result{}, fmt.Errorf("%w: %w", apperrors.ErrClassification, err)
	}

	start := time.Now()
	call, freeText, err := resolver.Resolve(ctx, req.History)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.recordResolution(provider, "timeout", elapsed)
			return Result{}, fmt.Errorf("%w: %w", apperrors.ErrTimeout, err)
		}
		if errors.Is(err, context.Canceled) {
			e.recordResolution(provider, "canceled", elapsed)
			return Result{}, fmt.Errorf("%w: %w", apperrors.ErrContextCanceled, err)
		}
		e.recordResolution(provider, "error", elapsed)
		e.log.WithModule("intent").Warnf("resolution failed: provider=%s err=%v", provider, err)
		return Result{}, fmt.Errorf("%w: %w", apperrors.ErrClassification, err)
	}

	e.recordResolution(provider, "success", elapsed)

	if call != nil {
		res, err := e.decodeCall(call, req)
		if err != nil {
			// Malformed tool arguments degrade to the no-match reply.
			e.log.WithModule("intent").Warnf("malformed tool call %q: %v", call.Name, err)
			e.recordIntent("malformed")
			return Result{Text: textApology}, nil
		}
		e.recordResult(res)
		return res, nil
	}

	if freeText != "" {
		e.recordIntent("direct_reply")
		return Result{Text: freeText}, nil
	}

	e.recordIntent("direct_reply")
	return Result{Text: textNoReply}, nil
}

// credential picks the API key: environment first, then the stored
// runtime credential. Empty means fallback mode, never a network call.
func (e *Engine) credential(ctx context.Context) (provider, apiKey, model string) {
	provider = e.cfg.LLMProvider
	if provider == config.LLMProviderOpenAI {
		apiKey, model = e.cfg.OpenAIAPIKey, e.cfg.OpenAIModel
	} else {
		apiKey, model = e.cfg.GeminiAPIKey, e.cfg.GeminiModel
	}
	if apiKey != "" || e.creds == nil {
		return provider, apiKey, model
	}

	stored, err := e.creds.Get(ctx, provider)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			e.log.WithModule("intent").Warnf("credential lookup failed: %v", err)
		}
		return provider, "", model
	}
	if stored.Model != "" {
		model = stored.Model
	}
	return provider, stored.APIKey, model
}

// decodeCall maps one tool call to a reply. Unknown functions and
// unparseable arguments are reported as ErrMalformedToolArgs.
func (e *Engine) decodeCall(call *ToolCall, req Request) (Result, error) {
	var explicit campus.Campus
	if c, ok := campus.Parse(argString(call.Args, "campus")); ok {
		explicit = c
	}
	resolved := resolveCampus(explicit, "", req.PreferredCampus)
	criteria := recommend.Criteria{
		Requirements: parseRequirements(call.Args["requirements"]),
		MinCapacity:  parseCapacity(call.Args["min_capacity"]),
	}

	switch call.Name {
	case "search_sports":
		sport := argString(call.Args, "sport")
		if sport == "" {
			sport = availability.DefaultSport
		}
		return Result{
			Text:    textResolvedAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindSports, Title: sport, Campus: resolved, Sport: sport, Criteria: criteria},
		}, nil
	case "search_meeting":
		return Result{
			Text:    textResolvedAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindMeeting, Title: titleMeeting, Campus: resolved, Criteria: criteria},
		}, nil
	case "search_classroom":
		return Result{
			Text:    textResolvedAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindClassroom, Title: titleClassroom, Campus: resolved, Criteria: criteria},
		}, nil
	case "search_library":
		return Result{
			Text:    textResolvedAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindLibrary, Title: titleLibrary, Campus: resolved},
		}, nil
	case "search_counseling":
		return Result{
			Text:    textResolvedAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindCounseling, Title: titleCounseling, Campus: resolved},
		}, nil
	case "search_canteen":
		return Result{
			Text:    textResolvedAck,
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindCanteen, Title: titleCanteen, Campus: resolved},
		}, nil
	case "find_entity":
		name := argString(call.Args, "name")
		if name == "" {
			return Result{}, fmt.Errorf("%w: find_entity without name", apperrors.ErrMalformedToolArgs)
		}
		entry, ok := directory.Find(name)
		if !ok {
			return Result{Text: textApology}, nil
		}
		resolved = resolveCampus(explicit, entry.Campus, req.PreferredCampus)
		return Result{
			Text:    fmt.Sprintf(entityAckFormat, entry.Name),
			Campus:  resolved,
			Payload: &RichPayload{Kind: KindEntityLink, Title: entry.Name, Campus: resolved, Entity: &entry},
		}, nil
	case "request_campus_selection":
		return Result{
			Text:    textCampusQuestion,
			Payload: &RichPayload{Kind: KindCampusSelector, Title: titleCampusPick},
		}, nil
	}

	return Result{}, fmt.Errorf("%w: unknown function %q", apperrors.ErrMalformedToolArgs, call.Name)
}

// resolveCampus applies the per-turn precedence: explicit mention >
// entity home campus > sticky session campus > songjiang default.
func resolveCampus(explicit, entity, preferred campus.Campus) campus.Campus {
	switch {
	case explicit.Valid():
		return explicit
	case entity.Valid():
		return entity
	case preferred.Valid():
		return preferred
	default:
		return campus.Songjiang
	}
}

func argString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// parseRequirements accepts either a delimited string or an array of
// strings, splits on whitespace and list punctuation, and deduplicates
// while keeping order.
func parseRequirements(v any) []string {
	var tokens []string
	switch val := v.(type) {
	case string:
		tokens = splitRequirements(val)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				tokens = append(tokens, splitRequirements(s)...)
			}
		}
	case []string:
		for _, s := range val {
			tokens = append(tokens, splitRequirements(s)...)
		}
	}
	return sliceutil.Deduplicate(tokens, func(s string) string { return s })
}

func splitRequirements(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '、' || r == '，'
	})
}

// parseCapacity accepts a JSON number or a string of plain digits.
func parseCapacity(v any) int {
	switch val := v.(type) {
	case float64:
		if val > 0 {
			return int(val)
		}
	case int:
		if val > 0 {
			return val
		}
	case string:
		folded := stringutil.Fold(strings.TrimSpace(val))
		if !stringutil.IsNumeric(folded) {
			return 0
		}
		if n, err := strconv.Atoi(folded); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func (e *Engine) recordResolution(provider, status string, elapsed time.Duration) {
	if e.metrics != nil {
		e.metrics.RecordResolution(provider, status, elapsed.Seconds())
	}
}

func (e *Engine) recordIntent(kind string) {
	if e.metrics != nil {
		e.metrics.RecordIntent(kind)
	}
}

func (e *Engine) recordResult(res Result) {
	if e.metrics == nil {
		return
	}
	if res.Payload != nil {
		e.metrics.RecordIntent(string(res.Payload.Kind))
	} else {
		e.metrics.RecordIntent("unrecognized")
	}
}
