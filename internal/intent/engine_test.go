package intent

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/config"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/logger"
	"github.com/dhuhelper/dhu-portal-go/internal/storage"
)

type fakeResolver struct {
	call *ToolCall
	text string
	err  error
}

func (f *fakeResolver) Name() string { return "fake" }

func (f *fakeResolver) Resolve(_ context.Context, _ []Turn) (*ToolCall, string, error) {
	return f.call, f.text, f.err
}

type fakeCreds struct {
	cred storage.Credential
	err  error
}

func (f *fakeCreds) Get(_ context.Context, _ string) (storage.Credential, error) {
	return f.cred, f.err
}

func newTestEngine(t *testing.T, creds CredentialSource, fake *fakeResolver) *Engine {
	t.Helper()
	cfg := &config.Config{
		LLMProvider:      config.LLMProviderGemini,
		GeminiModel:      "gemini-2.5-flash",
		LLMMaxConcurrent: 2,
	}
	e := NewEngine(cfg, logger.NewWithWriter("error", io.Discard), nil, creds)
	if fake != nil {
		e.newResolve = func(_ context.Context, _, _, _, _ string) (Resolver, error) {
			return fake, nil
		}
	}
	return e
}

func request(text string) Request {
	return Request{Text: text, History: []Turn{{Role: "user", Text: text}}}
}

func TestEngineFallbackWithoutCredential(t *testing.T) {
	e := newTestEngine(t, &fakeCreds{err: apperrors.ErrNotFound}, nil)

	res, err := e.Resolve(context.Background(), request("图书馆还有座位吗"))
	require.NoError(t, err)
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindLibrary, res.Payload.Kind)
}

func TestEngineRejectsEmptyInput(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	_, err := e.Resolve(context.Background(), request("   "))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEngineBookingEventSkipsLLM(t *testing.T) {
	// The factory must never run for booking events, even with a key.
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, nil)
	e.newResolve = func(_ context.Context, _, _, _, _ string) (Resolver, error) {
		t.Fatal("resolver built for a booking event")
		return nil, nil
	}

	res, err := e.Resolve(context.Background(), request("[SYSTEM_EVENT] User booked sports: 主体育馆 1号场 at 08:00-09:00."))
	require.NoError(t, err)
	assert.Equal(t, textBookedSports, res.Text)
}

func TestEngineDecodesToolCall(t *testing.T) {
	fake := &fakeResolver{call: &ToolCall{
		Name: "search_meeting",
		Args: map[string]any{
			"campus":       "yanan",
			"requirements": "投影 白板",
			"min_capacity": float64(8),
		},
	}}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("找个会议室"))
	require.NoError(t, err)
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindMeeting, res.Payload.Kind)
	assert.Equal(t, campus.Yanan, res.Payload.Campus)
	assert.Equal(t, campus.Yanan, res.Campus)
	assert.Equal(t, []string{"投影", "白板"}, res.Payload.Criteria.Requirements)
	assert.Equal(t, 8, res.Payload.Criteria.MinCapacity)
	assert.Equal(t, textResolvedAck, res.Text)
}

func TestEngineDecodesSportsDefaults(t *testing.T) {
	fake := &fakeResolver{call: &ToolCall{Name: "search_sports", Args: map[string]any{}}}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("想运动"))
	require.NoError(t, err)
	require.NotNil(t, res.Payload)
	assert.Equal(t, "羽毛球", res.Payload.Sport)
	assert.Equal(t, campus.Songjiang, res.Payload.Campus)
}

func TestEngineFindEntity(t *testing.T) {
	fake := &fakeResolver{call: &ToolCall{Name: "find_entity", Args: map[string]any{"name": "体育部"}}}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("体育部网站"))
	require.NoError(t, err)
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindEntityLink, res.Payload.Kind)
	require.NotNil(t, res.Payload.Entity)
	assert.Equal(t, "体育部", res.Payload.Entity.Name)
}

func TestEngineMalformedToolArgs(t *testing.T) {
	// find_entity without a name degrades to the no-match reply.
	fake := &fakeResolver{call: &ToolCall{Name: "find_entity"}}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("随便"))
	require.NoError(t, err)
	assert.Nil(t, res.Payload)
	assert.Equal(t, textApology, res.Text)
}

func TestEngineUnknownFunction(t *testing.T) {
	fake := &fakeResolver{call: &ToolCall{Name: "search_dormitory"}}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("宿舍"))
	require.NoError(t, err)
	assert.Equal(t, textApology, res.Text)
}

func TestEngineResolverErrorIsRecoverable(t *testing.T) {
	fake := &fakeResolver{err: errors.New("upstream 500")}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	_, err := e.Resolve(context.Background(), request("找个会议室"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrClassification)
	assert.True(t, apperrors.IsRecoverable(err))
}

func TestEngineCanceledCallSurfacesCancellation(t *testing.T) {
	fake := &fakeResolver{err: context.Canceled}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	_, err := e.Resolve(context.Background(), request("找个会议室"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrContextCanceled)
}

func TestEngineFreeTextPassthrough(t *testing.T) {
	fake := &fakeResolver{text: "你好，有什么可以帮你？"}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("你好"))
	require.NoError(t, err)
	assert.Nil(t, res.Payload)
	assert.Equal(t, "你好，有什么可以帮你？", res.Text)
}

func TestEngineCampusSelector(t *testing.T) {
	fake := &fakeResolver{call: &ToolCall{Name: "request_campus_selection"}}
	e := newTestEngine(t, &fakeCreds{cred: storage.Credential{APIKey: "key"}}, fake)

	res, err := e.Resolve(context.Background(), request("换个校区"))
	require.NoError(t, err)
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindCampusSelector, res.Payload.Kind)
	assert.False(t, res.Campus.Valid())
}

func TestResolveCampusPrecedence(t *testing.T) {
	tests := []struct {
		name                        string
		explicit, entity, preferred campus.Campus
		want                        campus.Campus
	}{
		{"explicit wins", campus.Yanan, campus.Songjiang, campus.Songjiang, campus.Yanan},
		{"entity beats sticky", "", campus.Yanan, campus.Songjiang, campus.Yanan},
		{"sticky beats default", "", "", campus.Yanan, campus.Yanan},
		{"default", "", "", "", campus.Songjiang},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCampus(tt.explicit, tt.entity, tt.preferred))
		})
	}
}

func TestParseRequirements(t *testing.T) {
	assert.Equal(t, []string{"投影", "白板", "音响"}, parseRequirements("投影, 白板、音响"))
	assert.Equal(t, []string{"投影", "白板"}, parseRequirements([]any{"投影", "白板", "投影"}))
	assert.Nil(t, parseRequirements(nil))
	assert.Nil(t, parseRequirements(42))
}

func TestParseCapacity(t *testing.T) {
	assert.Equal(t, 6, parseCapacity(float64(6)))
	assert.Equal(t, 8, parseCapacity("8"))
	assert.Equal(t, 6, parseCapacity("６")) // full-width digit
	assert.Equal(t, 0, parseCapacity(float64(-1)))
	assert.Equal(t, 0, parseCapacity("many"))
	assert.Equal(t, 0, parseCapacity("+8")) // digits only, no sign
	assert.Equal(t, 0, parseCapacity(nil))
}
