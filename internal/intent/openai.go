package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiResolver decodes tool calls from any OpenAI-compatible API via
// a custom base URL.
type openaiResolver struct {
	client openai.Client
	model  string
	tools  []openai.ChatCompletionToolUnionParam
}

// newOpenAIResolver creates an OpenAI-compatible resolver.
func newOpenAIResolver(apiKey, baseURL, model string) (*openaiResolver, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &openaiResolver{
		client: openai.NewClient(opts...),
		model:  model,
		tools:  buildOpenAITools(),
	}, nil
}

func (r *openaiResolver) Name() string { return "openai" }

// Resolve replays the conversation and returns the first tool call, or
// the model's free-form text when it answered without one.
func (r *openaiResolver) Resolve(ctx context.Context, history []Turn) (*ToolCall, string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(SystemPrompt))
	for _, turn := range history {
		if turn.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       r.model,
		Messages:    messages,
		Tools:       r.tools,
		Temperature: openai.Float(0.1), // Low temperature for consistent classification
		MaxTokens:   openai.Int(512),
	}

	resp, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return nil, "", errors.New("empty response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) > 0 {
		// First tool call wins when several are returned.
		tc := choice.Message.ToolCalls[0]
		if tc.Type != "function" {
			return nil, "", fmt.Errorf("unexpected tool type: %s", tc.Type)
		}

		var args map[string]any
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, "", fmt.Errorf("failed to parse function arguments: %w", err)
			}
		}
		return &ToolCall{Name: tc.Function.Name, Args: args}, "", nil
	}

	return nil, strings.TrimSpace(choice.Message.Content), nil
}
