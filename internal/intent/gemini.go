package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiResolver decodes tool calls from the Gemini API.
type geminiResolver struct {
	client *genai.Client
	model  string
	tools  []*genai.Tool
}

// newGeminiResolver creates a Gemini-backed resolver.
func newGeminiResolver(ctx context.Context, apiKey, model string) (*geminiResolver, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiResolver{
		client: client,
		model:  model,
		tools: []*genai.Tool{{
			FunctionDeclarations: BuildFunctions(),
		}},
	}, nil
}

func (r *geminiResolver) Name() string { return "gemini" }

// Resolve replays the conversation and returns the first function call,
// or the model's free-form text when it answered without one.
func (r *geminiResolver) Resolve(ctx context.Context, history []Turn) (*ToolCall, string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	config := &genai.GenerateContentConfig{
		Tools:             r.tools,
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1), // Low temperature for consistent classification
		MaxOutputTokens:   512,
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		return nil, "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", errors.New("empty response from model")
	}

	// First function call wins when several are returned.
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			return &ToolCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}, "", nil
		}
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	return nil, strings.TrimSpace(text.String()), nil
}
