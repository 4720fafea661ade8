package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
	"google.golang.org/genai"
)

// Google generates with Gemini models through the Gemini API.
type Google struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func NewGoogle(ctx context.Context, apiKey, model string, maxTokens int) (*Google, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Google{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

func (g *Google) GenerateCompletion(ctx context.Context, systemPrompt string, history []core.Message, human string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if g.maxTokens > 0 {
		cfg.MaxOutputTokens = g.maxTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, toGenaiContents(history, human), cfg)
	if err != nil {
		return "", core.Unavailable("google completion", err)
	}

	text := resp.Text()
	if text == "" {
		return "", core.Unavailable("google completion", errors.New("empty response"))
	}
	return text, nil
}

func toGenaiContents(history []core.Message, human string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == core.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(human, genai.RoleUser))
}
