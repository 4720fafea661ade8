package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sashabaranov/go-openai"
)

// OpenAICompatible talks to any backend that implements the OpenAI chat completions API.
type OpenAICompatible struct {
	name      string
	client    *openai.Client
	model     string
	maxTokens int
}

type OpenAICompatibleConfig struct {
	Name         string
	BaseURL      string
	APIKey       string
	Model        string
	MaxTokens    int
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout:   120 * time.Second,
		Transport: &headerTransport{base: http.DefaultTransport, headers: cfg.ExtraHeaders},
	}

	return &OpenAICompatible{
		name:      cfg.Name,
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (o *OpenAICompatible) GenerateCompletion(ctx context.Context, systemPrompt string, history []core.Message, human string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: toOpenAIMessages(systemPrompt, history, human),
	}
	if o.maxTokens > 0 {
		req.MaxTokens = o.maxTokens
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", core.Unavailable(o.name+" completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", core.Unavailable(o.name+" completion", errors.New("empty choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(systemPrompt string, history []core.Message, human string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	if systemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == core.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: human})
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.headers {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
