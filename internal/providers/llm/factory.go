package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/pkg/log"
)

// NewProvider creates the GenerativeBackend selected by configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.GenerativeBackend, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	model, maxTokens := cfg.GetModel(), cfg.GetMaxTokens()

	switch cfg.GetProvider() {
	case "groq":
		return NewGroq(cfg.GetGroqAPIKey(), model, maxTokens), nil
	case "openai":
		return NewOpenAI(cfg.GetOpenAIAPIKey(), model, maxTokens), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), model, maxTokens), nil
	case "ollama":
		return NewOllama(cfg.GetOllamaBaseURL(), cfg.GetOllamaAPIKey(), model, maxTokens), nil
	case "custom":
		if cfg.GetCustomOpenAIBaseURL() == "" {
			return nil, fmt.Errorf("custom provider requires CUSTOM_OPENAI_BASE_URL")
		}
		return NewCustomOpenAI(cfg.GetCustomOpenAIBaseURL(), cfg.GetCustomOpenAIAPIKey(), model, maxTokens), nil
	case "anthropic":
		return NewAnthropic(cfg.GetAnthropicAPIKey(), model, maxTokens), nil
	case "google":
		return NewGoogle(ctx, cfg.GetGoogleAPIKey(), model, maxTokens)
	case "echo":
		return NewEcho(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
