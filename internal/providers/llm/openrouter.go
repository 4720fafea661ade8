package llm

import "github.com/sandevgo/faqbot/internal/core"

func NewOpenRouter(apiKey, model string, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:      "openrouter",
		BaseURL:   openRouterBaseURL,
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.RepositoryURL,
			"X-Title":      core.AppName,
		},
	})
}
