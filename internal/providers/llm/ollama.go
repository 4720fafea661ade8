package llm

import "strings"

// NewOllama uses Ollama's OpenAI-compatible endpoint under /v1.
func NewOllama(baseURL, apiKey, model string, maxTokens int) *OpenAICompatible {
	if apiKey == "" {
		apiKey = "ollama"
	}
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:      "ollama",
		BaseURL:   strings.TrimRight(baseURL, "/") + "/v1",
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
	})
}
