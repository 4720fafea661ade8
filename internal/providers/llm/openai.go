package llm

const (
	groqBaseURL       = "https://api.groq.com/openai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

func NewOpenAI(apiKey, model string, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:      "openai",
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
	})
}

func NewGroq(apiKey, model string, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:      "groq",
		BaseURL:   groqBaseURL,
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
	})
}
