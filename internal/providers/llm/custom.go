package llm

func NewCustomOpenAI(baseURL, apiKey, model string, maxTokens int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:      "custom",
		BaseURL:   baseURL,
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
	})
}
