package core

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetMaxTokens() int
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetGroqAPIKey() string
	GetGoogleAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaBaseURL() string
	GetOllamaAPIKey() string
	GetCustomOpenAIBaseURL() string
	GetCustomOpenAIAPIKey() string
}
