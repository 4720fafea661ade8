package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/faqbot/pkg/log"
)

type ProviderConfig struct {
	Provider  string `env:"LLM_PROVIDER" envDefault:"groq"`
	Model     string `env:"LLM_MODEL" envDefault:"llama3-8b-8192"`
	MaxTokens int    `env:"LLM_MAX_TOKENS" envDefault:"1024"`

	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	GroqAPIKey       string `env:"GROQ_API_KEY"`
	GoogleAPIKey     string `env:"GOOGLE_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"OLLAMA_API_KEY"`

	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func ParseProviderConfig() (*ProviderConfig, error) {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c, err := ParseProviderConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c *ProviderConfig) GetProvider() string            { return c.Provider }
func (c *ProviderConfig) GetModel() string               { return c.Model }
func (c *ProviderConfig) GetMaxTokens() int              { return c.MaxTokens }
func (c *ProviderConfig) GetAnthropicAPIKey() string     { return c.AnthropicAPIKey }
func (c *ProviderConfig) GetOpenAIAPIKey() string        { return c.OpenAIAPIKey }
func (c *ProviderConfig) GetGroqAPIKey() string          { return c.GroqAPIKey }
func (c *ProviderConfig) GetGoogleAPIKey() string        { return c.GoogleAPIKey }
func (c *ProviderConfig) GetOpenRouterAPIKey() string    { return c.OpenRouterAPIKey }
func (c *ProviderConfig) GetOllamaBaseURL() string       { return c.OllamaBaseURL }
func (c *ProviderConfig) GetOllamaAPIKey() string        { return c.OllamaAPIKey }
func (c *ProviderConfig) GetCustomOpenAIBaseURL() string { return c.CustomOpenAIBaseURL }
func (c *ProviderConfig) GetCustomOpenAIAPIKey() string  { return c.CustomOpenAIAPIKey }
