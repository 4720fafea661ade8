package installer

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/faqbot/internal/config"
	envfile "github.com/sandevgo/faqbot/pkg/env"
)

// InstallState collects answers as typed config so the saved .env round-trips
// through the same parser the services use.
type InstallState struct {
	App      config.AppConfig
	Provider config.ProviderConfig
	Telegram config.TelegramConfig
}

func NewInstallState() (*InstallState, error) {
	s := &InstallState{}
	opts := env.Options{Environment: map[string]string{}}
	if err := env.ParseWithOptions(&s.App, opts); err != nil {
		return nil, fmt.Errorf("failed to load app defaults: %w", err)
	}
	if err := env.ParseWithOptions(&s.Provider, opts); err != nil {
		return nil, fmt.Errorf("failed to load provider defaults: %w", err)
	}
	return s, nil
}

// SetAPIKey stores key in the field matching the selected provider.
func (s *InstallState) SetAPIKey(key string) {
	p := &s.Provider
	switch p.Provider {
	case "groq":
		p.GroqAPIKey = key
	case "openai":
		p.OpenAIAPIKey = key
	case "openrouter":
		p.OpenRouterAPIKey = key
	case "anthropic":
		p.AnthropicAPIKey = key
	case "google":
		p.GoogleAPIKey = key
	case "ollama":
		p.OllamaAPIKey = key
	case "custom":
		p.CustomOpenAIAPIKey = key
	}
}

// Render produces the .env content for everything that differs from defaults.
func (s *InstallState) Render() (string, error) {
	parts := []any{&s.App, &s.Provider}
	if s.App.EnableTelegram {
		parts = append(parts, &s.Telegram)
	}

	var sb strings.Builder
	for _, p := range parts {
		out, err := envfile.MarshalEnv(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}
