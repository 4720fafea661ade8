package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"FAQBOT_RUNTIME_PATH" envDefault:".faqbot"`

	// Transport Flags
	EnableHTTP     bool   `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8000"`

	// Resolution
	PrimaryScoreThreshold    float64 `env:"PRIMARY_SCORE_THRESHOLD" envDefault:"2"`
	UnansweredScoreThreshold float64 `env:"UNANSWERED_SCORE_THRESHOLD" envDefault:"1"`
	KnowledgeIndex           string  `env:"KNOWLEDGE_INDEX" envDefault:"knowledge"`
	UnansweredIndex          string  `env:"UNANSWERED_INDEX" envDefault:"unanswered"`

	// Conversation memory
	MaxTurnsPerSession    int  `env:"MAX_TURNS_PER_SESSION" envDefault:"5"`
	MaxSessions           int  `env:"MAX_SESSIONS" envDefault:"5"`
	SerializeSessionTurns bool `env:"SERIALIZE_SESSION_TURNS" envDefault:"true"`

	SearchTimeout     time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"60s"`

	SystemPrompt     string `env:"SYSTEM_PROMPT"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"faqbot"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if c.UnansweredScoreThreshold > c.PrimaryScoreThreshold {
		log.FromCtx(ctx).Warn().
			Float64("primary", c.PrimaryScoreThreshold).
			Float64("unanswered", c.UnansweredScoreThreshold).
			Msg("unanswered threshold is stricter than the primary one")
	}
	return c
}

func (c AppConfig) Validate() error {
	var errs []error
	if c.PrimaryScoreThreshold < 0 {
		errs = append(errs, fmt.Errorf("PRIMARY_SCORE_THRESHOLD must be >= 0, got %v", c.PrimaryScoreThreshold))
	}
	if c.UnansweredScoreThreshold < 0 {
		errs = append(errs, fmt.Errorf("UNANSWERED_SCORE_THRESHOLD must be >= 0, got %v", c.UnansweredScoreThreshold))
	}
	if c.MaxTurnsPerSession < 1 {
		errs = append(errs, fmt.Errorf("MAX_TURNS_PER_SESSION must be >= 1, got %d", c.MaxTurnsPerSession))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("MAX_SESSIONS must be >= 1, got %d", c.MaxSessions))
	}
	if c.SearchTimeout <= 0 {
		errs = append(errs, errors.New("SEARCH_TIMEOUT must be positive"))
	}
	if c.GenerationTimeout <= 0 {
		errs = append(errs, errors.New("GENERATION_TIMEOUT must be positive"))
	}
	if strings.TrimSpace(c.KnowledgeIndex) == "" || strings.TrimSpace(c.UnansweredIndex) == "" {
		errs = append(errs, errors.New("index names must not be empty"))
	}
	return errors.Join(errs...)
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "faqbot.db")
}

func (c AppConfig) GetSystemPrompt() string {
	if strings.TrimSpace(c.SystemPrompt) == "" {
		return core.DefaultSystemPrompt
	}
	return c.SystemPrompt
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
