package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandevgo/faqbot/internal/config"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/observability"
	"github.com/sandevgo/faqbot/internal/providers/llm"
	"github.com/sandevgo/faqbot/internal/providers/search"
	"github.com/sandevgo/faqbot/internal/service/chat"
	"github.com/sandevgo/faqbot/internal/service/command"
	"github.com/sandevgo/faqbot/internal/service/knowledge"
	"github.com/sandevgo/faqbot/internal/service/memory"
	"github.com/sandevgo/faqbot/internal/service/resolver"
	"github.com/sandevgo/faqbot/internal/service/review"
	"github.com/sandevgo/faqbot/internal/storage/sqlite"
	"github.com/sandevgo/faqbot/internal/transport/cli"
	"github.com/sandevgo/faqbot/internal/transport/httpapi"
	"github.com/sandevgo/faqbot/internal/transport/telegram"
	"github.com/sandevgo/faqbot/pkg/log"
	"github.com/sandevgo/faqbot/pkg/srv"
)

// app holds the wired core shared by every command.
type app struct {
	cfg          *config.AppConfig
	db           *sql.DB
	metrics      *observability.Metrics
	catalog      *knowledge.Catalog
	review       *review.Service
	orchestrator *chat.Orchestrator
	bindings     *chat.Bindings
	router       *command.Router
	cleanups     []srv.Service
}

// newApp wires storage, search and services. withLLM=false skips the generative
// backend for commands that only curate data.
func newApp(ctx context.Context, withLLM bool) (*app, error) {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	a := &app{cfg: appCfg}

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.db = db
	a.cleanups = append(a.cleanups, srv.NewCleanup("sqlite", db.Close))

	// 3. Search indexes, rebuilt from storage below
	index, err := search.NewBleve(search.Config{
		KnowledgeIndex:  appCfg.KnowledgeIndex,
		UnansweredIndex: appCfg.UnansweredIndex,
	})
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to initialize search: %w", err)
	}
	a.cleanups = append(a.cleanups, srv.NewCleanup("bleve", index.Close))

	a.metrics = observability.NewMetrics(prometheus.DefaultRegisterer, appCfg.MetricsNamespace)

	// 4. Generative backend
	var gen core.GenerativeBackend
	var translator *knowledge.Translator
	if withLLM {
		gen, err = llm.NewProvider(ctx, config.NewProviderConfig(ctx))
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
		}
		translator = knowledge.NewTranslator(gen)
	}

	// 5. Knowledge catalog
	a.catalog = knowledge.NewCatalog(sqlite.NewKnowledgeRepo(db), sqlite.NewUnansweredRepo(db), index, translator)
	if err := a.catalog.Reindex(ctx); err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to build search indexes: %w", err)
	}
	logger.Info().Interface("documents", index.DocCounts()).Msg("search indexes ready")

	chatLogs := sqlite.NewChatLogRepo(db)
	a.review = review.NewService(chatLogs, sqlite.NewReviewRepo(db))

	if !withLLM {
		return a, nil
	}

	// 6. Resolution and conversation
	rcfg := resolver.Config{
		PrimaryThreshold:    appCfg.PrimaryScoreThreshold,
		UnansweredThreshold: appCfg.UnansweredScoreThreshold,
		KnowledgeIndex:      appCfg.KnowledgeIndex,
		UnansweredIndex:     appCfg.UnansweredIndex,
	}
	res := resolver.New(index, resolver.NewCapture(index, a.catalog, rcfg, a.metrics), rcfg)

	sessions, err := memory.NewStore(appCfg.MaxTurnsPerSession, appCfg.MaxSessions,
		memory.WithRemoveHook(func(id string) {
			a.metrics.SessionEvicted()
			logger.Debug().Str("session_id", id).Msg("session left memory")
		}),
	)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	a.orchestrator = chat.NewOrchestrator(res, gen, sessions, chatLogs, chat.Config{
		SystemPrompt:      appCfg.GetSystemPrompt(),
		SearchTimeout:     appCfg.SearchTimeout,
		GenerationTimeout: appCfg.GenerationTimeout,
		SerializeTurns:    appCfg.SerializeSessionTurns,
	}, a.metrics)

	// 7. Chat commands
	a.bindings, err = chat.NewBindings(0)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.router = command.NewRouter(a.orchestrator, a.bindings)

	return a, nil
}

// close releases resources when the app runs outside the service lifecycle.
func (a *app) close(ctx context.Context) {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%v failed to close", a.cleanups[i])
		}
	}
}

func (a *app) newReadLine() (*cli.ReadLine, error) {
	return cli.NewReadLine(a.cfg, a.orchestrator, a.router, a.bindings)
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)

	a, err := newApp(ctx, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize faqbot")
	}

	services := append([]srv.Service{}, a.cleanups...)

	transports, err := initTransports(ctx, a)
	if err != nil {
		a.close(ctx)
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		a.close(ctx)
		logger.Fatal().Msg("no transport enabled, set ENABLE_HTTP or ENABLE_TELEGRAM")
	}

	return append(services, transports...)
}

func initTransports(ctx context.Context, a *app) ([]srv.Service, error) {
	var services []srv.Service

	if a.cfg.EnableHTTP {
		services = append(services, httpapi.New(a.cfg.HTTPAddr, httpapi.Deps{
			Chat:    a.orchestrator,
			Catalog: a.catalog,
			Review:  a.review,
			DB:      a.db,
			Metrics: a.metrics,
		}))
	}

	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.orchestrator, a.router, a.bindings)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
