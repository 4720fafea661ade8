package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/observability"
	"github.com/sandevgo/faqbot/internal/service/chat"
	"github.com/sandevgo/faqbot/internal/service/knowledge"
	"github.com/sandevgo/faqbot/pkg/log"
)

type ChatService interface {
	HandleTurn(ctx context.Context, question, sessionID string) (chat.Result, error)
	SessionHistory(sessionID string) ([]core.Message, error)
	SessionLastTouched(sessionID string) (time.Time, error)
}

type Catalog interface {
	AddMultilingual(ctx context.Context, in knowledge.MultilingualInput) (map[string]string, error)
	ListItems(ctx context.Context) ([]core.KnowledgeItem, error)
	ListUnanswered(ctx context.Context) ([]core.UnansweredQuestion, error)
	DeleteItem(ctx context.Context, id string) error
	DeleteUnanswered(ctx context.Context, id string) error
}

type Reviewer interface {
	ChatLogs(ctx context.Context, hours *int) ([]core.ChatLogEntry, error)
	RateChat(ctx context.Context, logID string) (core.ReviewEntry, error)
	Reviews(ctx context.Context) ([]core.ReviewEntry, error)
	DeleteReview(ctx context.Context, id string) error
	DeleteChatLog(ctx context.Context, id string) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Chat    ChatService
	Catalog Catalog
	Review  Reviewer
	DB      Pinger
	Metrics *observability.Metrics
}

// Server exposes chat and curation over JSON HTTP.
type Server struct {
	addr       string
	deps       Deps
	validate   *validator.Validate
	router     chi.Router
	httpServer *http.Server
}

func New(addr string, deps Deps) *Server {
	s := &Server{
		addr:     addr,
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.deps.Metrics.Handler())

	r.Post("/chat", s.handleChat)
	r.Get("/sessions/{id}/history", s.handleSessionHistory)

	r.Post("/add_multilingual_question", s.handleAddMultilingual)
	r.Get("/multilingual_questions", s.handleListItems)
	r.Delete("/multilingual_questions/{id}", s.handleDeleteItem)
	r.Get("/unanswered_questions", s.handleListUnanswered)
	r.Delete("/unanswered_questions/{id}", s.handleDeleteUnanswered)

	r.Get("/get_chat_logs", s.handleChatLogs)
	r.Delete("/chat_logs/{id}", s.handleDeleteChatLog)
	r.Post("/rate_chat", s.handleRateChat)
	r.Get("/review_questions", s.handleListReviews)
	r.Delete("/review_questions/{id}", s.handleDeleteReview)

	return r
}

// Router returns the handler tree, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("starting http api")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger attaches a request-scoped logger and logs each request once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := log.WithFields(r.Context(), "request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		log.FromCtx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, "The site is running correctly, use chat endpoint.")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.PingContext(ctx); err != nil {
			log.FromCtx(r.Context()).Error().Err(err).Msg("health check failed")
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
