package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/observability"
	"github.com/sandevgo/faqbot/internal/service/resolver"
	"github.com/sandevgo/faqbot/pkg/log"
)

type Resolver interface {
	Resolve(ctx context.Context, query string) (resolver.Resolution, error)
}

type Sessions interface {
	core.SessionStore
	LockTurn(sessionID string) func()
	LastTouched(sessionID string) (time.Time, error)
	Len() int
}

type Config struct {
	SystemPrompt      string
	SearchTimeout     time.Duration
	GenerationTimeout time.Duration
	// SerializeTurns queues concurrent turns of one session instead of letting them interleave.
	SerializeTurns bool
}

type Result struct {
	SessionID     string  `json:"id"`
	Answer        string  `json:"response"`
	MatchedItemID *string `json:"question_id"`
	LogID         string  `json:"log_id,omitempty"`
}

// Orchestrator runs one chat turn: knowledge base first, generation as fallback,
// then the turn is logged.
type Orchestrator struct {
	resolver Resolver
	gen      core.GenerativeBackend
	sessions Sessions
	chatLog  core.ChatLog
	cfg      Config
	metrics  *observability.Metrics
}

func NewOrchestrator(
	resolver Resolver,
	gen core.GenerativeBackend,
	sessions Sessions,
	chatLog core.ChatLog,
	cfg Config,
	metrics *observability.Metrics,
) *Orchestrator {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = core.DefaultSystemPrompt
	}
	return &Orchestrator{
		resolver: resolver,
		gen:      gen,
		sessions: sessions,
		chatLog:  chatLog,
		cfg:      cfg,
		metrics:  metrics,
	}
}

// HandleTurn answers question within sessionID (empty starts a new session).
// Errors wrap core.ErrInvalidInput or core.ErrBackendUnavailable.
func (o *Orchestrator) HandleTurn(ctx context.Context, question, sessionID string) (Result, error) {
	if strings.TrimSpace(question) == "" {
		return Result{}, fmt.Errorf("%w: question must not be empty", core.ErrInvalidInput)
	}

	res, err := o.resolve(ctx, question)
	if err != nil {
		o.metrics.Resolution(observability.OutcomeError)
		return Result{}, err
	}

	var (
		sid       string
		answer    string
		matchedID *string
	)

	if res.Matched {
		// curated answers never touch conversation memory
		sid = sessionID
		if sid == "" {
			sid = uuid.NewString()
		}
		answer = res.Answer
		id := res.ItemID
		matchedID = &id
		o.metrics.Resolution(observability.OutcomeMatched)
	} else {
		defer o.evict(ctx)

		sid, answer, err = o.generate(ctx, question, sessionID)
		if err != nil {
			o.metrics.Resolution(observability.OutcomeError)
			return Result{}, err
		}
		o.metrics.Resolution(observability.OutcomeFallback)
	}

	ctx = log.WithFields(ctx, "session_id", sid)
	logID, err := o.chatLog.AppendChatLog(ctx, question, answer, sid, matchedID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to write chat log")
		o.metrics.ChatLogFailed()
		logID = ""
	}

	return Result{
		SessionID:     sid,
		Answer:        answer,
		MatchedItemID: matchedID,
		LogID:         logID,
	}, nil
}

func (o *Orchestrator) resolve(ctx context.Context, question string) (resolver.Resolution, error) {
	ctx, cancel := withTimeout(ctx, o.cfg.SearchTimeout)
	defer cancel()
	return o.resolver.Resolve(ctx, question)
}

func (o *Orchestrator) generate(ctx context.Context, question, sessionID string) (string, string, error) {
	sid, history := o.sessions.GetOrCreate(sessionID)
	ctx = log.WithFields(ctx, "session_id", sid)
	logger := log.FromCtx(ctx)

	if o.cfg.SerializeTurns {
		unlock := o.sessions.LockTurn(sid)
		defer unlock()
		// another turn may have finished while we waited
		if fresh, err := o.sessions.History(sid); err == nil {
			history = fresh
		}
	}

	genCtx, cancel := withTimeout(ctx, o.cfg.GenerationTimeout)
	defer cancel()

	start := time.Now()
	answer, err := o.gen.GenerateCompletion(genCtx, o.cfg.SystemPrompt, history, question)
	o.metrics.ObserveGenerationLatency(time.Since(start))
	if err != nil {
		if !errors.Is(err, core.ErrBackendUnavailable) {
			err = core.Unavailable("generation", err)
		}
		logger.Error().Err(err).Msg("generation failed")
		return "", "", err
	}

	if err := o.sessions.Append(sid, core.HumanMessage(question), core.AssistantMessage(answer)); err != nil {
		logger.Warn().Err(err).Msg("session left memory before the turn was stored")
	}

	logger.Debug().Int("history", len(history)).Msg("generated fallback answer")
	return sid, answer, nil
}

func (o *Orchestrator) evict(ctx context.Context) {
	if n := o.sessions.EvictIfOverCapacity(); n > 0 {
		log.FromCtx(ctx).Debug().Int("evicted", n).Msg("evicted oldest sessions")
	}
	o.metrics.SetSessionsHeld(o.sessions.Len())
}

// SessionHistory returns a copy of the session's window for diagnostics.
func (o *Orchestrator) SessionHistory(sessionID string) ([]core.Message, error) {
	return o.sessions.History(sessionID)
}

func (o *Orchestrator) SessionLastTouched(sessionID string) (time.Time, error) {
	return o.sessions.LastTouched(sessionID)
}

func (o *Orchestrator) ForgetSession(sessionID string) bool {
	return o.sessions.Forget(sessionID)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
