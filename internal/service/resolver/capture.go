package resolver

import (
	"context"
	"sync"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/observability"
	"github.com/sandevgo/faqbot/pkg/log"
)

// Capture records questions the knowledge base could not answer, collapsing
// paraphrases of an already captured question onto the existing entry.
type Capture struct {
	// mu makes the duplicate check and the insert one step, so concurrent
	// misses on the same question store it once.
	mu sync.Mutex

	search  core.SearchBackend
	sink    core.UnansweredSink
	cfg     Config
	metrics *observability.Metrics
}

func NewCapture(search core.SearchBackend, sink core.UnansweredSink, cfg Config, metrics *observability.Metrics) *Capture {
	return &Capture{
		search:  search,
		sink:    sink,
		cfg:     cfg,
		metrics: metrics,
	}
}

// CaptureIfNovel is best effort: failures are logged and never reach the caller.
func (c *Capture) CaptureIfNovel(ctx context.Context, query string) {
	logger := log.FromCtx(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.search.SearchTopCandidate(ctx, core.SearchQuery{
		Text:      query,
		Corpus:    core.CorpusUnanswered,
		Index:     c.cfg.UnansweredIndex,
		Threshold: c.cfg.UnansweredThreshold,
	})
	if err != nil {
		// skip the insert rather than risk a duplicate
		logger.Warn().Err(err).Msg("unanswered search failed, question not captured")
		c.metrics.Capture(observability.CaptureFailed)
		return
	}

	if existing != nil {
		logger.Debug().
			Str("unanswered_id", existing.ID).
			Float64("score", existing.Score).
			Msg("question already captured")
		c.metrics.Capture(observability.CaptureDuplicate)
		return
	}

	id, err := c.sink.InsertUnanswered(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("failed to capture unanswered question")
		c.metrics.Capture(observability.CaptureFailed)
		return
	}

	logger.Info().Str("unanswered_id", id).Msg("captured unanswered question")
	c.metrics.Capture(observability.CaptureInserted)
}
