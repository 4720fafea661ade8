package resolver

import (
	"context"
	"errors"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/pkg/log"
)

type Config struct {
	PrimaryThreshold    float64
	UnansweredThreshold float64
	KnowledgeIndex      string
	UnansweredIndex     string
}

type Resolution struct {
	Matched bool
	ItemID  string
	Answer  string
	Score   float64
}

// Resolver answers from the curated knowledge corpus when a match clears the primary threshold.
type Resolver struct {
	search  core.SearchBackend
	capture *Capture
	cfg     Config
}

// New builds a resolver; a nil capture disables recording of misses.
func New(search core.SearchBackend, capture *Capture, cfg Config) *Resolver {
	return &Resolver{
		search:  search,
		capture: capture,
		cfg:     cfg,
	}
}

// Resolve returns a match, or Matched=false after recording the miss.
// Search failures are reported as core.ErrBackendUnavailable, never as a miss.
func (r *Resolver) Resolve(ctx context.Context, query string) (Resolution, error) {
	cand, err := r.search.SearchTopCandidate(ctx, core.SearchQuery{
		Text:      query,
		Corpus:    core.CorpusKnowledge,
		Index:     r.cfg.KnowledgeIndex,
		Threshold: r.cfg.PrimaryThreshold,
	})
	if err != nil {
		if !errors.Is(err, core.ErrBackendUnavailable) {
			err = core.Unavailable("knowledge search", err)
		}
		return Resolution{}, err
	}

	if cand == nil {
		log.FromCtx(ctx).Debug().Msg("no knowledge item above threshold")
		if r.capture != nil {
			r.capture.CaptureIfNovel(ctx, query)
		}
		return Resolution{}, nil
	}

	log.FromCtx(ctx).Debug().
		Str("item_id", cand.ID).
		Float64("score", cand.Score).
		Msg("resolved from knowledge base")

	return Resolution{
		Matched: true,
		ItemID:  cand.ID,
		Answer:  cand.Answer,
		Score:   cand.Score,
	}, nil
}
