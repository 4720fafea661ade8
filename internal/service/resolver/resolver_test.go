package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/observability"
	"github.com/sandevgo/faqbot/internal/providers/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearch returns the scripted best candidate of a corpus, applying the threshold strictly.
type fakeSearch struct {
	mu      sync.Mutex
	best    map[core.Corpus]*core.Candidate
	errs    map[core.Corpus]error
	queries []core.SearchQuery
}

func (f *fakeSearch) SearchTopCandidate(ctx context.Context, q core.SearchQuery) (*core.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if err := f.errs[q.Corpus]; err != nil {
		return nil, err
	}
	c := f.best[q.Corpus]
	if c == nil || c.Score <= q.Threshold {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

type fakeSink struct {
	mu       sync.Mutex
	inserted []string
	err      error
}

func (f *fakeSink) InsertUnanswered(ctx context.Context, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.inserted = append(f.inserted, question)
	return "u-new", nil
}

var testConfig = Config{
	PrimaryThreshold:    1.5,
	UnansweredThreshold: 1.0,
	KnowledgeIndex:      "knowledge",
	UnansweredIndex:     "unanswered",
}

func newTestResolver(search *fakeSearch, sink *fakeSink) (*Resolver, *observability.Metrics) {
	m := observability.NewMetrics(prometheus.NewRegistry(), "test")
	return New(search, NewCapture(search, sink, testConfig, m), testConfig), m
}

func TestResolve_MatchAboveThreshold(t *testing.T) {
	search := &fakeSearch{best: map[core.Corpus]*core.Candidate{
		core.CorpusKnowledge: {ID: "kb-1", Score: 2.1, Answer: "Use the reset link."},
	}}
	sink := &fakeSink{}
	r, _ := newTestResolver(search, sink)

	res, err := r.Resolve(context.Background(), "How do I reset my password?")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "kb-1", res.ItemID)
	assert.Equal(t, "Use the reset link.", res.Answer)

	require.Len(t, search.queries, 1)
	assert.Equal(t, core.SearchQuery{
		Text:      "How do I reset my password?",
		Corpus:    core.CorpusKnowledge,
		Index:     "knowledge",
		Threshold: 1.5,
	}, search.queries[0])
	assert.Empty(t, sink.inserted)
}

func TestResolve_ScoreEqualToThresholdIsMiss(t *testing.T) {
	search := &fakeSearch{best: map[core.Corpus]*core.Candidate{
		core.CorpusKnowledge: {ID: "kb-1", Score: 1.5, Answer: "x"},
	}}
	sink := &fakeSink{}
	r, _ := newTestResolver(search, sink)

	res, err := r.Resolve(context.Background(), "borderline")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, []string{"borderline"}, sink.inserted)
}

func TestResolve_MissCapturesOnce(t *testing.T) {
	search := &fakeSearch{}
	sink := &fakeSink{}
	r, m := newTestResolver(search, sink)

	res, err := r.Resolve(context.Background(), "Do you sell gift cards?")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, []string{"Do you sell gift cards?"}, sink.inserted)

	require.Len(t, search.queries, 2)
	assert.Equal(t, core.CorpusUnanswered, search.queries[1].Corpus)
	assert.Equal(t, 1.0, search.queries[1].Threshold)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Captures.WithLabelValues(observability.CaptureInserted)))
}

func TestResolve_FuzzyDuplicateNotCaptured(t *testing.T) {
	search := &fakeSearch{best: map[core.Corpus]*core.Candidate{
		core.CorpusUnanswered: {ID: "u-1", Score: 1.2},
	}}
	sink := &fakeSink{}
	r, m := newTestResolver(search, sink)

	res, err := r.Resolve(context.Background(), "do u sell giftcards")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Empty(t, sink.inserted)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Captures.WithLabelValues(observability.CaptureDuplicate)))
}

func TestResolve_PrimaryFailureIsBackendUnavailable(t *testing.T) {
	search := &fakeSearch{errs: map[core.Corpus]error{core.CorpusKnowledge: errors.New("connection refused")}}
	sink := &fakeSink{}
	r, _ := newTestResolver(search, sink)

	_, err := r.Resolve(context.Background(), "anything")
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
	assert.Empty(t, sink.inserted)
}

func TestResolve_CaptureFailuresAreSwallowed(t *testing.T) {
	t.Run("insert fails", func(t *testing.T) {
		search := &fakeSearch{}
		sink := &fakeSink{err: errors.New("disk full")}
		r, m := newTestResolver(search, sink)

		res, err := r.Resolve(context.Background(), "q")
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Captures.WithLabelValues(observability.CaptureFailed)))
	})

	t.Run("secondary search fails", func(t *testing.T) {
		search := &fakeSearch{errs: map[core.Corpus]error{core.CorpusUnanswered: core.Unavailable("search", errors.New("timeout"))}}
		sink := &fakeSink{}
		r, _ := newTestResolver(search, sink)

		res, err := r.Resolve(context.Background(), "q")
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Empty(t, sink.inserted)
	})
}

func TestResolve_WithoutCapture(t *testing.T) {
	r := New(&fakeSearch{}, nil, testConfig)

	res, err := r.Resolve(context.Background(), "q")
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

// indexingSink stores unanswered questions straight into the search index,
// so each insert is visible to the next duplicate check.
type indexingSink struct {
	index *search.Bleve

	mu       sync.Mutex
	inserted []string
}

func (s *indexingSink) InsertUnanswered(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	id := fmt.Sprintf("u-%d", len(s.inserted)+1)
	s.inserted = append(s.inserted, question)
	s.mu.Unlock()

	q := core.UnansweredQuestion{ID: id, Question: question, FirstSeenAt: time.Now().UTC()}
	return id, s.index.IndexUnanswered(ctx, q)
}

func TestResolve_ConcurrentMissesCaptureOnce(t *testing.T) {
	idx, err := search.NewBleve(search.Config{KnowledgeIndex: "knowledge", UnansweredIndex: "unanswered"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	cfg := testConfig
	cfg.UnansweredThreshold = 0
	sink := &indexingSink{index: idx}
	m := observability.NewMetrics(prometheus.NewRegistry(), "test")
	r := New(idx, NewCapture(idx, sink, cfg, m), cfg)
	ctx := context.Background()

	_, err = r.Resolve(ctx, "where is the invoice archive")
	require.NoError(t, err)
	_, err = r.Resolve(ctx, "where is the invoice archive")
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Resolve(ctx, "how do I reset my password")
			if err == nil && res.Matched {
				err = errors.New("unexpected knowledge match")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"where is the invoice archive", "how do I reset my password"}, sink.inserted)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Captures.WithLabelValues(observability.CaptureInserted)))
	assert.Equal(t, float64(workers), testutil.ToFloat64(m.Captures.WithLabelValues(observability.CaptureDuplicate)))
}
