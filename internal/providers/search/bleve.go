package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/pkg/log"
)

const (
	fieldQuestion   = "question"
	fieldAnswer     = "answer"
	fieldReferences = "references"
	fieldLanguage   = "language"
)

type Config struct {
	KnowledgeIndex  string
	UnansweredIndex string
}

type corpusIndex struct {
	corpus core.Corpus
	index  bleve.Index
}

// Bleve serves relevance search over in-memory bleve indexes, one per corpus.
// The indexes are derived data: Reindex rebuilds them from the durable store.
type Bleve struct {
	mu      sync.RWMutex
	indexes map[string]*corpusIndex
	names   map[core.Corpus]string
}

func NewBleve(cfg Config) (*Bleve, error) {
	b := &Bleve{
		indexes: make(map[string]*corpusIndex),
		names: map[core.Corpus]string{
			core.CorpusKnowledge:  cfg.KnowledgeIndex,
			core.CorpusUnanswered: cfg.UnansweredIndex,
		},
	}

	for corpus, name := range b.names {
		idx, err := bleve.NewMemOnly(newMapping(corpus))
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("failed to create index %s: %w", name, err)
		}
		b.indexes[name] = &corpusIndex{corpus: corpus, index: idx}
	}
	return b, nil
}

func newMapping(corpus core.Corpus) mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldQuestion, text)

	if corpus == core.CorpusKnowledge {
		doc.AddFieldMappingsAt(fieldAnswer, text)
		doc.AddFieldMappingsAt(fieldReferences, text)

		lang := bleve.NewKeywordFieldMapping()
		lang.IncludeInAll = false
		doc.AddFieldMappingsAt(fieldLanguage, lang)
	}

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// SearchTopCandidate matches q.Text against every indexed field of the corpus and
// returns the best hit whose score is strictly greater than q.Threshold.
func (b *Bleve) SearchTopCandidate(ctx context.Context, q core.SearchQuery) (*core.Candidate, error) {
	ci, err := b.lookup(q.Index, q.Corpus)
	if err != nil {
		return nil, core.Unavailable("search", err)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(q.Text), 1, 0, false)
	if q.Corpus == core.CorpusKnowledge {
		req.Fields = []string{fieldAnswer}
	}

	res, err := ci.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, core.Unavailable("search "+q.Index, err)
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}

	hit := res.Hits[0]
	log.FromCtx(ctx).Debug().
		Str("index", q.Index).
		Str("id", hit.ID).
		Float64("score", hit.Score).
		Float64("threshold", q.Threshold).
		Msg("top search hit")

	if hit.Score <= q.Threshold {
		return nil, nil
	}

	c := &core.Candidate{ID: hit.ID, Score: hit.Score}
	if answer, ok := hit.Fields[fieldAnswer].(string); ok {
		c.Answer = answer
	}
	return c, nil
}

func (b *Bleve) lookup(name string, corpus core.Corpus) (*corpusIndex, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ci, ok := b.indexes[name]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", name)
	}
	if ci.corpus != corpus {
		return nil, fmt.Errorf("index %q holds corpus %q, not %q", name, ci.corpus, corpus)
	}
	return ci, nil
}

func (b *Bleve) corpusIndex(corpus core.Corpus) (*corpusIndex, error) {
	return b.lookup(b.names[corpus], corpus)
}

func (b *Bleve) IndexKnowledge(ctx context.Context, items ...core.KnowledgeItem) error {
	ci, err := b.corpusIndex(core.CorpusKnowledge)
	if err != nil {
		return err
	}
	return indexBatch(ci.index, knowledgeDocs(items))
}

func (b *Bleve) IndexUnanswered(ctx context.Context, questions ...core.UnansweredQuestion) error {
	ci, err := b.corpusIndex(core.CorpusUnanswered)
	if err != nil {
		return err
	}
	return indexBatch(ci.index, unansweredDocs(questions))
}

func (b *Bleve) Remove(ctx context.Context, corpus core.Corpus, id string) error {
	ci, err := b.corpusIndex(corpus)
	if err != nil {
		return err
	}
	if err := ci.index.Delete(id); err != nil {
		return fmt.Errorf("failed to remove %s from %s index: %w", id, corpus, err)
	}
	return nil
}

// Reindex swaps both indexes for fresh ones built from the given records.
func (b *Bleve) Reindex(ctx context.Context, items []core.KnowledgeItem, questions []core.UnansweredQuestion) error {
	fresh := make(map[string]*corpusIndex, len(b.names))
	docs := map[core.Corpus]map[string]map[string]any{
		core.CorpusKnowledge:  knowledgeDocs(items),
		core.CorpusUnanswered: unansweredDocs(questions),
	}

	for corpus, name := range b.names {
		idx, err := bleve.NewMemOnly(newMapping(corpus))
		if err != nil {
			closeAll(fresh)
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
		fresh[name] = &corpusIndex{corpus: corpus, index: idx}
		if err := indexBatch(idx, docs[corpus]); err != nil {
			closeAll(fresh)
			return err
		}
	}

	b.mu.Lock()
	old := b.indexes
	b.indexes = fresh
	b.mu.Unlock()
	closeAll(old)

	log.FromCtx(ctx).Info().
		Int("knowledge", len(items)).
		Int("unanswered", len(questions)).
		Msg("search indexes rebuilt")
	return nil
}

// DocCounts reports the number of documents per index name.
func (b *Bleve) DocCounts() map[string]uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]uint64, len(b.indexes))
	for name, ci := range b.indexes {
		n, err := ci.index.DocCount()
		if err == nil {
			out[name] = n
		}
	}
	return out
}

func (b *Bleve) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	closeAll(b.indexes)
	b.indexes = map[string]*corpusIndex{}
	return nil
}

func indexBatch(idx bleve.Index, docs map[string]map[string]any) error {
	if len(docs) == 0 {
		return nil
	}
	batch := idx.NewBatch()
	for id, doc := range docs {
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("failed to index %s: %w", id, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply index batch: %w", err)
	}
	return nil
}

func knowledgeDocs(items []core.KnowledgeItem) map[string]map[string]any {
	docs := make(map[string]map[string]any, len(items))
	for _, it := range items {
		docs[it.ID] = map[string]any{
			fieldQuestion:   it.Question,
			fieldAnswer:     it.Answer,
			fieldReferences: it.References,
			fieldLanguage:   it.Language,
		}
	}
	return docs
}

func unansweredDocs(questions []core.UnansweredQuestion) map[string]map[string]any {
	docs := make(map[string]map[string]any, len(questions))
	for _, q := range questions {
		docs[q.ID] = map[string]any{fieldQuestion: q.Question}
	}
	return docs
}

func closeAll(indexes map[string]*corpusIndex) {
	for _, ci := range indexes {
		_ = ci.index.Close()
	}
}
