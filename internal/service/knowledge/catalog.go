package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/pkg/log"
)

// Index is the search side of the catalog.
type Index interface {
	core.SearchIndexer
	Reindex(ctx context.Context, items []core.KnowledgeItem, questions []core.UnansweredQuestion) error
}

// MultilingualInput carries an item in up to three languages. At least one
// language must have both question and answer.
type MultilingualInput struct {
	QuestionEN string
	AnswerEN   string
	QuestionHU string
	AnswerHU   string
	QuestionDE string
	AnswerDE   string
	References []string
}

func (in MultilingualInput) pair(lang string) (string, string) {
	switch lang {
	case core.LangEnglish:
		return in.QuestionEN, in.AnswerEN
	case core.LangHungarian:
		return in.QuestionHU, in.AnswerHU
	case core.LangGerman:
		return in.QuestionDE, in.AnswerDE
	}
	return "", ""
}

// Catalog owns the curated and captured corpora: the durable records and their search index.
type Catalog struct {
	items      core.KnowledgeRepository
	unanswered core.UnansweredRepository
	index      Index
	translator *Translator
	newID      func() string
	now        func() time.Time
}

func NewCatalog(
	items core.KnowledgeRepository,
	unanswered core.UnansweredRepository,
	index Index,
	translator *Translator,
) *Catalog {
	return &Catalog{
		items:      items,
		unanswered: unanswered,
		index:      index,
		translator: translator,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// InsertUnanswered stores and indexes a captured question so paraphrases collapse onto it.
func (c *Catalog) InsertUnanswered(ctx context.Context, question string) (string, error) {
	q := core.UnansweredQuestion{
		ID:          c.newID(),
		Question:    question,
		FirstSeenAt: c.now().UTC(),
	}
	if err := c.unanswered.AddUnanswered(ctx, q); err != nil {
		return "", err
	}
	if err := c.index.IndexUnanswered(ctx, q); err != nil {
		if delErr := c.unanswered.DeleteUnanswered(ctx, q.ID); delErr != nil {
			log.FromCtx(ctx).Error().Err(delErr).Str("id", q.ID).Msg("failed to roll back unindexed unanswered question")
		}
		return "", fmt.Errorf("failed to index unanswered question: %w", err)
	}
	return q.ID, nil
}

// AddMultilingual translates missing variants from the first complete pair
// (en, hu, de order) and stores one item per language. It returns ids by language.
func (c *Catalog) AddMultilingual(ctx context.Context, in MultilingualInput) (map[string]string, error) {
	source := ""
	for _, lang := range core.SupportedLanguages {
		q, a := in.pair(lang)
		if strings.TrimSpace(q) != "" && strings.TrimSpace(a) != "" {
			source = lang
			break
		}
	}
	if source == "" {
		return nil, fmt.Errorf("%w: at least one pair of question and answer must be provided in the same language", core.ErrInvalidInput)
	}
	if c.translator == nil {
		return nil, fmt.Errorf("translation is not configured")
	}

	srcQ, srcA := in.pair(source)
	now := c.now().UTC()
	items := make([]core.KnowledgeItem, 0, len(core.SupportedLanguages))
	for _, lang := range core.SupportedLanguages {
		q, a := in.pair(lang)
		var err error
		if strings.TrimSpace(q) == "" {
			if q, err = c.translator.Translate(ctx, srcQ, source, lang); err != nil {
				return nil, err
			}
		}
		if strings.TrimSpace(a) == "" {
			if a, err = c.translator.Translate(ctx, srcA, source, lang); err != nil {
				return nil, err
			}
		}
		items = append(items, core.KnowledgeItem{
			ID:         c.newID(),
			Question:   q,
			Answer:     a,
			References: in.References,
			Language:   lang,
			CreatedAt:  now,
		})
	}

	if err := c.addItems(ctx, items); err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(items))
	for _, it := range items {
		ids[it.Language] = it.ID
	}
	log.FromCtx(ctx).Info().Str("source_lang", source).Int("items", len(items)).Msg("added multilingual question")
	return ids, nil
}

// ImportItems bulk loads items, filling in missing ids and timestamps.
func (c *Catalog) ImportItems(ctx context.Context, items []core.KnowledgeItem) (int, error) {
	now := c.now().UTC()
	prepared := make([]core.KnowledgeItem, 0, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Question) == "" || strings.TrimSpace(it.Answer) == "" {
			return 0, fmt.Errorf("%w: item %d needs both question and answer", core.ErrInvalidInput, i)
		}
		if it.ID == "" {
			it.ID = c.newID()
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		prepared = append(prepared, it)
	}

	if err := c.addItems(ctx, prepared); err != nil {
		return 0, err
	}
	return len(prepared), nil
}

func (c *Catalog) addItems(ctx context.Context, items []core.KnowledgeItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := c.items.AddItems(ctx, items...); err != nil {
		return err
	}
	if err := c.index.IndexKnowledge(ctx, items...); err != nil {
		return fmt.Errorf("failed to index knowledge items: %w", err)
	}
	return nil
}

func (c *Catalog) DeleteItem(ctx context.Context, id string) error {
	if err := c.items.DeleteItem(ctx, id); err != nil {
		return err
	}
	c.unindex(ctx, core.CorpusKnowledge, id)
	return nil
}

func (c *Catalog) DeleteUnanswered(ctx context.Context, id string) error {
	if err := c.unanswered.DeleteUnanswered(ctx, id); err != nil {
		return err
	}
	c.unindex(ctx, core.CorpusUnanswered, id)
	return nil
}

func (c *Catalog) unindex(ctx context.Context, corpus core.Corpus, id string) {
	if err := c.index.Remove(ctx, corpus, id); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("corpus", string(corpus)).Str("id", id).Msg("failed to drop deleted record from index")
	}
}

func (c *Catalog) ListItems(ctx context.Context) ([]core.KnowledgeItem, error) {
	return c.items.ListItems(ctx)
}

func (c *Catalog) ListUnanswered(ctx context.Context) ([]core.UnansweredQuestion, error) {
	return c.unanswered.ListUnanswered(ctx)
}

// Reindex rebuilds the search index from the durable store.
func (c *Catalog) Reindex(ctx context.Context) error {
	items, err := c.items.ListItems(ctx)
	if err != nil {
		return err
	}
	questions, err := c.unanswered.ListUnanswered(ctx)
	if err != nil {
		return err
	}
	return c.index.Reindex(ctx, items, questions)
}
