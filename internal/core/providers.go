package core

import "context"

type SearchBackend interface {
	// SearchTopCandidate returns nil without error when nothing qualifies.
	SearchTopCandidate(ctx context.Context, q SearchQuery) (*Candidate, error)
}

// SearchIndexer keeps a corpus index in sync with stored records.
type SearchIndexer interface {
	IndexKnowledge(ctx context.Context, items ...KnowledgeItem) error
	IndexUnanswered(ctx context.Context, questions ...UnansweredQuestion) error
	Remove(ctx context.Context, corpus Corpus, id string) error
}

type GenerativeBackend interface {
	GenerateCompletion(ctx context.Context, systemPrompt string, history []Message, human string) (string, error)
}

// UnansweredSink persists a question no knowledge item could answer.
type UnansweredSink interface {
	InsertUnanswered(ctx context.Context, question string) (string, error)
}
