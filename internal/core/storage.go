package core

import (
	"context"
	"time"
)

type KnowledgeRepository interface {
	AddItems(ctx context.Context, items ...KnowledgeItem) error
	GetItem(ctx context.Context, id string) (KnowledgeItem, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]KnowledgeItem, error)
}

type UnansweredRepository interface {
	AddUnanswered(ctx context.Context, q UnansweredQuestion) error
	DeleteUnanswered(ctx context.Context, id string) error
	ListUnanswered(ctx context.Context) ([]UnansweredQuestion, error)
}

// ChatLog is the append-only record of completed turns.
type ChatLog interface {
	AppendChatLog(ctx context.Context, question, answer, sessionID string, matchedItemID *string) (string, error)
}

type ChatLogRepository interface {
	ChatLog
	GetChatLog(ctx context.Context, id string) (ChatLogEntry, error)
	ListChatLogs(ctx context.Context, since *time.Time) ([]ChatLogEntry, error)
	DeleteChatLog(ctx context.Context, id string) error
}

type ReviewRepository interface {
	AddReview(ctx context.Context, entry ReviewEntry) error
	DeleteReview(ctx context.Context, id string) error
	ListReviews(ctx context.Context) ([]ReviewEntry, error)
}
