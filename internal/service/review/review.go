package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/faqbot/internal/core"
)

const (
	MinLogHours = 1
	MaxLogHours = 168
)

// Service lets curators browse chat logs and flag turns for review.
type Service struct {
	logs    core.ChatLogRepository
	reviews core.ReviewRepository
	now     func() time.Time
}

func NewService(logs core.ChatLogRepository, reviews core.ReviewRepository) *Service {
	return &Service{logs: logs, reviews: reviews, now: time.Now}
}

// ChatLogs returns every log, or only those from the last hours when hours is set.
func (s *Service) ChatLogs(ctx context.Context, hours *int) ([]core.ChatLogEntry, error) {
	if hours == nil {
		return s.logs.ListChatLogs(ctx, nil)
	}
	if *hours < MinLogHours || *hours > MaxLogHours {
		return nil, fmt.Errorf("%w: hours must be between %d and %d", core.ErrInvalidInput, MinLogHours, MaxLogHours)
	}
	since := s.now().Add(-time.Duration(*hours) * time.Hour)
	return s.logs.ListChatLogs(ctx, &since)
}

// RateChat copies a logged turn into the review queue.
func (s *Service) RateChat(ctx context.Context, logID string) (core.ReviewEntry, error) {
	entry, err := s.logs.GetChatLog(ctx, logID)
	if err != nil {
		return core.ReviewEntry{}, err
	}

	r := core.ReviewEntry{
		ID:          uuid.NewString(),
		SourceLogID: entry.ID,
		Question:    entry.Question,
		Answer:      entry.Answer,
		Timestamp:   s.now().UTC(),
	}
	if err := s.reviews.AddReview(ctx, r); err != nil {
		return core.ReviewEntry{}, err
	}
	return r, nil
}

func (s *Service) Reviews(ctx context.Context) ([]core.ReviewEntry, error) {
	return s.reviews.ListReviews(ctx)
}

func (s *Service) DeleteReview(ctx context.Context, id string) error {
	return s.reviews.DeleteReview(ctx, id)
}

func (s *Service) DeleteChatLog(ctx context.Context, id string) error {
	return s.logs.DeleteChatLog(ctx, id)
}
