package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
)

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) AddReview(ctx context.Context, entry core.ReviewEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO review_entries (id, source_log_id, question, answer, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.SourceLogID, entry.Question, entry.Answer, entry.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert review entry: %w", err)
	}
	return nil
}

func (r *ReviewRepo) DeleteReview(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "review_entries", id)
}

func (r *ReviewRepo) ListReviews(ctx context.Context) ([]core.ReviewEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_log_id, question, answer, created_at FROM review_entries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query review entries: %w", err)
	}
	defer rows.Close()

	out := make([]core.ReviewEntry, 0)
	for rows.Next() {
		var e core.ReviewEntry
		if err := rows.Scan(&e.ID, &e.SourceLogID, &e.Question, &e.Answer, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan review entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
