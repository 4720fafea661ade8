package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
)

type UnansweredRepo struct {
	db *sql.DB
}

func NewUnansweredRepo(db *sql.DB) *UnansweredRepo {
	return &UnansweredRepo{db: db}
}

func (r *UnansweredRepo) AddUnanswered(ctx context.Context, q core.UnansweredQuestion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO unanswered_questions (id, question, first_seen_at) VALUES (?, ?, ?)`,
		q.ID, q.Question, q.FirstSeenAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert unanswered question: %w", err)
	}
	return nil
}

func (r *UnansweredRepo) DeleteUnanswered(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "unanswered_questions", id)
}

func (r *UnansweredRepo) ListUnanswered(ctx context.Context) ([]core.UnansweredQuestion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, first_seen_at FROM unanswered_questions ORDER BY first_seen_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unanswered questions: %w", err)
	}
	defer rows.Close()

	out := make([]core.UnansweredQuestion, 0)
	for rows.Next() {
		var q core.UnansweredQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.FirstSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan unanswered question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
