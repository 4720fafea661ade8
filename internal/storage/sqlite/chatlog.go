package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/faqbot/internal/core"
)

type ChatLogRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewChatLogRepo(db *sql.DB) *ChatLogRepo {
	return &ChatLogRepo{db: db, now: time.Now}
}

// AppendChatLog records a completed turn and returns the new log id.
func (r *ChatLogRepo) AppendChatLog(ctx context.Context, question, answer, sessionID string, matchedItemID *string) (string, error) {
	id := uuid.NewString()

	var matched sql.NullString
	if matchedItemID != nil {
		matched = sql.NullString{String: *matchedItemID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_logs (id, question, answer, session_id, matched_item_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, question, answer, sessionID, matched, r.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert chat log: %w", err)
	}
	return id, nil
}

func (r *ChatLogRepo) GetChatLog(ctx context.Context, id string) (core.ChatLogEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question, answer, session_id, matched_item_id, created_at FROM chat_logs WHERE id = ?`, id)

	entry, err := scanChatLog(row)
	if err != nil {
		return core.ChatLogEntry{}, notFound(err, "chat log", id)
	}
	return entry, nil
}

// ListChatLogs returns logs oldest first, optionally only those at or after since.
func (r *ChatLogRepo) ListChatLogs(ctx context.Context, since *time.Time) ([]core.ChatLogEntry, error) {
	query := `SELECT id, question, answer, session_id, matched_item_id, created_at FROM chat_logs`
	var args []any
	if since != nil {
		query += ` WHERE created_at >= ?`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer rows.Close()

	out := make([]core.ChatLogEntry, 0)
	for rows.Next() {
		entry, err := scanChatLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat log: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *ChatLogRepo) DeleteChatLog(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "chat_logs", id)
}

func scanChatLog(s scanner) (core.ChatLogEntry, error) {
	var e core.ChatLogEntry
	var matched sql.NullString
	if err := s.Scan(&e.ID, &e.Question, &e.Answer, &e.SessionID, &matched, &e.Timestamp); err != nil {
		return core.ChatLogEntry{}, err
	}
	if matched.Valid {
		e.MatchedItemID = &matched.String
	}
	return e, nil
}
