package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
)

type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// AddItems inserts all items in one transaction.
func (r *KnowledgeRepo) AddItems(ctx context.Context, items ...core.KnowledgeItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO knowledge_items (id, question, answer, refs, language, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	for _, item := range items {
		refs, err := json.Marshal(nonNil(item.References))
		if err != nil {
			return fmt.Errorf("failed to marshal references: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.Question, item.Answer, string(refs), item.Language, item.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert knowledge item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *KnowledgeRepo) GetItem(ctx context.Context, id string) (core.KnowledgeItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question, answer, refs, language, created_at FROM knowledge_items WHERE id = ?`, id)

	item, err := scanKnowledge(row)
	if err != nil {
		return core.KnowledgeItem{}, notFound(err, "knowledge item", id)
	}
	return item, nil
}

func (r *KnowledgeRepo) DeleteItem(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "knowledge_items", id)
}

func (r *KnowledgeRepo) ListItems(ctx context.Context) ([]core.KnowledgeItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, answer, refs, language, created_at FROM knowledge_items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge items: %w", err)
	}
	defer rows.Close()

	items := make([]core.KnowledgeItem, 0)
	for rows.Next() {
		item, err := scanKnowledge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan knowledge item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanKnowledge(s scanner) (core.KnowledgeItem, error) {
	var item core.KnowledgeItem
	var refs string
	if err := s.Scan(&item.ID, &item.Question, &item.Answer, &refs, &item.Language, &item.CreatedAt); err != nil {
		return core.KnowledgeItem{}, err
	}
	if refs != "" {
		if err := json.Unmarshal([]byte(refs), &item.References); err != nil {
			return core.KnowledgeItem{}, fmt.Errorf("failed to unmarshal references: %w", err)
		}
	}
	return item, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
