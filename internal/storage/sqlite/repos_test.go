package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewKnowledgeRepo(newTestDB(t))
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := repo.AddItems(ctx,
		core.KnowledgeItem{ID: "en-1", Question: "How do I reset my password?", Answer: "Use the reset link.", References: []string{"hu-1"}, Language: "en", CreatedAt: now},
		core.KnowledgeItem{ID: "hu-1", Question: "Hogyan állíthatom vissza a jelszavam?", Answer: "Használd a linket.", Language: "hu", CreatedAt: now.Add(time.Second)},
	)
	require.NoError(t, err)

	item, err := repo.GetItem(ctx, "en-1")
	require.NoError(t, err)
	assert.Equal(t, "Use the reset link.", item.Answer)
	assert.Equal(t, []string{"hu-1"}, item.References)
	assert.True(t, item.CreatedAt.Equal(now))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "en-1", items[0].ID)
	assert.Empty(t, items[1].References)

	require.NoError(t, repo.DeleteItem(ctx, "en-1"))
	assert.ErrorIs(t, repo.DeleteItem(ctx, "en-1"), core.ErrNotFound)

	_, err = repo.GetItem(ctx, "en-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestKnowledgeRepo_AddItemsIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewKnowledgeRepo(newTestDB(t))

	err := repo.AddItems(ctx,
		core.KnowledgeItem{ID: "dup", Question: "q", Answer: "a", CreatedAt: time.Now()},
		core.KnowledgeItem{ID: "dup", Question: "q2", Answer: "a2", CreatedAt: time.Now()},
	)
	require.Error(t, err)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUnansweredRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewUnansweredRepo(newTestDB(t))

	require.NoError(t, repo.AddUnanswered(ctx, core.UnansweredQuestion{ID: "u1", Question: "Do you ship to Mars?", FirstSeenAt: time.Now()}))

	list, err := repo.ListUnanswered(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Do you ship to Mars?", list[0].Question)

	require.NoError(t, repo.DeleteUnanswered(ctx, "u1"))
	assert.ErrorIs(t, repo.DeleteUnanswered(ctx, "u1"), core.ErrNotFound)
}

func TestChatLogRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewChatLogRepo(newTestDB(t))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base.Add(-48 * time.Hour) }
	oldID, err := repo.AppendChatLog(ctx, "old question", "old answer", "s1", nil)
	require.NoError(t, err)

	matched := "item-7"
	repo.now = func() time.Time { return base }
	newID, err := repo.AppendChatLog(ctx, "new question", "new answer", "s2", &matched)
	require.NoError(t, err)
	assert.NotEqual(t, oldID, newID)

	entry, err := repo.GetChatLog(ctx, newID)
	require.NoError(t, err)
	require.NotNil(t, entry.MatchedItemID)
	assert.Equal(t, "item-7", *entry.MatchedItemID)
	assert.Equal(t, "s2", entry.SessionID)

	all, err := repo.ListChatLogs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Nil(t, all[0].MatchedItemID)

	since := base.Add(-24 * time.Hour)
	recent, err := repo.ListChatLogs(ctx, &since)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, newID, recent[0].ID)

	require.NoError(t, repo.DeleteChatLog(ctx, oldID))
	_, err = repo.GetChatLog(ctx, oldID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestReviewRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepo(newTestDB(t))

	entry := core.ReviewEntry{ID: "r1", SourceLogID: "log-1", Question: "q", Answer: "a", Timestamp: time.Now()}
	require.NoError(t, repo.AddReview(ctx, entry))

	list, err := repo.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "log-1", list[0].SourceLogID)

	require.NoError(t, repo.DeleteReview(ctx, "r1"))
	assert.ErrorIs(t, repo.DeleteReview(ctx, "r1"), core.ErrNotFound)
}
