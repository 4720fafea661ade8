package review

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *sqlite.ChatLogRepo) {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "review.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logs := sqlite.NewChatLogRepo(db)
	return NewService(logs, sqlite.NewReviewRepo(db)), logs
}

func TestRateChat(t *testing.T) {
	ctx := context.Background()
	svc, logs := newTestService(t)

	logID, err := logs.AppendChatLog(ctx, "Where is my order?", "It ships tomorrow.", "s1", nil)
	require.NoError(t, err)

	r, err := svc.RateChat(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, logID, r.SourceLogID)
	assert.Equal(t, "Where is my order?", r.Question)
	assert.Equal(t, "It ships tomorrow.", r.Answer)

	// the review survives deletion of its source log
	require.NoError(t, svc.DeleteChatLog(ctx, logID))
	reviews, err := svc.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	require.NoError(t, svc.DeleteReview(ctx, r.ID))
	assert.ErrorIs(t, svc.DeleteReview(ctx, r.ID), core.ErrNotFound)
}

func TestRateChat_MissingLog(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RateChat(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestChatLogs_HoursWindow(t *testing.T) {
	ctx := context.Background()
	svc, logs := newTestService(t)

	_, err := logs.AppendChatLog(ctx, "q", "a", "s1", nil)
	require.NoError(t, err)

	all, err := svc.ChatLogs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	one := 1
	recent, err := svc.ChatLogs(ctx, &one)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	for _, bad := range []int{0, 169, -3} {
		h := bad
		_, err := svc.ChatLogs(ctx, &h)
		assert.ErrorIs(t, err, core.ErrInvalidInput, "hours=%d", bad)
	}
}
