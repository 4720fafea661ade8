package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandler struct {
	sessions []string
	res      chat.Result
	err      error
}

func (f *fakeHandler) HandleTurn(ctx context.Context, question, sessionID string) (chat.Result, error) {
	f.sessions = append(f.sessions, sessionID)
	return f.res, f.err
}

func newTestReadLine(t *testing.T, h *fakeHandler) *ReadLine {
	t.Helper()
	bindings, err := chat.NewBindings(4)
	require.NoError(t, err)
	return &ReadLine{handler: h, bindings: bindings}
}

func TestHandle_KeepsSession(t *testing.T) {
	h := &fakeHandler{res: chat.Result{SessionID: "s1", Answer: "hi"}}
	r := newTestReadLine(t, h)

	assert.Equal(t, "hi", r.handle(context.Background(), "hello"))
	r.handle(context.Background(), "again")
	assert.Equal(t, []string{"", "s1"}, h.sessions)
}

func TestHandle_MarksKnowledgeAnswers(t *testing.T) {
	id := "42"
	h := &fakeHandler{res: chat.Result{SessionID: "s1", Answer: "curated", MatchedItemID: &id}}
	r := newTestReadLine(t, h)

	out := r.handle(context.Background(), "q")
	assert.Contains(t, out, "curated")
	assert.Contains(t, out, "knowledge base #42")
}

func TestHandle_Error(t *testing.T) {
	h := &fakeHandler{err: core.Unavailable("generation", errors.New("rate limited"))}
	r := newTestReadLine(t, h)

	out := r.handle(context.Background(), "q")
	assert.Contains(t, out, "rate limited")
}
