package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type turn struct {
	question, sessionID string
}

type fakeHandler struct {
	turns []turn
	res   chat.Result
	err   error
}

func (f *fakeHandler) HandleTurn(ctx context.Context, question, sessionID string) (chat.Result, error) {
	f.turns = append(f.turns, turn{question, sessionID})
	return f.res, f.err
}

type fakeRouter struct{}

func (fakeRouter) Execute(ctx context.Context, key, input string) (string, bool) {
	if input == "/ping" {
		return "pong " + key, true
	}
	return "", false
}

func (fakeRouter) ListCommands() []core.Command { return nil }

func newTestReplier(t *testing.T, h *fakeHandler) (*replier, *chat.Bindings) {
	t.Helper()
	bindings, err := chat.NewBindings(8)
	require.NoError(t, err)
	return &replier{handler: h, router: fakeRouter{}, bindings: bindings}, bindings
}

func TestReply_BindsSession(t *testing.T) {
	h := &fakeHandler{res: chat.Result{SessionID: "s1", Answer: "hello"}}
	r, bindings := newTestReplier(t, h)

	assert.Equal(t, "hello", r.reply(context.Background(), "telegram-7", "hi"))
	assert.Equal(t, "s1", bindings.Get("telegram-7"))

	r.reply(context.Background(), "telegram-7", "again")
	require.Len(t, h.turns, 2)
	assert.Equal(t, "", h.turns[0].sessionID)
	assert.Equal(t, "s1", h.turns[1].sessionID)
}

func TestReply_CommandsBypassChat(t *testing.T) {
	h := &fakeHandler{}
	r, _ := newTestReplier(t, h)

	assert.Equal(t, "pong telegram-7", r.reply(context.Background(), "telegram-7", "/ping"))
	assert.Empty(t, h.turns)
}

func TestReply_BackendFailure(t *testing.T) {
	h := &fakeHandler{err: core.Unavailable("generation", errors.New("timeout"))}
	r, bindings := newTestReplier(t, h)
	bindings.Set("telegram-7", "s1")

	assert.Equal(t, unavailableReply, r.reply(context.Background(), "telegram-7", "hi"))
	assert.Equal(t, "s1", bindings.Get("telegram-7"))
}

func TestReply_EmptyInputIsIgnored(t *testing.T) {
	h := &fakeHandler{err: core.ErrInvalidInput}
	r, _ := newTestReplier(t, h)

	assert.Empty(t, r.reply(context.Background(), "telegram-7", " "))
}
