package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/chat"
)

type Conversations interface {
	SessionHistory(sessionID string) ([]core.Message, error)
	ForgetSession(sessionID string) bool
}

type ResetCommand struct {
	conv      Conversations
	bindings  *chat.Bindings
	formatter *ResponseFormatter
}

func NewResetCommand(conv Conversations, bindings *chat.Bindings) *ResetCommand {
	return &ResetCommand{
		conv:      conv,
		bindings:  bindings,
		formatter: NewResponseFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "new"
}

func (c *ResetCommand) Description() string {
	return "Forget the current conversation and start over"
}

func (c *ResetCommand) Execute(ctx context.Context, key string, args []string) (string, error) {
	if sid, ok := c.bindings.Reset(key); ok {
		c.conv.ForgetSession(sid)
	}
	return c.formatter.Success("Started a new conversation"), nil
}

type HistoryCommand struct {
	conv      Conversations
	bindings  *chat.Bindings
	formatter *ResponseFormatter
}

func NewHistoryCommand(conv Conversations, bindings *chat.Bindings) *HistoryCommand {
	return &HistoryCommand{
		conv:      conv,
		bindings:  bindings,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show what I remember of this conversation"
}

func (c *HistoryCommand) Execute(ctx context.Context, key string, args []string) (string, error) {
	sid := c.bindings.Get(key)
	if sid == "" {
		return c.formatter.Info("Nothing remembered yet"), nil
	}

	history, err := c.conv.SessionHistory(sid)
	if errors.Is(err, core.ErrSessionNotFound) {
		return c.formatter.Info("This conversation has expired"), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}
	if len(history) == 0 {
		return c.formatter.Info("Nothing remembered yet"), nil
	}

	items := make([]string, 0, len(history))
	for _, msg := range history {
		label := "You"
		if msg.Role == core.RoleAssistant {
			label = "Bot"
		}
		items = append(items, fmt.Sprintf("**%s**: %s", label, msg.Content))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Last %d messages", len(history))),
		c.formatter.List(items),
	), nil
}
