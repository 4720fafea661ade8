package command

import (
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/chat"
)

// NewRouter builds the chat commands shared by the interactive transports.
func NewRouter(conv Conversations, bindings *chat.Bindings) *Router {
	var r *Router
	list := func() []core.Command { return r.ListCommands() }

	r = New([]core.Command{
		NewStartCommand(list),
		NewHelpCommand(list),
		NewResetCommand(conv, bindings),
		NewHistoryCommand(conv, bindings),
	})
	return r
}
