package core

import "context"

// CmdRouter dispatches slash commands typed into a chat transport.
// key identifies the transport conversation (a Telegram chat, the local CLI),
// not a memory session; commands resolve the session through their bindings.
type CmdRouter interface {
	// Execute reports handled=false when input is not a command.
	Execute(ctx context.Context, key, input string) (reply string, handled bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, key string, args []string) (string, error)
}
