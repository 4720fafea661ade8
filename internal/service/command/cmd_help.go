package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
)

type HelpCommand struct {
	name      string
	greeting  string
	list      func() []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(list func() []core.Command) *HelpCommand {
	return &HelpCommand{
		name:      "help",
		list:      list,
		formatter: NewResponseFormatter(),
	}
}

// NewStartCommand answers Telegram's /start with a greeting and the command list.
func NewStartCommand(list func() []core.Command) *HelpCommand {
	return &HelpCommand{
		name:      "start",
		greeting:  fmt.Sprintf("Hi! I'm %s. Ask me anything and I'll check the knowledge base first.", core.AppName),
		list:      list,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return c.name
}

func (c *HelpCommand) Description() string {
	if c.name == "start" {
		return "Say hello"
	}
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, key string, args []string) (string, error) {
	items := make([]string, 0)
	for _, cmd := range c.list() {
		items = append(items, fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description()))
	}

	sections := make([]string, 0, 3)
	if c.greeting != "" {
		sections = append(sections, c.greeting+"\n")
	}
	sections = append(sections, c.formatter.Info("Commands"), c.formatter.List(items))
	return c.formatter.Combine(sections...), nil
}
