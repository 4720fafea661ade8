package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/faqbot/internal/core"
)

// Echo is an offline backend for local runs and demos. It repeats the question.
type Echo struct{}

func NewEcho() *Echo {
	return &Echo{}
}

func (Echo) GenerateCompletion(ctx context.Context, systemPrompt string, history []core.Message, human string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", core.Unavailable("echo completion", err)
	}
	return fmt.Sprintf("You said: %s (turn %d)", human, len(history)/2+1), nil
}
