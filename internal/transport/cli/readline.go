package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/faqbot/internal/config"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/chat"
	"github.com/sandevgo/faqbot/pkg/log"
)

const defaultChatKey = "cli-local"

type ChatHandler interface {
	HandleTurn(ctx context.Context, question, sessionID string) (chat.Result, error)
}

// ReadLine is an interactive terminal chat against the same pipeline the bots use.
type ReadLine struct {
	handler  ChatHandler
	router   core.CmdRouter
	bindings *chat.Bindings
	rl       *readline.Instance
}

func NewReadLine(cfg *config.AppConfig, handler ChatHandler, router core.CmdRouter, bindings *chat.Bindings) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "? ",
		HistoryFile:     filepath.Join(cfg.GetRuntimePath(), "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		handler:  handler,
		router:   router,
		bindings: bindings,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("terminal chat started, type 'exit' to quit")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if out := r.handle(ctx, line); out != "" {
			fmt.Fprintln(r.rl.Stdout(), out)
		}
	}
}

func (r *ReadLine) handle(ctx context.Context, line string) string {
	if r.router != nil {
		if out, handled := r.router.Execute(ctx, defaultChatKey, line); handled {
			return out
		}
	}

	res, err := r.handler.HandleTurn(ctx, line, r.bindings.Get(defaultChatKey))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		return fmt.Sprintf("Error: %v", err)
	}
	r.bindings.Set(defaultChatKey, res.SessionID)

	if res.MatchedItemID != nil {
		return fmt.Sprintf("%s\n\033[38;5;240m[knowledge base #%s]\033[0m", res.Answer, *res.MatchedItemID)
	}
	return res.Answer
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
