package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/faqbot/internal/config"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/chat"
	"github.com/sandevgo/faqbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"

	unavailableReply = "Sorry, I can't answer right now. Please try again in a moment."
)

type ChatHandler interface {
	HandleTurn(ctx context.Context, question, sessionID string) (chat.Result, error)
}

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	replier *replier
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	handler ChatHandler,
	router core.CmdRouter,
	bindings *chat.Bindings,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		replier: &replier{handler: handler, router: router, bindings: bindings},
		ownerID: cfg.OwnerID,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	if bot.ownerID != 0 {
		b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
			return func(c tele.Context) error {
				if c.Sender() == nil || c.Sender().ID != bot.ownerID {
					return nil
				}
				return next(c)
			}
		})
	}

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Int64("owner_id", b.ownerID).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	key := fmt.Sprintf("telegram-%d", c.Chat().ID)
	ctx = log.WithFields(ctx, "chat_key", key)

	_ = c.Notify(tele.Typing)

	reply := b.replier.reply(ctx, key, c.Text())
	if reply == "" {
		return nil
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

// replier turns one incoming text into the Markdown reply for a chat.
type replier struct {
	handler  ChatHandler
	router   core.CmdRouter
	bindings *chat.Bindings
}

func (r *replier) reply(ctx context.Context, key, text string) string {
	if r.router != nil {
		if out, handled := r.router.Execute(ctx, key, text); handled {
			return out
		}
	}

	res, err := r.handler.HandleTurn(ctx, text, r.bindings.Get(key))
	if errors.Is(err, core.ErrInvalidInput) {
		return ""
	}
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		return unavailableReply
	}

	r.bindings.Set(key, res.SessionID)
	return res.Answer
}
