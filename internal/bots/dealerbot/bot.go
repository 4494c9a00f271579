package dealerbot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	tg "github.com/savdohub/savdobot/core/telegram"
	"github.com/savdohub/savdobot/core/telegram/commands"
	"github.com/savdohub/savdobot/core/telegram/helpers"
	"github.com/savdohub/savdobot/internal/bots/dialog"
)

// Bot adapts the dealer engine to the Telegram transport.
type Bot struct {
	engine *Engine
}

// NewBot wraps the engine.
func NewBot(engine *Engine) *Bot {
	return &Bot{engine: engine}
}

// InProgress reports whether the sender has an active dialog.
func (b *Bot) InProgress(userID int64) bool {
	return b.engine.InProgress(context.Background(), userID)
}

// Handle feeds one text or contact update into the engine.
func (b *Bot) Handle(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	in := dialog.Input{Text: c.Text()}
	if msg := c.Message(); msg != nil && msg.Contact != nil {
		in.ContactPhone = msg.Contact.PhoneNumber
	}
	replies, err := b.engine.Handle(ctx, c.Chat().ID, c.Sender().ID, in)
	if err != nil {
		// The user still gets a reply; the router logs the error.
		_ = dialog.Send(c, b.engine.Fail(ctx, c.Sender().ID))
		return err
	}
	return dialog.Send(c, replies)
}

func (b *Bot) start(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	replies, err := b.engine.Start(ctx, c.Chat().ID, c.Sender().ID)
	if err != nil {
		_ = dialog.Send(c, b.engine.Fail(ctx, c.Sender().ID))
		return err
	}
	return dialog.Send(c, replies)
}

// Register wires the dealer commands into the registry.
func (b *Bot) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.start,
		Description: "Ro'yxatdan o'tish va asosiy menyu",
		PrivateOnly: true,
	})
}
