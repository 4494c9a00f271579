// Package watcher implements the group-scraping bot. It sits silently in the
// monitored groups, feeds every message through the ingest pipeline and only
// ever answers commands in private chats.
package watcher

import (
	"context"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/savdohub/savdobot/core/telegram"
	"github.com/savdohub/savdobot/core/telegram/commands"
	"github.com/savdohub/savdobot/core/telegram/helpers"
	"github.com/savdohub/savdobot/core/telegram/middleware"
	"github.com/savdohub/savdobot/internal/ingest"
)

// StatsService supplies the transaction totals for /stats.
type StatsService interface {
	Totals(ctx context.Context, now time.Time) (total, last24h int, err error)
}

// Bot wires the ingest pipeline and stats commands to Telegram.
type Bot struct {
	pipeline *ingest.Pipeline
	stats    StatsService
	now      func() time.Time
}

// NewBot builds the watcher bot.
func NewBot(pipeline *ingest.Pipeline, stats StatsService) *Bot {
	return &Bot{pipeline: pipeline, stats: stats, now: time.Now}
}

func (b *Bot) start(c tele.Context) error {
	return helpers.SendText(c, msgStart)
}

func (b *Bot) help(c tele.Context) error {
	return helpers.SendText(c, msgHelp)
}

func (b *Bot) showStats(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	total, last24h, err := b.stats.Totals(ctx, b.now())
	if err != nil {
		return err
	}
	return helpers.SendText(c, statsMessage(total, last24h, b.pipeline.Counters()))
}

func (b *Bot) processOld(c tele.Context) error {
	return helpers.SendText(c, msgProcessOld)
}

// getChatID answers in groups too, so operators can collect IDs for the
// allow-list.
func (b *Bot) getChatID(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	return helpers.SendText(c, chatInfo(chat.Title, chat.ID, string(chat.Type)))
}

// ingestMessage feeds one group message into the pipeline. The bot stays
// silent regardless of the outcome.
func (b *Bot) ingestMessage(c tele.Context) error {
	msg := c.Message()
	chat := c.Chat()
	if msg == nil || chat == nil {
		return nil
	}
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	ctx := helpers.BuildContext(c)
	_, err := b.pipeline.Process(ctx, ingest.Message{
		MessageID: msg.ID,
		ChatID:    chat.ID,
		ChatType:  string(chat.Type),
		Text:      text,
	})
	return err
}

// Register wires the watcher commands into the registry.
func (b *Bot) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.start,
		Description: "Botni ishga tushirish",
		PrivateOnly: true,
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     b.showStats,
		Description: "Tranzaksiyalar statistikasi",
		PrivateOnly: true,
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     b.help,
		Description: "Yordam",
		PrivateOnly: true,
	})
	reg.RegisterCommand("/process_old", commands.Command{
		Handler:     b.processOld,
		Description: "Eski xabarlarni qayta ishlash",
		PrivateOnly: true,
		Hidden:      true,
	})
	reg.RegisterCommand("/get_chat_id", commands.Command{
		Handler:     b.getChatID,
		Description: "Joriy chat ID ni olish",
	})
}

// Routes returns the group-scraping routes. Edited messages take the same
// path; ingestion stays idempotent by source message.
func (b *Bot) Routes() []tg.Route {
	h := middleware.Recover(middleware.Logging(b.ingestMessage))
	return []tg.Route{
		{Endpoint: tele.OnText, Handler: h},
		{Endpoint: tele.OnEdited, Handler: h},
		{Endpoint: tele.OnPhoto, Handler: h},
		{Endpoint: tele.OnDocument, Handler: h},
	}
}
