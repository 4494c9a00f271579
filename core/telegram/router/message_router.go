package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/savdohub/savdobot/core/telegram"
	"github.com/savdohub/savdobot/core/telegram/middleware"
)

// FSM is the conversation engine behind text and contact updates.
type FSM interface {
	// InProgress reports whether the engine wants the next text from this user.
	InProgress(userID int64) bool
	// Handle processes the update according to the user's current state.
	Handle(c tele.Context) error
}

// TextOptions controls fallback behaviour for unmatched text.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds OnText and OnContact routes. Dispatch order: engine first
// when a conversation is in progress, then command lookup by exact text, then
// the registry fallback.
func TextRoutes(engine FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()

		if engine != nil && c.Sender() != nil && engine.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, func() error {
				return engine.Handle(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	contactHandler := func(c tele.Context) error {
		start := time.Now()
		if engine != nil && c.Sender() != nil && engine.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm_contact", start, func() error {
				return engine.Handle(c)
			})
		}
		logHandlerSummary(c, "unexpected_contact", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.Recover(middleware.Logging(textHandler)),
		},
		{
			Endpoint: tele.OnContact,
			Handler:  middleware.Recover(middleware.Logging(contactHandler)),
		},
	}
}
