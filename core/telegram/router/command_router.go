package router

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/savdohub/savdobot/core/logger"
	tg "github.com/savdohub/savdobot/core/telegram"
	"github.com/savdohub/savdobot/core/telegram/middleware"
)

// CommandRoutes prepares the registry's command handlers as telebot routes,
// wrapped with the shared middleware. Private-only commands are silently
// ignored in group chats so the watcher never chats in the groups it scrapes.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for name, def := range reg.Commands() {
		handlerName := normalizeHandlerName(name)
		inner := def.Handler
		privateOnly := def.PrivateOnly

		h := func(c tele.Context) error {
			start := time.Now()
			if privateOnly {
				if chat := c.Chat(); chat != nil && chat.Type != tele.ChatPrivate {
					logHandlerSummary(c, handlerName, start, "skip", nil,
						slog.String("reason", "private_only"))
					return nil
				}
			}
			return handleWithSummary(c, handlerName, start, func() error {
				return inner(c)
			})
		}
		h = middleware.Logging(h)
		h = middleware.Recover(h)

		routes = append(routes, tg.Route{Endpoint: name, Handler: h})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
