package router

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/savdohub/savdobot/core/telegram"
	"github.com/savdohub/savdobot/core/telegram/callbacks"
	"github.com/savdohub/savdobot/core/telegram/middleware"
)

// CallbackRoute returns a route that answers every callback and dispatches it
// through the registry by its unique key.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key := callbacks.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, func() error {
			return cbHandler(c)
		}, extras...)
	}

	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.Recover(middleware.Logging(handler)),
	}
}
