package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/savdohub/savdobot/core/config"
	"github.com/savdohub/savdobot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain for bots.
func DefaultMiddlewares(cfg *coreconfig.Config, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.Recover},
	}

	if cfg != nil {
		if interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond; interval > 0 {
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use: middleware.RateLimit(middleware.RateLimitOptions{
					Interval:  interval,
					OnLimited: onLimited,
				}),
			})
		}
	}

	mws = append(mws, Middleware{Name: "logging", Use: middleware.Logging})
	return mws
}
