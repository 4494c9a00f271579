package main

import (
	"github.com/spf13/cobra"

	corecmd "github.com/savdohub/savdobot/core/cmd"
	coretelegram "github.com/savdohub/savdobot/core/telegram"
	"github.com/savdohub/savdobot/core/telegram/router"
	"github.com/savdohub/savdobot/internal/app"
	"github.com/savdohub/savdobot/internal/bots/dealerbot"
	"github.com/savdohub/savdobot/internal/bots/sellerbot"
	"github.com/savdohub/savdobot/internal/bots/watcher"
	"github.com/savdohub/savdobot/internal/ingest"
)

func newDealerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dealer",
		Short: "Run the dealer bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.UseToken(cfg.Tokens.Diller); err != nil {
				return err
			}
			a, err := app.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			svcs := a.BuildServices()
			engine := dealerbot.NewEngine(a.Sessions("diller"), svcs.Dealers, svcs.Payments)
			bot := dealerbot.NewBot(engine)

			reg := coretelegram.NewRegistry()
			bot.Register(reg)

			routes := router.TextRoutes(bot, reg, router.TextOptions{})
			routes = append(routes, router.CommandRoutes(reg)...)
			routes = append(routes, router.CallbackRoute(reg))

			return corecmd.RunBot(coretelegram.RunOptions{
				Config:      &cfg.Config,
				Registry:    reg,
				Middlewares: coretelegram.DefaultMiddlewares(&cfg.Config, nil),
				Routes:      routes,
			})
		},
	}
}

func newSellerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seller",
		Short: "Run the seller bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.UseToken(cfg.Tokens.Sotuvchi); err != nil {
				return err
			}
			a, err := app.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			svcs := a.BuildServices()
			engine := sellerbot.NewEngine(a.Sessions("sotuvchi"), svcs.Sellers, svcs.Payments)
			bot := sellerbot.NewBot(engine)

			reg := coretelegram.NewRegistry()
			bot.Register(reg)

			routes := router.TextRoutes(bot, reg, router.TextOptions{})
			routes = append(routes, router.CommandRoutes(reg)...)
			routes = append(routes, router.CallbackRoute(reg))

			return corecmd.RunBot(coretelegram.RunOptions{
				Config:      &cfg.Config,
				Registry:    reg,
				Middlewares: coretelegram.DefaultMiddlewares(&cfg.Config, nil),
				Routes:      routes,
			})
		},
	}
}

func newWatcherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watcher",
		Short: "Run the group-scraping bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.UseToken(cfg.Tokens.Watcher); err != nil {
				return err
			}
			allowed, err := cfg.AllowedChatIDs()
			if err != nil {
				return err
			}
			a, err := app.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			svcs := a.BuildServices()
			pipeline := ingest.New(svcs.PaymentRepo, allowed)
			bot := watcher.NewBot(pipeline, svcs.Payments)

			reg := coretelegram.NewRegistry()
			bot.Register(reg)

			routes := bot.Routes()
			routes = append(routes, router.CommandRoutes(reg)...)

			return corecmd.RunBot(coretelegram.RunOptions{
				Config:      &cfg.Config,
				Registry:    reg,
				Middlewares: coretelegram.DefaultMiddlewares(&cfg.Config, nil),
				Routes:      routes,
			})
		},
	}
}
