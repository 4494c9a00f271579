package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/savdohub/savdobot/internal/app"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "savdobot",
		Short:         "Payment collection bots for dealers and sellers",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; the environment may be set directly.
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default config.yaml or $CONFIG_PATH)")

	root.AddCommand(newDealerCmd())
	root.AddCommand(newSellerCmd())
	root.AddCommand(newWatcherCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newAccountCmd())
	return root
}

func loadConfig() (*app.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
	}
	return app.Load(path)
}
