package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/savdohub/savdobot/core/database"
	"github.com/savdohub/savdobot/core/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := logger.InitLogger(&cfg.Config); err != nil {
				return err
			}
			defer func() {
				if err := logger.Shutdown(); err != nil {
					log.Printf("logger shutdown error: %v", err)
				}
			}()
			return database.RunMigrations(cmd.Context(), cfg.Database)
		},
	}
}
