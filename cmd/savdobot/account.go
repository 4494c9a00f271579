package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/savdohub/savdobot/core/database"
	"github.com/savdohub/savdobot/core/logger"
	"github.com/savdohub/savdobot/internal/app"
)

type accountFlags struct {
	ism      string
	familiya string
	telefon  string
}

func (f *accountFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ism, "ism", "", "first name")
	cmd.Flags().StringVar(&f.familiya, "familiya", "", "last name")
	cmd.Flags().StringVar(&f.telefon, "telefon", "", "phone number, for example +998901234567")
	_ = cmd.MarkFlagRequired("ism")
	_ = cmd.MarkFlagRequired("familiya")
	_ = cmd.MarkFlagRequired("telefon")
}

// newAccountCmd manages the pre-created accounts that dealers and sellers
// later bind to their Telegram identity.
func newAccountCmd() *cobra.Command {
	account := &cobra.Command{
		Use:   "account",
		Short: "Manage dealer and seller accounts",
	}

	var dealerFlags accountFlags
	addDealer := &cobra.Command{
		Use:   "add-dealer",
		Short: "Create a dealer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(svcs *app.Services) error {
				d, err := svcs.Dealers.Create(cmd.Context(), dealerFlags.ism, dealerFlags.familiya, dealerFlags.telefon)
				if err != nil {
					return err
				}
				printAccount(cmd, "Diller", d.FullName(), d.TelefonRaqam, d.TartibRaqami)
				return nil
			})
		},
	}
	dealerFlags.bind(addDealer)

	var sellerFlags accountFlags
	addSeller := &cobra.Command{
		Use:   "add-seller",
		Short: "Create a seller account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(svcs *app.Services) error {
				s, err := svcs.Sellers.Create(cmd.Context(), sellerFlags.ism, sellerFlags.familiya, sellerFlags.telefon)
				if err != nil {
					return err
				}
				printAccount(cmd, "Sotuvchi", s.FullName(), s.TelefonRaqam, s.TartibRaqami)
				return nil
			})
		},
	}
	sellerFlags.bind(addSeller)

	account.AddCommand(addDealer, addSeller)
	return account
}

func withServices(cmd *cobra.Command, fn func(svcs *app.Services) error) error {
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

	db, err := database.Connect(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	a := &app.App{Config: cfg, DB: db}
	return fn(a.BuildServices())
}

func printAccount(cmd *cobra.Command, kind, fullName, telefon, code string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s yaratildi: %s\nTelefon: %s\nTartib raqami: %s\n",
		kind, fullName, telefon, code)
}
