// Package service holds the application logic between the Telegram bots and
// the Postgres repositories: account registration, dealer-seller links, the
// claim flow and statistics.
package service

import (
	"context"
	"time"

	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
)

// DillerStore is the dealer persistence the services depend on.
type DillerStore interface {
	Create(ctx context.Context, ism, familiya, telefon string) (*domain.Diller, error)
	GetByID(ctx context.Context, id int64) (*domain.Diller, error)
	GetByPhone(ctx context.Context, telefon string) (*domain.Diller, error)
	GetByTgUserID(ctx context.Context, tgUserID int64) (*domain.Diller, error)
	BindTelegram(ctx context.Context, id, tgChatID, tgUserID int64) error
	LinkSotuvchi(ctx context.Context, dillerID, sotuvchiID int64) (bool, error)
	ListSotuvchilar(ctx context.Context, dillerID int64) ([]domain.Sotuvchi, error)
}

// SotuvchiStore is the seller persistence the services depend on.
type SotuvchiStore interface {
	Create(ctx context.Context, ism, familiya, telefon string) (*domain.Sotuvchi, error)
	GetByID(ctx context.Context, id int64) (*domain.Sotuvchi, error)
	GetByPhone(ctx context.Context, telefon string) (*domain.Sotuvchi, error)
	GetByTgUserID(ctx context.Context, tgUserID int64) (*domain.Sotuvchi, error)
	GetByTartibRaqami(ctx context.Context, code string) (*domain.Sotuvchi, error)
	BindTelegram(ctx context.Context, id, tgChatID, tgUserID int64) error
	ListDillerlar(ctx context.Context, sotuvchiID int64) ([]domain.Diller, error)
}

// PaymentStore is the payment persistence the services depend on.
type PaymentStore interface {
	Insert(ctx context.Context, p *domain.Payment) (bool, error)
	ExistsByMessage(ctx context.Context, tgMessageID int, tgChatID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	SearchUnclaimedBySuffix(ctx context.Context, suffix string) ([]domain.Payment, error)
	CountBySuffix(ctx context.Context, suffix string) (int, error)
	Claim(ctx context.Context, paymentID, sotuvchiID int64) (bool, error)
	ListClaimedBySellers(ctx context.Context, sellerIDs []int64, limit int) ([]domain.Payment, error)
	ListClaimedBySellersInWindow(ctx context.Context, sellerIDs []int64, w period.Window) ([]domain.Payment, error)
	CountAll(ctx context.Context) (int, error)
	CountSince(ctx context.Context, t time.Time) (int, error)
}
