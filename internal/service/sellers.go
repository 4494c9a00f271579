package service

import (
	"context"
	"log/slog"

	"github.com/savdohub/savdobot/core/logger"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/phone"
)

// Sellers implements seller account operations.
type Sellers struct {
	sotuvchilar SotuvchiStore
}

// NewSellers builds the seller service.
func NewSellers(sotuvchilar SotuvchiStore) *Sellers {
	return &Sellers{sotuvchilar: sotuvchilar}
}

// Create validates the profile fields and inserts a new seller account.
func (s *Sellers) Create(ctx context.Context, ism, familiya, telefon string) (*domain.Sotuvchi, error) {
	ism, err := ValidateName(ism)
	if err != nil {
		return nil, domain.E(domain.KindValidation, "ism kamida 2 ta belgidan iborat bo'lishi kerak")
	}
	familiya, err = ValidateName(familiya)
	if err != nil {
		return nil, domain.E(domain.KindValidation, "familiya kamida 2 ta belgidan iborat bo'lishi kerak")
	}
	canonical, err := phone.Normalize(telefon)
	if err != nil {
		return nil, domain.E(domain.KindValidation, "telefon raqam formati noto'g'ri")
	}
	if existing, err := s.sotuvchilar.GetByPhone(ctx, canonical); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.E(domain.KindConflict, "bu telefon raqam allaqachon ro'yxatda bor")
	}
	sot, err := s.sotuvchilar.Create(ctx, ism, familiya, canonical)
	if err != nil {
		return nil, err
	}
	logger.LogEvent(ctx, logger.SVCSellers, slog.LevelInfo, "sotuvchi.created",
		slog.Int64("sotuvchi_id", sot.ID), slog.String("code", sot.TartibRaqami))
	return sot, nil
}

// FindByTelegram returns the seller bound to the Telegram user, or nil.
func (s *Sellers) FindByTelegram(ctx context.Context, tgUserID int64) (*domain.Sotuvchi, error) {
	return s.sotuvchilar.GetByTgUserID(ctx, tgUserID)
}

// Register binds a Telegram identity to a pre-created seller account found by
// phone number. The stored profile stays untouched.
func (s *Sellers) Register(ctx context.Context, tgChatID, tgUserID int64, rawPhone string) (*domain.Sotuvchi, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, domain.E(domain.KindValidation, "telefon raqam formati noto'g'ri")
	}
	sot, err := s.sotuvchilar.GetByPhone(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		return nil, domain.E(domain.KindNotFound, "bu telefon raqam bazada topilmadi")
	}
	if sot.TgUserID != nil && *sot.TgUserID != tgUserID {
		return nil, domain.E(domain.KindConflict, "bu telefon raqam boshqa Telegram akkaunt bilan bog'langan")
	}
	bound, err := s.sotuvchilar.GetByTgUserID(ctx, tgUserID)
	if err != nil {
		return nil, err
	}
	if bound != nil && bound.ID != sot.ID {
		return nil, domain.E(domain.KindConflict, "siz allaqachon boshqa akkaunt bilan bog'langansiz")
	}
	if err := s.sotuvchilar.BindTelegram(ctx, sot.ID, tgChatID, tgUserID); err != nil {
		return nil, err
	}
	sot.TgChatID = &tgChatID
	sot.TgUserID = &tgUserID
	logger.LogEvent(ctx, logger.SVCSellers, slog.LevelInfo, "sotuvchi.registered",
		slog.Int64("sotuvchi_id", sot.ID), slog.String("code", sot.TartibRaqami))
	return sot, nil
}

// Dealers lists the dealers linked to the seller.
func (s *Sellers) Dealers(ctx context.Context, sotuvchiID int64) ([]domain.Diller, error) {
	return s.sotuvchilar.ListDillerlar(ctx, sotuvchiID)
}
