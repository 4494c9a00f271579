package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/savdohub/savdobot/core/logger"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/phone"
)

var sellerCodeRe = regexp.MustCompile(`^S\d+$`)

// Dealers implements dealer account operations.
type Dealers struct {
	dillers     DillerStore
	sotuvchilar SotuvchiStore
}

// NewDealers builds the dealer service.
func NewDealers(dillers DillerStore, sotuvchilar SotuvchiStore) *Dealers {
	return &Dealers{dillers: dillers, sotuvchilar: sotuvchilar}
}

// Create validates the profile fields and inserts a new dealer account. The
// account is created unbound; the owner binds it later through the bot.
func (s *Dealers) Create(ctx context.Context, ism, familiya, telefon string) (*domain.Diller, error) {
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
	if existing, err := s.dillers.GetByPhone(ctx, canonical); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.E(domain.KindConflict, "bu telefon raqam allaqachon ro'yxatda bor")
	}
	d, err := s.dillers.Create(ctx, ism, familiya, canonical)
	if err != nil {
		return nil, err
	}
	logger.LogEvent(ctx, logger.SVCDealers, slog.LevelInfo, "diller.created",
		slog.Int64("diller_id", d.ID), slog.String("code", d.TartibRaqami))
	return d, nil
}

// FindByTelegram returns the dealer bound to the Telegram user, or nil.
func (s *Dealers) FindByTelegram(ctx context.Context, tgUserID int64) (*domain.Diller, error) {
	return s.dillers.GetByTgUserID(ctx, tgUserID)
}

// Register binds a Telegram identity to a pre-created dealer account found by
// phone number. The stored profile is authoritative: the name the user typed
// during the dialog is discarded, registration only attaches chat and user ids.
func (s *Dealers) Register(ctx context.Context, tgChatID, tgUserID int64, rawPhone string) (*domain.Diller, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, domain.E(domain.KindValidation, "telefon raqam formati noto'g'ri")
	}
	d, err := s.dillers.GetByPhone(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.E(domain.KindNotFound, "bu telefon raqam bazada topilmadi")
	}
	if d.TgUserID != nil && *d.TgUserID != tgUserID {
		return nil, domain.E(domain.KindConflict, "bu telefon raqam boshqa Telegram akkaunt bilan bog'langan")
	}
	bound, err := s.dillers.GetByTgUserID(ctx, tgUserID)
	if err != nil {
		return nil, err
	}
	if bound != nil && bound.ID != d.ID {
		return nil, domain.E(domain.KindConflict, "siz allaqachon boshqa akkaunt bilan bog'langansiz")
	}
	if err := s.dillers.BindTelegram(ctx, d.ID, tgChatID, tgUserID); err != nil {
		return nil, err
	}
	d.TgChatID = &tgChatID
	d.TgUserID = &tgUserID
	logger.LogEvent(ctx, logger.SVCDealers, slog.LevelInfo, "diller.registered",
		slog.Int64("diller_id", d.ID), slog.String("code", d.TartibRaqami))
	return d, nil
}

// LinkSeller attaches the seller with the given S<n> code to the dealer.
// Linking an already linked pair is not an error: the seller is returned with
// linked=false so the caller can word the notice.
func (s *Dealers) LinkSeller(ctx context.Context, dillerID int64, code string) (*domain.Sotuvchi, bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !sellerCodeRe.MatchString(code) {
		return nil, false, domain.E(domain.KindValidation, "sotuvchi kodi S bilan boshlanib raqam bilan davom etishi kerak")
	}
	sot, err := s.sotuvchilar.GetByTartibRaqami(ctx, code)
	if err != nil {
		return nil, false, err
	}
	if sot == nil {
		return nil, false, domain.E(domain.KindNotFound, "sotuvchi topilmadi")
	}
	linked, err := s.dillers.LinkSotuvchi(ctx, dillerID, sot.ID)
	if err != nil {
		return nil, false, err
	}
	if linked {
		logger.LogEvent(ctx, logger.SVCDealers, slog.LevelInfo, "diller.seller_linked",
			slog.Int64("diller_id", dillerID), slog.Int64("sotuvchi_id", sot.ID))
	}
	return sot, linked, nil
}

// Sellers lists the sellers linked to the dealer.
func (s *Dealers) Sellers(ctx context.Context, dillerID int64) ([]domain.Sotuvchi, error) {
	return s.dillers.ListSotuvchilar(ctx, dillerID)
}
