package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/savdohub/savdobot/core/logger"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/money"
	"github.com/savdohub/savdobot/internal/period"
	"github.com/savdohub/savdobot/internal/phone"
)

// ClaimOutcome classifies what a claim attempt found.
type ClaimOutcome int

const (
	// ClaimOK means the payment was assigned to the caller just now.
	ClaimOK ClaimOutcome = iota
	// ClaimAlreadyYours means the payment already belonged to the caller.
	ClaimAlreadyYours
	// ClaimTakenByOther means another seller holds the payment.
	ClaimTakenByOther
)

// ClaimResult reports a claim attempt. Claimant is set for ClaimTakenByOther
// when the holding seller could be resolved.
type ClaimResult struct {
	Outcome  ClaimOutcome
	Payment  *domain.Payment
	Claimant *domain.Sotuvchi
}

// SearchResult lists the claimable payments for a phone suffix. TotalMatches
// counts every payment with that suffix, claimed or not, so the caller can
// tell "no such payment" from "all already claimed".
type SearchResult struct {
	Candidates   []domain.Payment
	TotalMatches int
}

// DealerStats aggregates the claimed payments of one dealer's sellers over a
// period window.
type DealerStats struct {
	Davr        period.Period
	Buyurtmalar int
	Summa       float64
	Hisobga     float64
	Sotuvchilar int
}

// Payments implements the claim flow, order listings and statistics.
type Payments struct {
	payments    PaymentStore
	dillers     DillerStore
	sotuvchilar SotuvchiStore
}

// NewPayments builds the payment service.
func NewPayments(payments PaymentStore, dillers DillerStore, sotuvchilar SotuvchiStore) *Payments {
	return &Payments{payments: payments, dillers: dillers, sotuvchilar: sotuvchilar}
}

// SearchClaimable finds unclaimed payments whose customer phone ends with the
// given 9-digit suffix, newest first.
func (s *Payments) SearchClaimable(ctx context.Context, suffix string) (*SearchResult, error) {
	if !phone.IsSuffixQuery(suffix) {
		return nil, domain.E(domain.KindValidation, "telefon raqam 9 ta raqamdan iborat bo'lishi kerak")
	}
	candidates, err := s.payments.SearchUnclaimedBySuffix(ctx, suffix)
	if err != nil {
		return nil, err
	}
	total, err := s.payments.CountBySuffix(ctx, suffix)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Candidates: candidates, TotalMatches: total}, nil
}

// Payment returns one stored payment by id, or nil when absent.
func (s *Payments) Payment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// Claim assigns the payment to the seller. The payment is re-fetched first so
// stale dialog state never produces a blind write, and the final assignment is
// a conditional update: when two sellers race, exactly one wins and the loser
// is reported ClaimTakenByOther.
func (s *Payments) Claim(ctx context.Context, paymentID, sotuvchiID int64) (*ClaimResult, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.E(domain.KindNotFound, "tranzaksiya topilmadi")
	}
	if p.Claimed() {
		return s.claimedResult(ctx, p, sotuvchiID)
	}

	won, err := s.payments.Claim(ctx, paymentID, sotuvchiID)
	if err != nil {
		return nil, err
	}
	if !won {
		// Lost the race; re-read to report the winner.
		p, err = s.payments.GetByID(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.Claimed() {
			return nil, domain.E(domain.KindUnavailable, "tranzaksiyani biriktirib bo'lmadi")
		}
		return s.claimedResult(ctx, p, sotuvchiID)
	}

	p.SotuvchiID = &sotuvchiID
	logger.LogEvent(ctx, logger.SVCPayments, slog.LevelInfo, "payment.claimed",
		slog.Int64("payment_id", paymentID), slog.Int64("sotuvchi_id", sotuvchiID))
	return &ClaimResult{Outcome: ClaimOK, Payment: p}, nil
}

func (s *Payments) claimedResult(ctx context.Context, p *domain.Payment, sotuvchiID int64) (*ClaimResult, error) {
	if *p.SotuvchiID == sotuvchiID {
		return &ClaimResult{Outcome: ClaimAlreadyYours, Payment: p}, nil
	}
	claimant, err := s.sotuvchilar.GetByID(ctx, *p.SotuvchiID)
	if err != nil {
		return nil, err
	}
	return &ClaimResult{Outcome: ClaimTakenByOther, Payment: p, Claimant: claimant}, nil
}

// DealerOrders returns the latest claimed payments of every seller linked to
// the dealer, newest first.
func (s *Payments) DealerOrders(ctx context.Context, dillerID int64, limit int) ([]domain.Payment, error) {
	sellers, err := s.dillers.ListSotuvchilar(ctx, dillerID)
	if err != nil {
		return nil, err
	}
	ids := sellerIDs(sellers)
	if len(ids) == 0 {
		return nil, nil
	}
	return s.payments.ListClaimedBySellers(ctx, ids, limit)
}

// DealerStatistics aggregates the claimed payments of the dealer's sellers
// inside the period window ending at now.
func (s *Payments) DealerStatistics(ctx context.Context, dillerID int64, p period.Period, now time.Time) (*DealerStats, error) {
	sellers, err := s.dillers.ListSotuvchilar(ctx, dillerID)
	if err != nil {
		return nil, err
	}
	stats := &DealerStats{Davr: p, Sotuvchilar: len(sellers)}
	ids := sellerIDs(sellers)
	if len(ids) == 0 {
		return stats, nil
	}
	payments, err := s.payments.ListClaimedBySellersInWindow(ctx, ids, period.Range(p, now))
	if err != nil {
		return nil, err
	}
	stats.Buyurtmalar = len(payments)
	for _, pay := range payments {
		stats.Summa += money.Parse(pay.Summa)
		stats.Hisobga += money.Parse(pay.HisobgaOtkazilganSumma)
	}
	return stats, nil
}

// Totals reports the overall ingested payment count and the count of the last
// 24 hours.
func (s *Payments) Totals(ctx context.Context, now time.Time) (total, last24h int, err error) {
	total, err = s.payments.CountAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	last24h, err = s.payments.CountSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return 0, 0, err
	}
	return total, last24h, nil
}

func sellerIDs(sellers []domain.Sotuvchi) []int64 {
	ids := make([]int64, 0, len(sellers))
	for _, sot := range sellers {
		ids = append(ids, sot.ID)
	}
	return ids
}
