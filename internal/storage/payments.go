package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
)

// PaymentRepo persists parsed payment notifications.
type PaymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo wraps db into a payment repository.
func NewPaymentRepo(db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Insert stores a payment. The unique (tg_message_id, tg_chat_id) index makes
// the insert idempotent; Insert reports false for duplicates.
func (r *PaymentRepo) Insert(ctx context.Context, p *domain.Payment) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (
			operatsiya_raqami, tranzaksiya_id, terminal_id, merchant_id, vaqt,
			mijoz_telefon, mijoz_ismi, muddat, summa, hisobga_otkazilgan_summa,
			dokon_manzili, original_message, tg_message_id, tg_chat_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (tg_message_id, tg_chat_id) DO NOTHING`,
		p.OperatsiyaRaqami, p.TranzaksiyaID, p.TerminalID, p.MerchantID, p.Vaqt,
		p.MijozTelefon, p.MijozIsmi, p.Muddat, p.Summa, p.HisobgaOtkazilganSumma,
		p.DokonManzili, p.OriginalMessage, p.TgMessageID, p.TgChatID)
	if err != nil {
		return false, fmt.Errorf("payment insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("payment insert rows: %w", err)
	}
	return n > 0, nil
}

// ExistsByMessage reports whether the source message was already ingested.
func (r *PaymentRepo) ExistsByMessage(ctx context.Context, tgMessageID int, tgChatID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE tg_message_id = $1 AND tg_chat_id = $2)`,
		tgMessageID, tgChatID)
	if err != nil {
		return false, fmt.Errorf("payment exists: %w", err)
	}
	return exists, nil
}

// GetByID returns the payment with the given id, or nil when absent.
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.GetContext(ctx, &p, `SELECT * FROM payments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("payment by id: %w", err)
	}
	return &p, nil
}

// SearchUnclaimedBySuffix returns unclaimed payments whose customer phone
// ends with the 9-digit suffix, newest first.
func (r *PaymentRepo) SearchUnclaimedBySuffix(ctx context.Context, suffix string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM payments
		 WHERE sotuvchi_id IS NULL AND mijoz_telefon LIKE '%' || $1
		 ORDER BY vaqt DESC`,
		suffix)
	if err != nil {
		return nil, fmt.Errorf("payment search unclaimed: %w", err)
	}
	return out, nil
}

// CountBySuffix counts all payments matching the suffix, claimed or not.
// Together with SearchUnclaimedBySuffix it distinguishes "no such payment"
// from "all matching payments already claimed".
func (r *PaymentRepo) CountBySuffix(ctx context.Context, suffix string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT count(*) FROM payments WHERE mijoz_telefon LIKE '%' || $1`, suffix)
	if err != nil {
		return 0, fmt.Errorf("payment count by suffix: %w", err)
	}
	return n, nil
}

// Claim atomically assigns the payment to a seller. The conditional update
// makes concurrent claims race-safe: exactly one caller sees true.
func (r *PaymentRepo) Claim(ctx context.Context, paymentID, sotuvchiID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET sotuvchi_id = $2 WHERE id = $1 AND sotuvchi_id IS NULL`,
		paymentID, sotuvchiID)
	if err != nil {
		return false, fmt.Errorf("payment claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("payment claim rows: %w", err)
	}
	return n > 0, nil
}

// ListClaimedBySellers returns the latest claimed payments of the given
// sellers, newest first, capped at limit.
func (r *PaymentRepo) ListClaimedBySellers(ctx context.Context, sellerIDs []int64, limit int) ([]domain.Payment, error) {
	if len(sellerIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT * FROM payments WHERE sotuvchi_id IN (?) ORDER BY vaqt DESC LIMIT ?`,
		sellerIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("payment list claimed in: %w", err)
	}
	var out []domain.Payment
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("payment list claimed: %w", err)
	}
	return out, nil
}

// ListClaimedBySellersInWindow returns the sellers' claimed payments whose
// vaqt falls inside the window. An unbounded window returns all of them.
func (r *PaymentRepo) ListClaimedBySellersInWindow(ctx context.Context, sellerIDs []int64, w period.Window) ([]domain.Payment, error) {
	if len(sellerIDs) == 0 {
		return nil, nil
	}
	q := `SELECT * FROM payments WHERE sotuvchi_id IN (?)`
	args := []any{sellerIDs}
	if w.Bounded() {
		q += ` AND vaqt BETWEEN ? AND ?`
		args = append(args, w.From, w.To)
	}
	q += ` ORDER BY vaqt DESC`

	query, inArgs, err := sqlx.In(q, args...)
	if err != nil {
		return nil, fmt.Errorf("payment window in: %w", err)
	}
	var out []domain.Payment
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), inArgs...); err != nil {
		return nil, fmt.Errorf("payment window list: %w", err)
	}
	return out, nil
}

// CountAll returns the total number of ingested payments.
func (r *PaymentRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM payments`); err != nil {
		return 0, fmt.Errorf("payment count all: %w", err)
	}
	return n, nil
}

// CountSince returns the number of payments ingested after t.
func (r *PaymentRepo) CountSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM payments WHERE created_at >= $1`, t); err != nil {
		return 0, fmt.Errorf("payment count since: %w", err)
	}
	return n, nil
}
