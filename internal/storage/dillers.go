// Package storage implements Postgres persistence for accounts and payments.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/savdohub/savdobot/internal/domain"
)

// DillerRepo persists dealer accounts.
type DillerRepo struct {
	db *sqlx.DB
}

// NewDillerRepo wraps db into a dealer repository.
func NewDillerRepo(db *sqlx.DB) *DillerRepo {
	return &DillerRepo{db: db}
}

// Create inserts a dealer and assigns its D<n> sequence code from the row id.
func (r *DillerRepo) Create(ctx context.Context, ism, familiya, telefon string) (*domain.Diller, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("diller create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO dillers (ism, familiya, telefon_raqam, tartib_raqami, status)
		 VALUES ($1, $2, $3, '', $4)
		 RETURNING id`,
		ism, familiya, telefon, domain.StatusActive,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("diller create: %w", err)
	}

	var d domain.Diller
	err = tx.GetContext(ctx, &d,
		`UPDATE dillers SET tartib_raqami = 'D' || id::text WHERE id = $1 RETURNING *`, id)
	if err != nil {
		return nil, fmt.Errorf("diller assign code: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("diller create commit: %w", err)
	}
	return &d, nil
}

// GetByID returns the dealer with the given id.
func (r *DillerRepo) GetByID(ctx context.Context, id int64) (*domain.Diller, error) {
	var d domain.Diller
	err := r.db.GetContext(ctx, &d, `SELECT * FROM dillers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("diller by id: %w", err)
	}
	return &d, nil
}

// GetByPhone returns the dealer with the canonical phone number.
func (r *DillerRepo) GetByPhone(ctx context.Context, telefon string) (*domain.Diller, error) {
	var d domain.Diller
	err := r.db.GetContext(ctx, &d, `SELECT * FROM dillers WHERE telefon_raqam = $1`, telefon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("diller by phone: %w", err)
	}
	return &d, nil
}

// GetByTgUserID returns the dealer bound to the Telegram user.
func (r *DillerRepo) GetByTgUserID(ctx context.Context, tgUserID int64) (*domain.Diller, error) {
	var d domain.Diller
	err := r.db.GetContext(ctx, &d, `SELECT * FROM dillers WHERE tg_user_id = $1`, tgUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("diller by tg user: %w", err)
	}
	return &d, nil
}

// BindTelegram attaches the Telegram identity to the dealer account.
func (r *DillerRepo) BindTelegram(ctx context.Context, id, tgChatID, tgUserID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dillers SET tg_chat_id = $2, tg_user_id = $3, updated_at = now() WHERE id = $1`,
		id, tgChatID, tgUserID)
	if err != nil {
		return fmt.Errorf("diller bind telegram: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("diller bind telegram: id %d not found", id)
	}
	return nil
}

// LinkSotuvchi writes the symmetric dealer-seller edge. It reports false when
// the pair was already linked.
func (r *DillerRepo) LinkSotuvchi(ctx context.Context, dillerID, sotuvchiID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO diller_sotuvchi (diller_id, sotuvchi_id)
		 VALUES ($1, $2)
		 ON CONFLICT (diller_id, sotuvchi_id) DO NOTHING`,
		dillerID, sotuvchiID)
	if err != nil {
		return false, fmt.Errorf("link sotuvchi: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("link sotuvchi rows: %w", err)
	}
	return n > 0, nil
}

// ListSotuvchilar returns the sellers linked to a dealer, oldest link first.
func (r *DillerRepo) ListSotuvchilar(ctx context.Context, dillerID int64) ([]domain.Sotuvchi, error) {
	var out []domain.Sotuvchi
	err := r.db.SelectContext(ctx, &out,
		`SELECT s.* FROM sotuvchilar s
		 JOIN diller_sotuvchi ds ON ds.sotuvchi_id = s.id
		 WHERE ds.diller_id = $1
		 ORDER BY s.id`,
		dillerID)
	if err != nil {
		return nil, fmt.Errorf("list sotuvchilar: %w", err)
	}
	return out, nil
}
