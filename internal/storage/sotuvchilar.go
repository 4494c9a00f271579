package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/savdohub/savdobot/internal/domain"
)

// SotuvchiRepo persists seller accounts.
type SotuvchiRepo struct {
	db *sqlx.DB
}

// NewSotuvchiRepo wraps db into a seller repository.
func NewSotuvchiRepo(db *sqlx.DB) *SotuvchiRepo {
	return &SotuvchiRepo{db: db}
}

// Create inserts a seller and assigns its S<n> sequence code from the row id.
func (r *SotuvchiRepo) Create(ctx context.Context, ism, familiya, telefon string) (*domain.Sotuvchi, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sotuvchi create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO sotuvchilar (ism, familiya, telefon_raqam, tartib_raqami, status)
		 VALUES ($1, $2, $3, '', $4)
		 RETURNING id`,
		ism, familiya, telefon, domain.StatusActive,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("sotuvchi create: %w", err)
	}

	var s domain.Sotuvchi
	err = tx.GetContext(ctx, &s,
		`UPDATE sotuvchilar SET tartib_raqami = 'S' || id::text WHERE id = $1 RETURNING *`, id)
	if err != nil {
		return nil, fmt.Errorf("sotuvchi assign code: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sotuvchi create commit: %w", err)
	}
	return &s, nil
}

// GetByID returns the seller with the given id.
func (r *SotuvchiRepo) GetByID(ctx context.Context, id int64) (*domain.Sotuvchi, error) {
	var s domain.Sotuvchi
	err := r.db.GetContext(ctx, &s, `SELECT * FROM sotuvchilar WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sotuvchi by id: %w", err)
	}
	return &s, nil
}

// GetByPhone returns the seller with the canonical phone number.
func (r *SotuvchiRepo) GetByPhone(ctx context.Context, telefon string) (*domain.Sotuvchi, error) {
	var s domain.Sotuvchi
	err := r.db.GetContext(ctx, &s, `SELECT * FROM sotuvchilar WHERE telefon_raqam = $1`, telefon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sotuvchi by phone: %w", err)
	}
	return &s, nil
}

// GetByTgUserID returns the seller bound to the Telegram user.
func (r *SotuvchiRepo) GetByTgUserID(ctx context.Context, tgUserID int64) (*domain.Sotuvchi, error) {
	var s domain.Sotuvchi
	err := r.db.GetContext(ctx, &s, `SELECT * FROM sotuvchilar WHERE tg_user_id = $1`, tgUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sotuvchi by tg user: %w", err)
	}
	return &s, nil
}

// GetByTartibRaqami returns the seller with the given S<n> code.
func (r *SotuvchiRepo) GetByTartibRaqami(ctx context.Context, code string) (*domain.Sotuvchi, error) {
	var s domain.Sotuvchi
	err := r.db.GetContext(ctx, &s, `SELECT * FROM sotuvchilar WHERE tartib_raqami = $1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sotuvchi by code: %w", err)
	}
	return &s, nil
}

// BindTelegram attaches the Telegram identity to the seller account.
func (r *SotuvchiRepo) BindTelegram(ctx context.Context, id, tgChatID, tgUserID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sotuvchilar SET tg_chat_id = $2, tg_user_id = $3, updated_at = now() WHERE id = $1`,
		id, tgChatID, tgUserID)
	if err != nil {
		return fmt.Errorf("sotuvchi bind telegram: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sotuvchi bind telegram: id %d not found", id)
	}
	return nil
}

// ListDillerlar returns the dealers linked to a seller, oldest link first.
func (r *SotuvchiRepo) ListDillerlar(ctx context.Context, sotuvchiID int64) ([]domain.Diller, error) {
	var out []domain.Diller
	err := r.db.SelectContext(ctx, &out,
		`SELECT d.* FROM dillers d
		 JOIN diller_sotuvchi ds ON ds.diller_id = d.id
		 WHERE ds.sotuvchi_id = $1
		 ORDER BY d.id`,
		sotuvchiID)
	if err != nil {
		return nil, fmt.Errorf("list dillerlar: %w", err)
	}
	return out, nil
}
