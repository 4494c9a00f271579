// Package domain holds the entities and error taxonomy shared by storage,
// services, and the bot engines.
package domain

import (
	"strings"
	"time"
)

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Diller is a dealer account. Accounts are created out of band and later
// bound to a Telegram identity through the registration dialog.
type Diller struct {
	ID           int64     `db:"id"`
	Ism          string    `db:"ism"`
	Familiya     string    `db:"familiya"`
	TelefonRaqam string    `db:"telefon_raqam"`
	TartibRaqami string    `db:"tartib_raqami"`
	Status       string    `db:"status"`
	TgChatID     *int64    `db:"tg_chat_id"`
	TgUserID     *int64    `db:"tg_user_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// FullName joins first and last name for display.
func (d *Diller) FullName() string {
	return strings.TrimSpace(d.Ism + " " + d.Familiya)
}

// Registered reports whether the account is bound to a Telegram user.
func (d *Diller) Registered() bool {
	return d.TgUserID != nil && *d.TgUserID != 0
}

// Sotuvchi is a seller account, shaped like Diller with S-codes.
type Sotuvchi struct {
	ID           int64     `db:"id"`
	Ism          string    `db:"ism"`
	Familiya     string    `db:"familiya"`
	TelefonRaqam string    `db:"telefon_raqam"`
	TartibRaqami string    `db:"tartib_raqami"`
	Status       string    `db:"status"`
	TgChatID     *int64    `db:"tg_chat_id"`
	TgUserID     *int64    `db:"tg_user_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// FullName joins first and last name for display.
func (s *Sotuvchi) FullName() string {
	return strings.TrimSpace(s.Ism + " " + s.Familiya)
}

// Registered reports whether the account is bound to a Telegram user.
func (s *Sotuvchi) Registered() bool {
	return s.TgUserID != nil && *s.TgUserID != 0
}

// Payment is one parsed payment notification scraped from a group.
// Summa fields keep the verbatim template text; numeric work happens in the
// money package at read time.
type Payment struct {
	ID                     int64     `db:"id"`
	OperatsiyaRaqami       string    `db:"operatsiya_raqami"`
	TranzaksiyaID          string    `db:"tranzaksiya_id"`
	TerminalID             string    `db:"terminal_id"`
	MerchantID             string    `db:"merchant_id"`
	Vaqt                   time.Time `db:"vaqt"`
	MijozTelefon           string    `db:"mijoz_telefon"`
	MijozIsmi              string    `db:"mijoz_ismi"`
	Muddat                 string    `db:"muddat"`
	Summa                  string    `db:"summa"`
	HisobgaOtkazilganSumma string    `db:"hisobga_otkazilgan_summa"`
	DokonManzili           *string   `db:"dokon_manzili"`
	OriginalMessage        string    `db:"original_message"`
	TgMessageID            int       `db:"tg_message_id"`
	TgChatID               int64     `db:"tg_chat_id"`
	SotuvchiID             *int64    `db:"sotuvchi_id"`
	CreatedAt              time.Time `db:"created_at"`
}

// Claimed reports whether a seller has taken this payment.
func (p *Payment) Claimed() bool {
	return p.SotuvchiID != nil && *p.SotuvchiID != 0
}
