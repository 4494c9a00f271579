package service

import (
	"context"
	"testing"

	"github.com/savdohub/savdobot/internal/domain"
)

func TestDealerRegisterBindsWithoutTouchingProfile(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewDealers(f, sellerStore{f})

	created, err := svc.Create(ctx, "Akmal", "Rahimov", "901234567")
	if err != nil {
		t.Fatal(err)
	}
	if created.TartibRaqami != "D1" {
		t.Errorf("TartibRaqami = %q, want D1", created.TartibRaqami)
	}
	if created.TelefonRaqam != "+998901234567" {
		t.Errorf("phone not canonical: %q", created.TelefonRaqam)
	}

	d, err := svc.Register(ctx, 1001, 2002, "+998 90 123-45-67")
	if err != nil {
		t.Fatal(err)
	}
	if d.Ism != "Akmal" || d.Familiya != "Rahimov" {
		t.Errorf("profile changed by registration: %s %s", d.Ism, d.Familiya)
	}
	if d.TgChatID == nil || *d.TgChatID != 1001 || d.TgUserID == nil || *d.TgUserID != 2002 {
		t.Error("telegram identity not bound")
	}

	found, err := svc.FindByTelegram(ctx, 2002)
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || found.ID != d.ID {
		t.Error("registered dealer not found by telegram id")
	}
}

func TestDealerRegisterErrors(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewDealers(f, sellerStore{f})

	if _, err := svc.Register(ctx, 1, 2, "banana"); !domain.IsKind(err, domain.KindValidation) {
		t.Errorf("garbage phone: err = %v, want VALIDATION", err)
	}
	if _, err := svc.Register(ctx, 1, 2, "901234567"); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("unknown phone: err = %v, want NOT_FOUND", err)
	}

	if _, err := svc.Create(ctx, "Akmal", "Rahimov", "901234567"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, 10, 20, "901234567"); err != nil {
		t.Fatal(err)
	}
	// Same account, different Telegram user.
	if _, err := svc.Register(ctx, 11, 21, "901234567"); !domain.IsKind(err, domain.KindConflict) {
		t.Errorf("foreign rebind: err = %v, want CONFLICT", err)
	}
	// Re-register by the same user is allowed.
	if _, err := svc.Register(ctx, 12, 20, "901234567"); err != nil {
		t.Errorf("same-user re-register: %v", err)
	}

	// A user already bound to one account cannot claim another account's
	// phone; the second account stays unbound.
	second, err := svc.Create(ctx, "Anvar", "Karimov", "909876543")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, 12, 20, "909876543"); !domain.IsKind(err, domain.KindConflict) {
		t.Errorf("bound-elsewhere user: err = %v, want CONFLICT", err)
	}
	if f.dillers[second.ID].TgUserID != nil {
		t.Error("second account bound despite the conflict")
	}
	found, err := svc.FindByTelegram(ctx, 20)
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || found.TelefonRaqam != "+998901234567" {
		t.Errorf("original binding lost: %+v", found)
	}
}

func TestDealerCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewDealers(f, sellerStore{f})

	if _, err := svc.Create(ctx, "Al", "Rahimov", "901234567"); err != nil {
		t.Errorf("two-letter name rejected: %v", err)
	}
	if _, err := svc.Create(ctx, "A", "Rahimov", "909876543"); !domain.IsKind(err, domain.KindValidation) {
		t.Errorf("one-letter name: err = %v, want VALIDATION", err)
	}
	if _, err := svc.Create(ctx, "Anvar", "R", "909876543"); !domain.IsKind(err, domain.KindValidation) {
		t.Errorf("one-letter surname: err = %v, want VALIDATION", err)
	}
	if _, err := svc.Create(ctx, "Anvar", "Karimov", "901234567"); !domain.IsKind(err, domain.KindConflict) {
		t.Errorf("duplicate phone: err = %v, want CONFLICT", err)
	}
}

func TestDealerLinkSeller(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	sellers := sellerStore{f}
	svc := NewDealers(f, sellers)

	d, err := svc.Create(ctx, "Akmal", "Rahimov", "901234567")
	if err != nil {
		t.Fatal(err)
	}
	sot, err := NewSellers(sellers).Create(ctx, "Aziz", "Karimov", "909876543")
	if err != nil {
		t.Fatal(err)
	}

	got, linked, err := svc.LinkSeller(ctx, d.ID, " s"+sot.TartibRaqami[1:]+" ")
	if err != nil {
		t.Fatal(err)
	}
	if !linked {
		t.Error("first link should report linked")
	}
	if got.ID != sot.ID {
		t.Errorf("linked seller id = %d, want %d", got.ID, sot.ID)
	}

	// Linking the same pair again is a notice, not an error, and the edge
	// set stays unchanged.
	got, linked, err = svc.LinkSeller(ctx, d.ID, sot.TartibRaqami)
	if err != nil {
		t.Fatal(err)
	}
	if linked {
		t.Error("second link should report already linked")
	}
	if got == nil || got.ID != sot.ID {
		t.Error("already-linked seller not returned")
	}
	if len(f.edges) != 1 {
		t.Errorf("edge count = %d, want 1", len(f.edges))
	}

	if _, _, err := svc.LinkSeller(ctx, d.ID, "7"); !domain.IsKind(err, domain.KindValidation) {
		t.Errorf("bad code: err = %v, want VALIDATION", err)
	}
	if _, _, err := svc.LinkSeller(ctx, d.ID, "S999"); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("unknown code: err = %v, want NOT_FOUND", err)
	}

	listed, err := svc.Sellers(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != sot.ID {
		t.Errorf("Sellers = %+v", listed)
	}
}
