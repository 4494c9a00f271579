package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
)

func seedPayment(t *testing.T, f *fakeStore, telefon string, vaqt time.Time, summa, hisobga string) *domain.Payment {
	t.Helper()
	p := &domain.Payment{
		OperatsiyaRaqami:       "666247",
		TranzaksiyaID:          "181818244",
		TerminalID:             "92A0012",
		MerchantID:             "907123456",
		Vaqt:                   vaqt,
		MijozTelefon:           telefon,
		MijozIsmi:              "AZIZBEK KARIMOV",
		Muddat:                 "12 oy",
		Summa:                  summa,
		HisobgaOtkazilganSumma: hisobga,
		TgMessageID:            int(f.nextID) + 100,
		TgChatID:               -100123,
		CreatedAt:              vaqt,
	}
	inserted, err := paymentStore{f}.Insert(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Fatal("seed payment not inserted")
	}
	return p
}

func TestSearchClaimable(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewPayments(paymentStore{f}, f, sellerStore{f})
	now := time.Now()

	if _, err := svc.SearchClaimable(ctx, "12345"); !domain.IsKind(err, domain.KindValidation) {
		t.Errorf("short suffix: err = %v, want VALIDATION", err)
	}

	res, err := svc.SearchClaimable(ctx, "942330690")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 0 || res.TotalMatches != 0 {
		t.Errorf("empty store: %+v", res)
	}

	// Three unclaimed payments with the same customer phone suffix.
	seedPayment(t, f, "998942330690", now.Add(-3*time.Hour), "100.00", "90.00")
	seedPayment(t, f, "998942330690", now.Add(-1*time.Hour), "200.00", "180.00")
	seedPayment(t, f, "+998942330690", now.Add(-2*time.Hour), "300.00", "270.00")
	// A claimed one still counts toward TotalMatches.
	claimed := seedPayment(t, f, "998942330690", now.Add(-4*time.Hour), "50.00", "45.00")
	sellerID := int64(77)
	if ok, _ := (paymentStore{f}).Claim(ctx, claimed.ID, sellerID); !ok {
		t.Fatal("seed claim failed")
	}

	res, err = svc.SearchClaimable(ctx, "942330690")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 3 {
		t.Fatalf("candidates = %d, want 3", len(res.Candidates))
	}
	if res.TotalMatches != 4 {
		t.Errorf("TotalMatches = %d, want 4", res.TotalMatches)
	}
	// Newest first.
	if !res.Candidates[0].Vaqt.After(res.Candidates[1].Vaqt) ||
		!res.Candidates[1].Vaqt.After(res.Candidates[2].Vaqt) {
		t.Error("candidates not sorted newest first")
	}
}

func TestSearchClaimableAllTaken(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewPayments(paymentStore{f}, f, sellerStore{f})

	p := seedPayment(t, f, "998901112233", time.Now(), "100.00", "90.00")
	if ok, _ := (paymentStore{f}).Claim(ctx, p.ID, 5); !ok {
		t.Fatal("seed claim failed")
	}

	res, err := svc.SearchClaimable(ctx, "901112233")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 0 {
		t.Errorf("candidates = %d, want 0", len(res.Candidates))
	}
	if res.TotalMatches != 1 {
		t.Errorf("TotalMatches = %d, want 1", res.TotalMatches)
	}
}

func TestClaimOutcomes(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	sellers := sellerStore{f}
	svc := NewPayments(paymentStore{f}, f, sellers)

	other, err := sellers.Create(ctx, "Olim", "Toshev", "+998909999999")
	if err != nil {
		t.Fatal(err)
	}
	p := seedPayment(t, f, "998901112233", time.Now(), "100.00", "90.00")

	if _, err := svc.Claim(ctx, 9999, 1); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("missing payment: err = %v, want NOT_FOUND", err)
	}

	res, err := svc.Claim(ctx, p.ID, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != ClaimOK {
		t.Fatalf("first claim outcome = %v, want ClaimOK", res.Outcome)
	}

	res, err = svc.Claim(ctx, p.ID, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != ClaimAlreadyYours {
		t.Errorf("repeat claim outcome = %v, want ClaimAlreadyYours", res.Outcome)
	}

	res, err = svc.Claim(ctx, p.ID, other.ID+100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != ClaimTakenByOther {
		t.Errorf("foreign claim outcome = %v, want ClaimTakenByOther", res.Outcome)
	}
	if res.Claimant == nil || res.Claimant.ID != other.ID {
		t.Error("claimant not resolved")
	}
}

func TestClaimRaceExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewPayments(paymentStore{f}, f, sellerStore{f})
	p := seedPayment(t, f, "998901112233", time.Now(), "100.00", "90.00")

	const racers = 8
	results := make([]*ClaimResult, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Claim(ctx, p.ID, int64(i+1))
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, res := range results {
		if res != nil && res.Outcome == ClaimOK {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("winners = %d, want exactly 1", wins)
	}
}

func TestDealerStatistics(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	sellers := sellerStore{f}
	dealerSvc := NewDealers(f, sellers)
	svc := NewPayments(paymentStore{f}, f, sellers)
	now := time.Date(2026, time.January, 15, 14, 30, 0, 0, time.UTC)

	d, err := dealerSvc.Create(ctx, "Akmal", "Rahimov", "901234567")
	if err != nil {
		t.Fatal(err)
	}

	empty, err := svc.DealerStatistics(ctx, d.ID, period.Today, now)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Sotuvchilar != 0 || empty.Buyurtmalar != 0 {
		t.Errorf("stats without sellers: %+v", empty)
	}

	sot, err := NewSellers(sellers).Create(ctx, "Aziz", "Karimov", "909876543")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := dealerSvc.LinkSeller(ctx, d.ID, sot.TartibRaqami); err != nil {
		t.Fatal(err)
	}

	today := seedPayment(t, f, "998901112233", now.Add(-2*time.Hour), "1,000.00", "900.00")
	old := seedPayment(t, f, "998901112234", now.AddDate(0, 0, -40), "5,000.00", "4,500.00")
	for _, p := range []*domain.Payment{today, old} {
		if ok, _ := (paymentStore{f}).Claim(ctx, p.ID, sot.ID); !ok {
			t.Fatal("seed claim failed")
		}
	}

	stats, err := svc.DealerStatistics(ctx, d.ID, period.Today, now)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sotuvchilar != 1 {
		t.Errorf("Sotuvchilar = %d, want 1", stats.Sotuvchilar)
	}
	if stats.Buyurtmalar != 1 {
		t.Errorf("Buyurtmalar = %d, want 1 (old payment outside window)", stats.Buyurtmalar)
	}
	if stats.Summa != 1000 || stats.Hisobga != 900 {
		t.Errorf("sums = %v / %v, want 1000 / 900", stats.Summa, stats.Hisobga)
	}

	all, err := svc.DealerStatistics(ctx, d.ID, period.All, now)
	if err != nil {
		t.Fatal(err)
	}
	if all.Buyurtmalar != 2 || all.Summa != 6000 {
		t.Errorf("all-time stats: %+v", all)
	}

	orders, err := svc.DealerOrders(ctx, d.ID, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 || orders[0].ID != today.ID {
		t.Errorf("orders = %+v", orders)
	}
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := NewPayments(paymentStore{f}, f, sellerStore{f})
	now := time.Now()

	seedPayment(t, f, "998901112233", now.Add(-2*time.Hour), "100.00", "90.00")
	seedPayment(t, f, "998901112234", now.Add(-48*time.Hour), "100.00", "90.00")

	total, last24h, err := svc.Totals(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || last24h != 1 {
		t.Errorf("totals = %d/%d, want 2/1", total, last24h)
	}
}
