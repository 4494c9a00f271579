package dealerbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/savdohub/savdobot/core/telegram/state"
	"github.com/savdohub/savdobot/internal/bots/dialog"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
	"github.com/savdohub/savdobot/internal/service"
)

type fakeDealers struct {
	byPhone map[string]*domain.Diller
	byUser  map[int64]*domain.Diller
	sellers map[string]*domain.Sotuvchi
	links   map[int64]bool
	stats   service.DealerStats
	fail    error
}

func newFakeDealers() *fakeDealers {
	return &fakeDealers{
		byPhone: map[string]*domain.Diller{},
		byUser:  map[int64]*domain.Diller{},
		sellers: map[string]*domain.Sotuvchi{},
		links:   map[int64]bool{},
	}
}

func (f *fakeDealers) FindByTelegram(ctx context.Context, tgUserID int64) (*domain.Diller, error) {
	return f.byUser[tgUserID], nil
}

func (f *fakeDealers) Register(ctx context.Context, tgChatID, tgUserID int64, rawPhone string) (*domain.Diller, error) {
	d, ok := f.byPhone[rawPhone]
	if !ok {
		return nil, domain.E(domain.KindNotFound, "bu telefon raqam bazada topilmadi")
	}
	if d.TgUserID != nil && *d.TgUserID != tgUserID {
		return nil, domain.E(domain.KindConflict, "bog'langan")
	}
	d.TgChatID = &tgChatID
	d.TgUserID = &tgUserID
	f.byUser[tgUserID] = d
	return d, nil
}

func (f *fakeDealers) LinkSeller(ctx context.Context, dillerID int64, code string) (*domain.Sotuvchi, bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !strings.HasPrefix(code, "S") {
		return nil, false, domain.E(domain.KindValidation, "format")
	}
	sot, ok := f.sellers[code]
	if !ok {
		return nil, false, domain.E(domain.KindNotFound, "topilmadi")
	}
	if f.links[sot.ID] {
		return sot, false, nil
	}
	f.links[sot.ID] = true
	return sot, true, nil
}

func (f *fakeDealers) Sellers(ctx context.Context, dillerID int64) ([]domain.Sotuvchi, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	var out []domain.Sotuvchi
	for _, sot := range f.sellers {
		if f.links[sot.ID] {
			out = append(out, *sot)
		}
	}
	return out, nil
}

func (f *fakeDealers) DealerStatistics(ctx context.Context, dillerID int64, p period.Period, now time.Time) (*service.DealerStats, error) {
	s := f.stats
	s.Davr = p
	return &s, nil
}

func newTestEngine() (*Engine, *fakeDealers, state.Manager) {
	f := newFakeDealers()
	states := state.NewMemoryManager()
	return NewEngine(states, f, f), f, states
}

func mustState(t *testing.T, states state.Manager, userID int64, want state.State) {
	t.Helper()
	s, err := states.Get(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if s.State != want {
		t.Fatalf("state = %q, want %q", s.State, want)
	}
}

func firstText(t *testing.T, replies []dialog.Reply) string {
	t.Helper()
	if len(replies) == 0 {
		t.Fatal("no replies")
	}
	return replies[0].Text
}

func TestRegistrationDialog(t *testing.T) {
	ctx := context.Background()
	e, f, states := newTestEngine()
	f.byPhone["901234567"] = &domain.Diller{
		ID: 1, Ism: "Akmal", Familiya: "Rahimov",
		TelefonRaqam: "+998901234567", TartibRaqami: "D1", Status: domain.StatusActive,
	}
	const userID, chatID = int64(7), int64(7)

	replies, err := e.Start(ctx, chatID, userID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(firstText(t, replies), "Ismingizni kiriting") {
		t.Errorf("start reply = %q", firstText(t, replies))
	}
	mustState(t, states, userID, stateWaitingIsm)

	// Single-character name is rejected and the state stays put.
	replies, err = e.Handle(ctx, chatID, userID, dialog.Input{Text: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if firstText(t, replies) != msgIsmShort {
		t.Errorf("short name reply = %q", firstText(t, replies))
	}
	mustState(t, states, userID, stateWaitingIsm)

	// Two characters pass.
	if _, err := e.Handle(ctx, chatID, userID, dialog.Input{Text: "Al"}); err != nil {
		t.Fatal(err)
	}
	mustState(t, states, userID, stateWaitingFamiliya)

	if _, err := e.Handle(ctx, chatID, userID, dialog.Input{Text: "Rahimov"}); err != nil {
		t.Fatal(err)
	}
	mustState(t, states, userID, stateWaitingPhone)

	replies, err = e.Handle(ctx, chatID, userID, dialog.Input{ContactPhone: "901234567"})
	if err != nil {
		t.Fatal(err)
	}
	text := firstText(t, replies)
	if !strings.Contains(text, "muvaffaqiyatli yakunlandi") {
		t.Errorf("register reply = %q", text)
	}
	// Profile comes from the stored account, not from the dialog input.
	if !strings.Contains(text, "Akmal") || strings.Contains(text, "Al\n") {
		t.Errorf("profile not taken from stored account: %q", text)
	}
	mustState(t, states, userID, stateRegistered)
}

func TestRegistrationUnknownPhoneClearsDialog(t *testing.T) {
	ctx := context.Background()
	e, _, states := newTestEngine()
	const userID = int64(8)

	if _, err := e.Start(ctx, userID, userID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Handle(ctx, userID, userID, dialog.Input{Text: "Anvar"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Handle(ctx, userID, userID, dialog.Input{Text: "Karimov"}); err != nil {
		t.Fatal(err)
	}
	replies, err := e.Handle(ctx, userID, userID, dialog.Input{Text: "909999999"})
	if err != nil {
		t.Fatal(err)
	}
	if firstText(t, replies) != msgPhoneUnknown {
		t.Errorf("reply = %q", firstText(t, replies))
	}
	mustState(t, states, userID, state.StateNone)
}

func TestCancelResetsDialog(t *testing.T) {
	ctx := context.Background()
	e, _, states := newTestEngine()
	const userID = int64(9)

	if _, err := e.Start(ctx, userID, userID); err != nil {
		t.Fatal(err)
	}
	replies, err := e.Handle(ctx, userID, userID, dialog.Input{Text: btnCancel})
	if err != nil {
		t.Fatal(err)
	}
	if firstText(t, replies) != msgCancelled {
		t.Errorf("reply = %q", firstText(t, replies))
	}
	mustState(t, states, userID, state.StateNone)
	if e.InProgress(ctx, userID) {
		t.Error("dialog still in progress after cancel")
	}
}

func TestLinkSellerFlow(t *testing.T) {
	ctx := context.Background()
	e, f, states := newTestEngine()
	const userID = int64(10)
	f.byUser[userID] = &domain.Diller{ID: 1, Ism: "Akmal", Familiya: "Rahimov", TartibRaqami: "D1"}
	f.sellers["S7"] = &domain.Sotuvchi{
		ID: 7, Ism: "Aziz", Familiya: "Karimov",
		TelefonRaqam: "+998909876543", TartibRaqami: "S7", Status: domain.StatusActive,
	}
	if err := states.Set(ctx, userID, stateRegistered, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Handle(ctx, userID, userID, dialog.Input{Text: btnAddSeller}); err != nil {
		t.Fatal(err)
	}
	mustState(t, states, userID, stateAddingSeller)

	// Lowercase input is normalized before lookup.
	replies, err := e.Handle(ctx, userID, userID, dialog.Input{Text: "s7"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(firstText(t, replies), "muvaffaqiyatli qo'shildi") {
		t.Errorf("link reply = %q", firstText(t, replies))
	}
	mustState(t, states, userID, stateRegistered)

	// Linking the same code again yields the notice, not an error.
	if _, err := e.Handle(ctx, userID, userID, dialog.Input{Text: btnAddSeller}); err != nil {
		t.Fatal(err)
	}
	replies, err = e.Handle(ctx, userID, userID, dialog.Input{Text: "S7"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(firstText(t, replies), "allaqachon sizga biriktirilgan") {
		t.Errorf("double link reply = %q", firstText(t, replies))
	}

	// Unknown code keeps the dialog open.
	if _, err := e.Handle(ctx, userID, userID, dialog.Input{Text: btnAddSeller}); err != nil {
		t.Fatal(err)
	}
	replies, err = e.Handle(ctx, userID, userID, dialog.Input{Text: "S99"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(firstText(t, replies), "topilmadi") {
		t.Errorf("unknown code reply = %q", firstText(t, replies))
	}
	mustState(t, states, userID, stateAddingSeller)
}

func TestStatsMenu(t *testing.T) {
	ctx := context.Background()
	e, f, states := newTestEngine()
	const userID = int64(11)
	f.byUser[userID] = &domain.Diller{ID: 1, Ism: "Akmal", Familiya: "Rahimov", TartibRaqami: "D1"}
	f.stats = service.DealerStats{Buyurtmalar: 3, Summa: 4800000, Hisobga: 4320000, Sotuvchilar: 2}
	if err := states.Set(ctx, userID, stateRegistered, nil); err != nil {
		t.Fatal(err)
	}

	replies, err := e.Handle(ctx, userID, userID, dialog.Input{Text: btnStatsToday})
	if err != nil {
		t.Fatal(err)
	}
	text := firstText(t, replies)
	for _, want := range []string{"Bugungi", "D1", "Sotuvchilar: 2", "Buyurtmalar: 3", "4,800,000.00 UZS"} {
		if !strings.Contains(text, want) {
			t.Errorf("stats reply missing %q:\n%s", want, text)
		}
	}
}

func TestBackendFailureUnwindsToMainMenu(t *testing.T) {
	ctx := context.Background()
	e, f, states := newTestEngine()
	const userID = int64(12)
	f.byUser[userID] = &domain.Diller{ID: 1, Ism: "Akmal", Familiya: "Rahimov", TartibRaqami: "D1"}
	if err := states.Set(ctx, userID, stateRegistered, nil); err != nil {
		t.Fatal(err)
	}

	f.fail = errors.New("pq: connection refused")
	if _, err := e.Handle(ctx, userID, userID, dialog.Input{Text: btnMySellers}); err == nil {
		t.Fatal("expected the backend error to surface")
	}

	replies := e.Fail(ctx, userID)
	if firstText(t, replies) != msgGenErr {
		t.Errorf("recovery reply = %q", firstText(t, replies))
	}
	if len(replies[0].Rows) == 0 {
		t.Error("recovery reply should restore the main menu keyboard")
	}
	mustState(t, states, userID, stateRegistered)
}

func TestBackendFailureBeforeRegistrationClears(t *testing.T) {
	ctx := context.Background()
	e, _, states := newTestEngine()
	const userID = int64(13)

	if _, err := e.Start(ctx, userID, userID); err != nil {
		t.Fatal(err)
	}
	replies := e.Fail(ctx, userID)
	if firstText(t, replies) != msgGenErr {
		t.Errorf("recovery reply = %q", firstText(t, replies))
	}
	if !replies[0].Remove {
		t.Error("recovery reply should remove the dialog keyboard")
	}
	mustState(t, states, userID, state.StateNone)
}
