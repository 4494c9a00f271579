package ingest

import (
	"context"
	"sync"
	"testing"

	"github.com/savdohub/savdobot/internal/domain"
)

const paymentText = `To'lov muvaffaqiyatli o'tdi

Operatsiya raqami: 666247
Tranzaksiya IDsi: 181818244
Terminal ID: 92A0012
Merchant ID: 907123456
🕗 Vaqt: 14.01.2026 17:15
Mijozning telefon raqami: 998901234567
Mijozning ismi: AZIZBEK KARIMOV
Muddat: 12 oy
Summa: 4,800,000.00 UZS
Hisobingizga o'tkaziladi: 4,320,000.00 UZS
Do'kon manzili: Toshkent sh., Chilonzor tumani`

type memStore struct {
	mu   sync.Mutex
	rows map[[2]int64]*domain.Payment
}

func newMemStore() *memStore {
	return &memStore{rows: map[[2]int64]*domain.Payment{}}
}

func (s *memStore) key(messageID int, chatID int64) [2]int64 {
	return [2]int64{int64(messageID), chatID}
}

func (s *memStore) ExistsByMessage(ctx context.Context, messageID int, chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[s.key(messageID, chatID)]
	return ok, nil
}

func (s *memStore) Insert(ctx context.Context, p *domain.Payment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(p.TgMessageID, p.TgChatID)
	if _, ok := s.rows[k]; ok {
		return false, nil
	}
	s.rows[k] = p
	return true, nil
}

func TestProcessSavesPayment(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := New(store, nil)

	out, err := p.Process(ctx, Message{MessageID: 42, ChatID: -100123, ChatType: "supergroup", Text: paymentText})
	if err != nil {
		t.Fatal(err)
	}
	if out != OutcomeSaved {
		t.Fatalf("outcome = %v, want OutcomeSaved", out)
	}

	saved := store.rows[store.key(42, -100123)]
	if saved == nil {
		t.Fatal("payment not stored")
	}
	if saved.OperatsiyaRaqami != "666247" {
		t.Errorf("OperatsiyaRaqami = %q", saved.OperatsiyaRaqami)
	}
	if saved.DokonManzili == nil || *saved.DokonManzili != "Toshkent sh., Chilonzor tumani" {
		t.Error("DokonManzili not carried over")
	}

	snap := p.Counters()
	if snap.Checked != 1 || snap.Found != 1 || snap.Saved != 1 {
		t.Errorf("counters = %+v", snap)
	}
}

func TestProcessIdempotent(t *testing.T) {
	ctx := context.Background()
	p := New(newMemStore(), nil)
	msg := Message{MessageID: 42, ChatID: -100123, ChatType: "group", Text: paymentText}

	if out, _ := p.Process(ctx, msg); out != OutcomeSaved {
		t.Fatalf("first pass = %v", out)
	}
	// Same source message again, e.g. an edit.
	if out, _ := p.Process(ctx, msg); out != OutcomeDuplicate {
		t.Fatalf("second pass = %v, want OutcomeDuplicate", out)
	}

	snap := p.Counters()
	if snap.Saved != 1 || snap.Duplicates != 1 {
		t.Errorf("counters = %+v", snap)
	}
}

func TestProcessFilters(t *testing.T) {
	ctx := context.Background()
	p := New(newMemStore(), []int64{-100123})

	if out, _ := p.Process(ctx, Message{ChatType: "private", Text: paymentText}); out != OutcomeIgnored {
		t.Errorf("private chat = %v, want OutcomeIgnored", out)
	}
	if out, _ := p.Process(ctx, Message{ChatID: -100999, ChatType: "group", Text: paymentText}); out != OutcomeSkippedChat {
		t.Errorf("foreign chat = %v, want OutcomeSkippedChat", out)
	}
	if out, _ := p.Process(ctx, Message{ChatID: -100123, ChatType: "group", Text: "salom"}); out != OutcomeNotPayment {
		t.Errorf("chat text = %v, want OutcomeNotPayment", out)
	}

	snap := p.Counters()
	if snap.Checked != 1 || snap.Found != 0 {
		t.Errorf("counters = %+v", snap)
	}
}

func TestProcessParseFailureCounted(t *testing.T) {
	ctx := context.Background()
	p := New(newMemStore(), nil)

	// Template matches but the sums are missing: fails closed.
	broken := `To'lov muvaffaqiyatli o'tdi
Operatsiya raqami: 1
Tranzaksiya IDsi: 2
Terminal ID: A3
Merchant ID: 4
Vaqt: 14.01.2026 17:15
Mijozning telefon raqami: 998901234567
Mijozning ismi: TEST USER
Muddat: 6 oy`
	out, err := p.Process(ctx, Message{MessageID: 1, ChatID: -1, ChatType: "group", Text: broken})
	if err != nil {
		t.Fatal(err)
	}
	if out != OutcomeParseError {
		t.Fatalf("outcome = %v, want OutcomeParseError", out)
	}
	if snap := p.Counters(); snap.ParseErrors != 1 || snap.Saved != 0 {
		t.Errorf("counters = %+v", snap)
	}
}
