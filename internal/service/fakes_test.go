package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
)

type edge struct{ dillerID, sotuvchiID int64 }

// fakeStore backs all three store interfaces with in-memory maps.
type fakeStore struct {
	mu       sync.Mutex
	dillers  map[int64]*domain.Diller
	sellers  map[int64]*domain.Sotuvchi
	payments map[int64]*domain.Payment
	edges    map[edge]bool
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		dillers:  map[int64]*domain.Diller{},
		sellers:  map[int64]*domain.Sotuvchi{},
		payments: map[int64]*domain.Payment{},
		edges:    map[edge]bool{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Create(ctx context.Context, ism, familiya, telefon string) (*domain.Diller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	d := &domain.Diller{ID: id, Ism: ism, Familiya: familiya, TelefonRaqam: telefon,
		TartibRaqami: fmt.Sprintf("D%d", id), Status: domain.StatusActive}
	f.dillers[id] = d
	out := *d
	return &out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Diller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.dillers[id]; ok {
		out := *d
		return &out, nil
	}
	return nil, nil
}

func (f *fakeStore) GetByPhone(ctx context.Context, telefon string) (*domain.Diller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.dillers {
		if d.TelefonRaqam == telefon {
			out := *d
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByTgUserID(ctx context.Context, tgUserID int64) (*domain.Diller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.dillers {
		if d.TgUserID != nil && *d.TgUserID == tgUserID {
			out := *d
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) BindTelegram(ctx context.Context, id, tgChatID, tgUserID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.dillers[id]
	if !ok {
		return fmt.Errorf("diller %d not found", id)
	}
	d.TgChatID = &tgChatID
	d.TgUserID = &tgUserID
	return nil
}

func (f *fakeStore) LinkSotuvchi(ctx context.Context, dillerID, sotuvchiID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := edge{dillerID, sotuvchiID}
	if f.edges[e] {
		return false, nil
	}
	f.edges[e] = true
	return true, nil
}

func (f *fakeStore) ListSotuvchilar(ctx context.Context, dillerID int64) ([]domain.Sotuvchi, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Sotuvchi
	for e := range f.edges {
		if e.dillerID == dillerID {
			out = append(out, *f.sellers[e.sotuvchiID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// sellerStore exposes the same fakeStore through the SotuvchiStore interface.
// The Create/Get method set collides with the dealer one, so it is a thin view.
type sellerStore struct{ f *fakeStore }

func (s sellerStore) Create(ctx context.Context, ism, familiya, telefon string) (*domain.Sotuvchi, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	id := s.f.id()
	sot := &domain.Sotuvchi{ID: id, Ism: ism, Familiya: familiya, TelefonRaqam: telefon,
		TartibRaqami: fmt.Sprintf("S%d", id), Status: domain.StatusActive}
	s.f.sellers[id] = sot
	out := *sot
	return &out, nil
}

func (s sellerStore) GetByID(ctx context.Context, id int64) (*domain.Sotuvchi, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if sot, ok := s.f.sellers[id]; ok {
		out := *sot
		return &out, nil
	}
	return nil, nil
}

func (s sellerStore) GetByPhone(ctx context.Context, telefon string) (*domain.Sotuvchi, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, sot := range s.f.sellers {
		if sot.TelefonRaqam == telefon {
			out := *sot
			return &out, nil
		}
	}
	return nil, nil
}

func (s sellerStore) GetByTgUserID(ctx context.Context, tgUserID int64) (*domain.Sotuvchi, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, sot := range s.f.sellers {
		if sot.TgUserID != nil && *sot.TgUserID == tgUserID {
			out := *sot
			return &out, nil
		}
	}
	return nil, nil
}

func (s sellerStore) GetByTartibRaqami(ctx context.Context, code string) (*domain.Sotuvchi, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, sot := range s.f.sellers {
		if sot.TartibRaqami == code {
			out := *sot
			return &out, nil
		}
	}
	return nil, nil
}

func (s sellerStore) BindTelegram(ctx context.Context, id, tgChatID, tgUserID int64) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	sot, ok := s.f.sellers[id]
	if !ok {
		return fmt.Errorf("sotuvchi %d not found", id)
	}
	sot.TgChatID = &tgChatID
	sot.TgUserID = &tgUserID
	return nil
}

func (s sellerStore) ListDillerlar(ctx context.Context, sotuvchiID int64) ([]domain.Diller, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var out []domain.Diller
	for e := range s.f.edges {
		if e.sotuvchiID == sotuvchiID {
			out = append(out, *s.f.dillers[e.dillerID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type paymentStore struct{ f *fakeStore }

func (p paymentStore) Insert(ctx context.Context, pay *domain.Payment) (bool, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	for _, existing := range p.f.payments {
		if existing.TgMessageID == pay.TgMessageID && existing.TgChatID == pay.TgChatID {
			return false, nil
		}
	}
	stored := *pay
	stored.ID = p.f.id()
	p.f.payments[stored.ID] = &stored
	pay.ID = stored.ID
	return true, nil
}

func (p paymentStore) ExistsByMessage(ctx context.Context, tgMessageID int, tgChatID int64) (bool, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	for _, existing := range p.f.payments {
		if existing.TgMessageID == tgMessageID && existing.TgChatID == tgChatID {
			return true, nil
		}
	}
	return false, nil
}

func (p paymentStore) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	if pay, ok := p.f.payments[id]; ok {
		out := *pay
		return &out, nil
	}
	return nil, nil
}

func (p paymentStore) SearchUnclaimedBySuffix(ctx context.Context, suffix string) ([]domain.Payment, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	var out []domain.Payment
	for _, pay := range p.f.payments {
		if pay.SotuvchiID == nil && strings.HasSuffix(pay.MijozTelefon, suffix) {
			out = append(out, *pay)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vaqt.After(out[j].Vaqt) })
	return out, nil
}

func (p paymentStore) CountBySuffix(ctx context.Context, suffix string) (int, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	n := 0
	for _, pay := range p.f.payments {
		if strings.HasSuffix(pay.MijozTelefon, suffix) {
			n++
		}
	}
	return n, nil
}

func (p paymentStore) Claim(ctx context.Context, paymentID, sotuvchiID int64) (bool, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	pay, ok := p.f.payments[paymentID]
	if !ok || pay.SotuvchiID != nil {
		return false, nil
	}
	pay.SotuvchiID = &sotuvchiID
	return true, nil
}

func (p paymentStore) ListClaimedBySellers(ctx context.Context, sellerIDs []int64, limit int) ([]domain.Payment, error) {
	out, err := p.ListClaimedBySellersInWindow(ctx, sellerIDs, period.Window{})
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p paymentStore) ListClaimedBySellersInWindow(ctx context.Context, sellerIDs []int64, w period.Window) ([]domain.Payment, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	wanted := map[int64]bool{}
	for _, id := range sellerIDs {
		wanted[id] = true
	}
	var out []domain.Payment
	for _, pay := range p.f.payments {
		if pay.SotuvchiID == nil || !wanted[*pay.SotuvchiID] {
			continue
		}
		if w.Bounded() && !w.Contains(pay.Vaqt) {
			continue
		}
		out = append(out, *pay)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vaqt.After(out[j].Vaqt) })
	return out, nil
}

func (p paymentStore) CountAll(ctx context.Context) (int, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	return len(p.f.payments), nil
}

func (p paymentStore) CountSince(ctx context.Context, t time.Time) (int, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	n := 0
	for _, pay := range p.f.payments {
		if !pay.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}
