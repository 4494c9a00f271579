// Package dealerbot implements the dealer-facing bot: registration of
// pre-created dealer accounts, linking sellers by code and statistics.
package dealerbot

import (
	"context"
	"strings"
	"time"

	"github.com/savdohub/savdobot/core/telegram/state"
	"github.com/savdohub/savdobot/internal/bots/dialog"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
	"github.com/savdohub/savdobot/internal/service"
)

const (
	stateWaitingIsm      state.State = "waiting_ism"
	stateWaitingFamiliya state.State = "waiting_familiya"
	stateWaitingPhone    state.State = "waiting_phone"
	stateRegistered      state.State = "registered"
	stateAddingSeller    state.State = "adding_sotuvchi_code"
)

// DealerService is the slice of the dealer service the engine needs.
type DealerService interface {
	FindByTelegram(ctx context.Context, tgUserID int64) (*domain.Diller, error)
	Register(ctx context.Context, tgChatID, tgUserID int64, rawPhone string) (*domain.Diller, error)
	LinkSeller(ctx context.Context, dillerID int64, code string) (*domain.Sotuvchi, bool, error)
	Sellers(ctx context.Context, dillerID int64) ([]domain.Sotuvchi, error)
}

// StatsService provides the dealer statistics aggregation.
type StatsService interface {
	DealerStatistics(ctx context.Context, dillerID int64, p period.Period, now time.Time) (*service.DealerStats, error)
}

// Engine drives the dealer dialog. It is transport-free: the adapter feeds it
// inputs and sends back the replies.
type Engine struct {
	states  state.Manager
	dealers DealerService
	stats   StatsService
	now     func() time.Time
}

// NewEngine builds the dealer dialog engine.
func NewEngine(states state.Manager, dealers DealerService, stats StatsService) *Engine {
	return &Engine{states: states, dealers: dealers, stats: stats, now: time.Now}
}

// InProgress reports whether the user has an active dialog session.
func (e *Engine) InProgress(ctx context.Context, userID int64) bool {
	s, err := e.states.Get(ctx, userID)
	return err == nil && s.State != state.StateNone
}

// Start handles /start: an already bound dealer lands in the main menu,
// everyone else enters the registration dialog.
func (e *Engine) Start(ctx context.Context, chatID, userID int64) ([]dialog.Reply, error) {
	d, err := e.dealers.FindByTelegram(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d != nil {
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(greeting(d), mainMenuRows...)}, nil
	}
	if err := e.states.Clear(ctx, userID); err != nil {
		return nil, err
	}
	if err := e.states.Set(ctx, userID, stateWaitingIsm, nil); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithRemove(msgStartRegistration)}, nil
}

// Handle routes one non-command message through the dialog.
func (e *Engine) Handle(ctx context.Context, chatID, userID int64, in dialog.Input) ([]dialog.Reply, error) {
	s, err := e.states.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)

	if text == btnCancel {
		if err := e.states.Clear(ctx, userID); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithRemove(msgCancelled)}, nil
	}
	if text == btnRetry {
		return e.reprompt(s.State), nil
	}

	switch s.State {
	case stateWaitingIsm:
		return e.handleIsm(ctx, userID, text)
	case stateWaitingFamiliya:
		return e.handleFamiliya(ctx, userID, text)
	case stateWaitingPhone:
		return e.handlePhone(ctx, chatID, userID, in, text)
	case stateRegistered:
		return e.handleMenu(ctx, userID, text)
	case stateAddingSeller:
		return e.handleSellerCode(ctx, userID, text)
	}
	return nil, nil
}

// Fail answers an infrastructure error: the user gets a generic failure
// message and the dialog unwinds to the main menu, or is cleared entirely
// when registration never completed. The reset is best effort; the reply
// goes out regardless.
func (e *Engine) Fail(ctx context.Context, userID int64) []dialog.Reply {
	s, err := e.states.Get(ctx, userID)
	if err != nil || preRegistration(s.State) {
		_ = e.states.Clear(ctx, userID)
		return []dialog.Reply{dialog.WithRemove(msgGenErr)}
	}
	_ = e.states.Set(ctx, userID, stateRegistered, nil)
	return []dialog.Reply{dialog.WithKeyboard(msgGenErr, mainMenuRows...)}
}

func preRegistration(st state.State) bool {
	switch st {
	case stateWaitingIsm, stateWaitingFamiliya, stateWaitingPhone, state.StateNone:
		return true
	}
	return false
}

func (e *Engine) reprompt(st state.State) []dialog.Reply {
	switch st {
	case stateWaitingIsm:
		return []dialog.Reply{dialog.WithKeyboard(msgAskIsm, retryRows...)}
	case stateWaitingFamiliya:
		return []dialog.Reply{dialog.WithKeyboard(msgAskFamiliya, retryRows...)}
	case stateWaitingPhone:
		return []dialog.Reply{dialog.WithContact(msgAskPhone, btnSendContact)}
	case stateAddingSeller:
		return []dialog.Reply{dialog.WithKeyboard(msgAskSellerCode, cancelRows...)}
	}
	return nil
}

func (e *Engine) handleIsm(ctx context.Context, userID int64, text string) ([]dialog.Reply, error) {
	name, err := service.ValidateName(text)
	if err != nil {
		return []dialog.Reply{dialog.WithKeyboard(msgIsmShort, retryRows...)}, nil
	}
	if err := e.states.Set(ctx, userID, stateWaitingFamiliya, map[string]string{"ism": name}); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(msgAskFamiliya, retryRows...)}, nil
}

func (e *Engine) handleFamiliya(ctx context.Context, userID int64, text string) ([]dialog.Reply, error) {
	name, err := service.ValidateName(text)
	if err != nil {
		return []dialog.Reply{dialog.WithKeyboard(msgFamShort, retryRows...)}, nil
	}
	if err := e.states.Set(ctx, userID, stateWaitingPhone, map[string]string{"familiya": name}); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithContact(msgAskPhone, btnSendContact)}, nil
}

func (e *Engine) handlePhone(ctx context.Context, chatID, userID int64, in dialog.Input, text string) ([]dialog.Reply, error) {
	raw := in.ContactPhone
	if raw == "" {
		raw = text
	}
	if raw == "" {
		return []dialog.Reply{dialog.WithContact(msgPhoneAbsent, btnSendContact)}, nil
	}

	d, err := e.dealers.Register(ctx, chatID, userID, raw)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindValidation:
			return []dialog.Reply{dialog.WithContact(msgPhoneFormat, btnSendContact)}, nil
		case domain.KindNotFound:
			if err := e.states.Clear(ctx, userID); err != nil {
				return nil, err
			}
			return []dialog.Reply{dialog.WithRemove(msgPhoneUnknown)}, nil
		case domain.KindConflict:
			if err := e.states.Clear(ctx, userID); err != nil {
				return nil, err
			}
			return []dialog.Reply{dialog.WithRemove(msgPhoneTaken)}, nil
		}
		return nil, err
	}
	if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(registered(d), mainMenuRows...)}, nil
}

func (e *Engine) handleMenu(ctx context.Context, userID int64, text string) ([]dialog.Reply, error) {
	switch text {
	case btnSellers:
		return []dialog.Reply{dialog.WithKeyboard(msgSellersMenu, sellersMenuRows...)}, nil
	case btnMySellers:
		return e.showSellers(ctx, userID)
	case btnAddSeller:
		if err := e.states.Set(ctx, userID, stateAddingSeller, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgAskSellerCode, cancelRows...)}, nil
	case btnMainMenu:
		return []dialog.Reply{dialog.WithKeyboard(msgMainMenu, mainMenuRows...)}, nil
	case btnStats:
		return []dialog.Reply{dialog.WithKeyboard(msgStatsPeriod, statsRows...)}, nil
	case btnSettings:
		return []dialog.Reply{dialog.WithKeyboard(msgSettings, backRows...)}, nil
	}
	if p, ok := periodByButton[text]; ok {
		return e.showStats(ctx, userID, p)
	}
	// Unknown text lands back in the main menu.
	return []dialog.Reply{dialog.WithKeyboard(msgMainMenu, mainMenuRows...)}, nil
}

func (e *Engine) showSellers(ctx context.Context, userID int64) ([]dialog.Reply, error) {
	d, err := e.dealers.FindByTelegram(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	sellers, err := e.dealers.Sellers(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if len(sellers) == 0 {
		return []dialog.Reply{dialog.WithKeyboard(msgNoSellers, sellersMenuRows...)}, nil
	}
	return []dialog.Reply{dialog.WithKeyboard(sellerList(sellers), sellersMenuRows...)}, nil
}

func (e *Engine) showStats(ctx context.Context, userID int64, p period.Period) ([]dialog.Reply, error) {
	d, err := e.dealers.FindByTelegram(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	stats, err := e.stats.DealerStatistics(ctx, d.ID, p, e.now())
	if err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(statsMessage(d, stats), statsRows...)}, nil
}

func (e *Engine) handleSellerCode(ctx context.Context, userID int64, text string) ([]dialog.Reply, error) {
	if text == "" {
		return []dialog.Reply{dialog.WithKeyboard(msgSellerCodeEmpty, retryRows...)}, nil
	}
	d, err := e.dealers.FindByTelegram(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		if err := e.states.Clear(ctx, userID); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithRemove(msgGenErr)}, nil
	}

	code := strings.ToUpper(text)
	sot, linked, err := e.dealers.LinkSeller(ctx, d.ID, code)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindValidation:
			return []dialog.Reply{dialog.WithKeyboard(msgSellerCodeFormat, retryRows...)}, nil
		case domain.KindNotFound:
			return []dialog.Reply{dialog.WithKeyboard(sellerNotFound(code), cancelRows...)}, nil
		}
		return nil, err
	}
	if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
		return nil, err
	}
	if !linked {
		return []dialog.Reply{dialog.WithKeyboard(sellerAlreadyLinked(code, sot), sellersMenuRows...)}, nil
	}
	return []dialog.Reply{dialog.WithKeyboard(sellerLinked(sot), sellersMenuRows...)}, nil
}
