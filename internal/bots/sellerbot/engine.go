// Package sellerbot implements the seller-facing bot: registration, browsing
// orders per dealer, claiming payments by customer phone and statistics.
package sellerbot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/savdohub/savdobot/core/telegram/state"
	"github.com/savdohub/savdobot/internal/bots/dialog"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/period"
	"github.com/savdohub/savdobot/internal/phone"
	"github.com/savdohub/savdobot/internal/service"
)

const (
	stateWaitingIsm       state.State = "waiting_ism"
	stateWaitingFamiliya  state.State = "waiting_familiya"
	stateWaitingPhone     state.State = "waiting_phone"
	stateRegistered       state.State = "registered"
	stateAddingOrderPhone state.State = "adding_buyurtma_phone"
	stateSelectingTx      state.State = "selecting_transaction"
	stateConfirming       state.State = "confirming_buyurtma"
	stateSelectingDealer  state.State = "selecting_diller"
)

// Session data keys.
const (
	keyPendingPayment = "pending_payment_id"
	keyPendingIDs     = "pending_ids"
	keySearchPhone    = "search_phone"
	keySelectedDealer = "selected_diller_id"
	keyPurpose        = "purpose"
)

// Dealer selection purposes.
const (
	purposeOrdersMenu = "orders_menu"
	purposeOrdersList = "orders_list"
	purposeStats      = "statistika"
)

const orderListLimit = 20

// SellerService is the slice of the seller service the engine needs.
type SellerService interface {
	FindByTelegram(ctx context.Context, tgUserID int64) (*domain.Sotuvchi, error)
	Register(ctx context.Context, tgChatID, tgUserID int64, rawPhone string) (*domain.Sotuvchi, error)
	Dealers(ctx context.Context, sotuvchiID int64) ([]domain.Diller, error)
}

// PaymentService is the slice of the payment service the engine needs.
type PaymentService interface {
	SearchClaimable(ctx context.Context, suffix string) (*service.SearchResult, error)
	Claim(ctx context.Context, paymentID, sotuvchiID int64) (*service.ClaimResult, error)
	Payment(ctx context.Context, id int64) (*domain.Payment, error)
	DealerOrders(ctx context.Context, dillerID int64, limit int) ([]domain.Payment, error)
	DealerStatistics(ctx context.Context, dillerID int64, p period.Period, now time.Time) (*service.DealerStats, error)
}

// Engine drives the seller dialog.
type Engine struct {
	states   state.Manager
	sellers  SellerService
	payments PaymentService
	now      func() time.Time
}

// NewEngine builds the seller dialog engine.
func NewEngine(states state.Manager, sellers SellerService, payments PaymentService) *Engine {
	return &Engine{states: states, sellers: sellers, payments: payments, now: time.Now}
}

// InProgress reports whether the user has an active dialog session.
func (e *Engine) InProgress(ctx context.Context, userID int64) bool {
	s, err := e.states.Get(ctx, userID)
	return err == nil && s.State != state.StateNone
}

// Start handles /start.
func (e *Engine) Start(ctx context.Context, chatID, userID int64) ([]dialog.Reply, error) {
	sot, err := e.sellers.FindByTelegram(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot != nil {
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(greeting(sot), mainMenuRows...)}, nil
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
		return e.handleCancel(ctx, userID, s.State)
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
		return e.handleMenu(ctx, userID, s, text)
	case stateAddingOrderPhone:
		return e.handleOrderPhone(ctx, userID, text)
	case stateSelectingTx:
		return []dialog.Reply{dialog.Text(msgUseButtons)}, nil
	case stateConfirming:
		return e.handleConfirm(ctx, userID, s, text)
	case stateSelectingDealer:
		return e.handleDealerChoice(ctx, userID, s, text)
	}
	return nil, nil
}

func (e *Engine) handleCancel(ctx context.Context, userID int64, st state.State) ([]dialog.Reply, error) {
	switch st {
	case stateConfirming, stateSelectingTx:
		msg := msgClaimCancel
		if st == stateSelectingTx {
			msg = msgSelectCancel
		}
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		multi, _ := e.multiDealer(ctx, userID)
		return []dialog.Reply{dialog.WithKeyboard(msg, ordersMenuRows(multi)...)}, nil
	case stateAddingOrderPhone, stateSelectingDealer:
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgCancelled, mainMenuRows...)}, nil
	}
	if err := e.states.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithRemove(msgCancelled)}, nil
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
	case stateAddingOrderPhone:
		return []dialog.Reply{dialog.WithKeyboard(msgAskOrderPhoneShort, retryRows...)}
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

	sot, err := e.sellers.Register(ctx, chatID, userID, raw)
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
	return []dialog.Reply{dialog.WithKeyboard(registered(sot), mainMenuRows...)}, nil
}

func (e *Engine) handleMenu(ctx context.Context, userID int64, s state.Session, text string) ([]dialog.Reply, error) {
	switch text {
	case btnOrders:
		return e.openOrders(ctx, userID)
	case btnMyOrders:
		return e.showMyOrders(ctx, userID, s)
	case btnAddOrder:
		if err := e.states.Set(ctx, userID, stateAddingOrderPhone, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgAskOrderPhone, cancelRows...)}, nil
	case btnPickDealer:
		return e.switchDealer(ctx, userID)
	case btnMainMenu:
		return []dialog.Reply{dialog.WithKeyboard(msgMainMenu, mainMenuRows...)}, nil
	case btnStats:
		return e.openStats(ctx, userID)
	case btnSettings:
		return []dialog.Reply{dialog.WithKeyboard(msgSettings, backRows...)}, nil
	}
	if p, ok := periodByButton[text]; ok {
		return e.showStats(ctx, userID, s, p)
	}
	// Unknown text lands back in the main menu.
	return []dialog.Reply{dialog.WithKeyboard(msgMainMenu, mainMenuRows...)}, nil
}

func (e *Engine) sellerAndDealers(ctx context.Context, userID int64) (*domain.Sotuvchi, []domain.Diller, error) {
	sot, err := e.sellers.FindByTelegram(ctx, userID)
	if err != nil || sot == nil {
		return sot, nil, err
	}
	dealers, err := e.sellers.Dealers(ctx, sot.ID)
	if err != nil {
		return nil, nil, err
	}
	return sot, dealers, nil
}

func (e *Engine) multiDealer(ctx context.Context, userID int64) (bool, error) {
	_, dealers, err := e.sellerAndDealers(ctx, userID)
	return len(dealers) > 1, err
}

func (e *Engine) openOrders(ctx context.Context, userID int64) ([]dialog.Reply, error) {
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	switch {
	case len(dealers) == 0:
		return []dialog.Reply{dialog.WithKeyboard(msgOrdersNoDealer, backRows...)}, nil
	case len(dealers) == 1:
		patch := map[string]string{keySelectedDealer: formatID(dealers[0].ID)}
		if err := e.states.Set(ctx, userID, stateRegistered, patch); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgOrdersMenu, ordersMenuRows(false)...)}, nil
	}
	patch := map[string]string{keyPurpose: purposeOrdersMenu}
	if err := e.states.Set(ctx, userID, stateSelectingDealer, patch); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(msgPickDealerOrders, dealerSelectionRows(dealers)...)}, nil
}

func (e *Engine) showMyOrders(ctx context.Context, userID int64, s state.Session) ([]dialog.Reply, error) {
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	multi := len(dealers) > 1

	if d, ok := pickDealer(dealers, s.Data[keySelectedDealer]); ok {
		return e.renderOrders(ctx, d, multi)
	}
	switch {
	case len(dealers) == 0:
		return []dialog.Reply{dialog.WithKeyboard(msgListNoDealer, ordersMenuRows(false)...)}, nil
	case len(dealers) == 1:
		patch := map[string]string{keySelectedDealer: formatID(dealers[0].ID)}
		if err := e.states.Set(ctx, userID, stateRegistered, patch); err != nil {
			return nil, err
		}
		return e.renderOrders(ctx, dealers[0], multi)
	}
	patch := map[string]string{keyPurpose: purposeOrdersList}
	if err := e.states.Set(ctx, userID, stateSelectingDealer, patch); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(msgPickDealerList, dealerSelectionRows(dealers)...)}, nil
}

func (e *Engine) renderOrders(ctx context.Context, d domain.Diller, multi bool) ([]dialog.Reply, error) {
	orders, err := e.payments.DealerOrders(ctx, d.ID, orderListLimit)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []dialog.Reply{dialog.WithKeyboard(noOrdersForDealer(d), ordersMenuRows(multi)...)}, nil
	}
	return []dialog.Reply{dialog.WithKeyboard(orderList(d, orders), ordersMenuRows(multi)...)}, nil
}

func (e *Engine) switchDealer(ctx context.Context, userID int64) ([]dialog.Reply, error) {
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	if len(dealers) <= 1 {
		return []dialog.Reply{dialog.WithKeyboard(msgOnlyOneDealer, ordersMenuRows(false)...)}, nil
	}
	patch := map[string]string{keyPurpose: purposeOrdersMenu}
	if err := e.states.Set(ctx, userID, stateSelectingDealer, patch); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(msgPickDealerOrders, dealerSelectionRows(dealers)...)}, nil
}

func (e *Engine) openStats(ctx context.Context, userID int64) ([]dialog.Reply, error) {
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	switch {
	case len(dealers) == 0:
		return []dialog.Reply{dialog.WithKeyboard(msgStatsNoDealer, backRows...)}, nil
	case len(dealers) == 1:
		patch := map[string]string{keySelectedDealer: formatID(dealers[0].ID)}
		if err := e.states.Set(ctx, userID, stateRegistered, patch); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgStatsPeriod, statsRows...)}, nil
	}
	patch := map[string]string{keyPurpose: purposeStats}
	if err := e.states.Set(ctx, userID, stateSelectingDealer, patch); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(msgPickDealerStats, dealerSelectionRows(dealers)...)}, nil
}

func (e *Engine) showStats(ctx context.Context, userID int64, s state.Session, p period.Period) ([]dialog.Reply, error) {
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}
	d, ok := pickDealer(dealers, s.Data[keySelectedDealer])
	if !ok {
		if len(dealers) != 1 {
			// Stale period press without a chosen dealer; restart the pick.
			patch := map[string]string{keyPurpose: purposeStats}
			if err := e.states.Set(ctx, userID, stateSelectingDealer, patch); err != nil {
				return nil, err
			}
			return []dialog.Reply{dialog.WithKeyboard(msgPickDealerStats, dealerSelectionRows(dealers)...)}, nil
		}
		d = dealers[0]
		patch := map[string]string{keySelectedDealer: formatID(d.ID)}
		if err := e.states.Set(ctx, userID, stateRegistered, patch); err != nil {
			return nil, err
		}
	}
	stats, err := e.payments.DealerStatistics(ctx, d.ID, p, e.now())
	if err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithKeyboard(statsMessage(d, sot.TartibRaqami, stats), statsRows...)}, nil
}

func (e *Engine) handleOrderPhone(ctx context.Context, userID int64, text string) ([]dialog.Reply, error) {
	if text == "" {
		return []dialog.Reply{dialog.WithKeyboard(msgOrderPhoneEmpty, retryRows...)}, nil
	}
	if !phone.IsSuffixQuery(text) {
		return []dialog.Reply{dialog.WithKeyboard(msgOrderPhoneFormat, retryRows...)}, nil
	}
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		if err := e.states.Clear(ctx, userID); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithRemove(msgGenErr)}, nil
	}
	multi := len(dealers) > 1

	res, err := e.payments.SearchClaimable(ctx, text)
	if err != nil {
		return nil, err
	}
	switch {
	case len(res.Candidates) == 0 && res.TotalMatches == 0:
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(noTransactions(text), ordersMenuRows(multi)...)}, nil
	case len(res.Candidates) == 0:
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(allTransactionsClaimed(text), ordersMenuRows(multi)...)}, nil
	case len(res.Candidates) == 1:
		patch := map[string]string{keyPendingPayment: formatID(res.Candidates[0].ID)}
		if err := e.states.Set(ctx, userID, stateConfirming, patch); err != nil {
			return nil, err
		}
		text := transactionDetails(&res.Candidates[0]) + "\n\n" + msgConfirmPrompt
		return []dialog.Reply{dialog.WithKeyboard(text, confirmRows...)}, nil
	}

	ids := make([]string, len(res.Candidates))
	for i, c := range res.Candidates {
		ids[i] = formatID(c.ID)
	}
	patch := map[string]string{
		keyPendingIDs:  strings.Join(ids, ","),
		keySearchPhone: text,
	}
	if err := e.states.Set(ctx, userID, stateSelectingTx, patch); err != nil {
		return nil, err
	}
	return []dialog.Reply{dialog.WithInline(candidateList(res.Candidates), candidateButtons(res.Candidates)...)}, nil
}

func (e *Engine) handleConfirm(ctx context.Context, userID int64, s state.Session, text string) ([]dialog.Reply, error) {
	if text != btnConfirm {
		return []dialog.Reply{dialog.WithKeyboard(msgConfirmPrompt, confirmRows...)}, nil
	}
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		if err := e.states.Clear(ctx, userID); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithRemove(msgGenErr)}, nil
	}
	multi := len(dealers) > 1
	menu := ordersMenuRows(multi)

	paymentID, err := strconv.ParseInt(s.Data[keyPendingPayment], 10, 64)
	if err != nil {
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgTxNotFound, menu...)}, nil
	}

	res, err := e.payments.Claim(ctx, paymentID, sot.ID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
				return nil, err
			}
			return []dialog.Reply{dialog.WithKeyboard(msgTxNotFound, menu...)}, nil
		}
		return nil, err
	}
	if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
		return nil, err
	}

	switch res.Outcome {
	case service.ClaimOK:
		text := msgClaimSuccess + "\n\n" + transactionDetails(res.Payment)
		return []dialog.Reply{dialog.WithKeyboard(text, menu...)}, nil
	case service.ClaimAlreadyYours:
		text := msgAlreadyMine + "\n\n" + transactionDetails(res.Payment)
		return []dialog.Reply{dialog.WithKeyboard(text, menu...)}, nil
	default:
		return []dialog.Reply{dialog.WithKeyboard(takenByOther(res.Claimant), menu...)}, nil
	}
}

func (e *Engine) handleDealerChoice(ctx context.Context, userID int64, s state.Session, text string) ([]dialog.Reply, error) {
	sot, dealers, err := e.sellerAndDealers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sot == nil {
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, err
		}
		return []dialog.Reply{dialog.WithKeyboard(msgGenErr, backRows...)}, nil
	}

	var chosen *domain.Diller
	for i, d := range dealers {
		if text == dealerButton(d) || strings.Contains(text, d.TartibRaqami) {
			chosen = &dealers[i]
			break
		}
	}
	if chosen == nil {
		return []dialog.Reply{dialog.WithKeyboard(msgBadDealerChoice, dealerSelectionRows(dealers)...)}, nil
	}

	multi := len(dealers) > 1
	patch := map[string]string{keySelectedDealer: formatID(chosen.ID)}
	if err := e.states.Set(ctx, userID, stateRegistered, patch); err != nil {
		return nil, err
	}

	switch s.Data[keyPurpose] {
	case purposeStats:
		return []dialog.Reply{dialog.WithKeyboard(msgStatsPeriod, statsRows...)}, nil
	case purposeOrdersList:
		return e.renderOrders(ctx, *chosen, multi)
	default:
		return []dialog.Reply{dialog.WithKeyboard(dealerChosen(*chosen), ordersMenuRows(multi)...)}, nil
	}
}

// Callback handles the inline transaction picker. A non-empty alert is shown
// to the user as a popup instead of a message.
func (e *Engine) Callback(ctx context.Context, chatID, userID int64, key, payload string) ([]dialog.Reply, string, error) {
	switch key {
	case cbSelectTransaction:
		return e.selectTransaction(ctx, userID, payload)
	case cbCancelSelection:
		if err := e.states.Set(ctx, userID, stateRegistered, nil); err != nil {
			return nil, "", err
		}
		multi, _ := e.multiDealer(ctx, userID)
		return []dialog.Reply{dialog.WithKeyboard(msgSelectCancel, ordersMenuRows(multi)...)}, "", nil
	}
	return nil, "", nil
}

func (e *Engine) selectTransaction(ctx context.Context, userID int64, payload string) ([]dialog.Reply, string, error) {
	s, err := e.states.Get(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if s.State != stateSelectingTx {
		return nil, alertStaleAction, nil
	}
	if !containsID(s.Data[keyPendingIDs], payload) {
		return nil, alertBadTx, nil
	}
	paymentID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return nil, alertBadTx, nil
	}

	p, err := e.payments.Payment(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, alertTxNotFound, nil
	}
	if p.Claimed() {
		return nil, alertTxTaken, nil
	}

	patch := map[string]string{keyPendingPayment: payload}
	if err := e.states.Set(ctx, userID, stateConfirming, patch); err != nil {
		return nil, "", err
	}
	text := transactionDetails(p) + "\n\n" + msgConfirmPrompt
	return []dialog.Reply{dialog.WithKeyboard(text, confirmRows...)}, "", nil
}

func pickDealer(dealers []domain.Diller, id string) (domain.Diller, bool) {
	if id == "" {
		return domain.Diller{}, false
	}
	for _, d := range dealers {
		if formatID(d.ID) == id {
			return d, true
		}
	}
	return domain.Diller{}, false
}

func containsID(joined, id string) bool {
	for _, part := range strings.Split(joined, ",") {
		if part == id {
			return true
		}
	}
	return false
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
