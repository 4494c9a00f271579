// Package ingest turns group messages into stored payment rows. It classifies
// each message against the payment template, dedupes by source message and
// keeps running counters.
package ingest

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/savdohub/savdobot/core/logger"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/payparse"
)

// Store is the payment persistence the pipeline writes to.
type Store interface {
	ExistsByMessage(ctx context.Context, tgMessageID int, tgChatID int64) (bool, error)
	Insert(ctx context.Context, p *domain.Payment) (bool, error)
}

// Message is one candidate group message.
type Message struct {
	MessageID int
	ChatID    int64
	ChatType  string
	Text      string
}

// Outcome classifies what the pipeline did with a message.
type Outcome int

const (
	// OutcomeIgnored means the message came from a non-group chat.
	OutcomeIgnored Outcome = iota
	// OutcomeSkippedChat means the chat is not on the allow-list.
	OutcomeSkippedChat
	// OutcomeNotPayment means the text does not match the payment template.
	OutcomeNotPayment
	// OutcomeParseError means the template matched but a mandatory field
	// was missing or malformed.
	OutcomeParseError
	// OutcomeDuplicate means the source message was already ingested.
	OutcomeDuplicate
	// OutcomeSaved means a new payment row was stored.
	OutcomeSaved
)

// Snapshot is a point-in-time copy of the pipeline counters.
type Snapshot struct {
	Checked     int64
	Found       int64
	Saved       int64
	Duplicates  int64
	ParseErrors int64
}

// Pipeline ingests payment messages from monitored groups. An empty allow-list
// monitors every group the bot is in.
type Pipeline struct {
	store   Store
	allowed map[int64]bool

	checked     atomic.Int64
	found       atomic.Int64
	saved       atomic.Int64
	duplicates  atomic.Int64
	parseErrors atomic.Int64
}

// New builds a pipeline over the store, restricted to allowedChatIDs.
func New(store Store, allowedChatIDs []int64) *Pipeline {
	allowed := make(map[int64]bool, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = true
	}
	return &Pipeline{store: store, allowed: allowed}
}

// Allowed reports whether messages from the chat are processed.
func (p *Pipeline) Allowed(chatID int64) bool {
	return len(p.allowed) == 0 || p.allowed[chatID]
}

// Process runs one message through the pipeline. Both fresh and edited
// messages go through the same path; the unique source-message index keeps
// ingestion idempotent either way.
func (p *Pipeline) Process(ctx context.Context, msg Message) (Outcome, error) {
	if msg.ChatType != "group" && msg.ChatType != "supergroup" {
		return OutcomeIgnored, nil
	}
	if !p.Allowed(msg.ChatID) {
		return OutcomeSkippedChat, nil
	}

	p.checked.Add(1)
	if msg.Text == "" || !payparse.IsPaymentMessage(msg.Text) {
		return OutcomeNotPayment, nil
	}
	p.found.Add(1)

	exists, err := p.store.ExistsByMessage(ctx, msg.MessageID, msg.ChatID)
	if err != nil {
		return OutcomeNotPayment, err
	}
	if exists {
		p.duplicates.Add(1)
		return OutcomeDuplicate, nil
	}

	parsed, ok := payparse.Parse(msg.Text)
	if !ok {
		p.parseErrors.Add(1)
		logger.Warn(ctx, "ingest", "payment.parse_failed",
			slog.Int64("chat_id", msg.ChatID), slog.Int("message_id", msg.MessageID))
		return OutcomeParseError, nil
	}

	payment := &domain.Payment{
		OperatsiyaRaqami:       parsed.OperatsiyaRaqami,
		TranzaksiyaID:          parsed.TranzaksiyaID,
		TerminalID:             parsed.TerminalID,
		MerchantID:             parsed.MerchantID,
		Vaqt:                   parsed.Vaqt,
		MijozTelefon:           parsed.MijozTelefon,
		MijozIsmi:              parsed.MijozIsmi,
		Muddat:                 parsed.Muddat,
		Summa:                  parsed.Summa,
		HisobgaOtkazilganSumma: parsed.HisobgaOtkazilganSumma,
		OriginalMessage:        parsed.OriginalMessage,
		TgMessageID:            msg.MessageID,
		TgChatID:               msg.ChatID,
	}
	if parsed.DokonManzili != "" {
		payment.DokonManzili = &parsed.DokonManzili
	}

	inserted, err := p.store.Insert(ctx, payment)
	if err != nil {
		return OutcomeNotPayment, err
	}
	if !inserted {
		// Lost an insert race with a concurrent worker.
		p.duplicates.Add(1)
		return OutcomeDuplicate, nil
	}

	p.saved.Add(1)
	logger.LogEvent(ctx, logger.ING, slog.LevelInfo, "payment.saved",
		slog.String("operatsiya", payment.OperatsiyaRaqami),
		slog.String("tranzaksiya", payment.TranzaksiyaID),
		slog.String("summa", payment.Summa),
		slog.Int64("chat_id", msg.ChatID),
		slog.Int64("total_saved", p.saved.Load()))
	return OutcomeSaved, nil
}

// Counters returns a snapshot of the pipeline counters.
func (p *Pipeline) Counters() Snapshot {
	return Snapshot{
		Checked:     p.checked.Load(),
		Found:       p.found.Load(),
		Saved:       p.saved.Load(),
		Duplicates:  p.duplicates.Load(),
		ParseErrors: p.parseErrors.Load(),
	}
}
