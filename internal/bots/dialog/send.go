package dialog

import (
	tele "gopkg.in/telebot.v4"

	"github.com/savdohub/savdobot/core/telegram/helpers"
	"github.com/savdohub/savdobot/core/telegram/keyboard"
)

// Send delivers the replies over the Telegram context, translating the
// keyboard fields into telebot markup.
func Send(c tele.Context, replies []Reply) error {
	for _, r := range replies {
		if err := helpers.SendText(c, r.Text, Markup(r)); err != nil {
			return err
		}
	}
	return nil
}

// Markup converts one reply's keyboard into telebot markup, or nil when the
// reply keeps the current keyboard.
func Markup(r Reply) *tele.ReplyMarkup {
	switch {
	case len(r.Inline) > 0:
		rows := make([][]keyboard.InlineBtn, len(r.Inline))
		for i, row := range r.Inline {
			btns := make([]keyboard.InlineBtn, len(row))
			for j, b := range row {
				btns[j] = keyboard.InlineBtn{Text: b.Text, Unique: b.Unique, Data: b.Data}
			}
			rows[i] = btns
		}
		return keyboard.InlineButtonsRows(rows...)
	case len(r.Rows) > 0:
		return keyboard.ReplyButtons(r.Rows...)
	case r.Contact != "":
		markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
		markup.Reply(markup.Row(markup.Contact(r.Contact)))
		return markup
	case r.Remove:
		return keyboard.RemoveKeyboard()
	}
	return nil
}
