// Package dialog carries the pure data exchanged between a bot engine and the
// Telegram transport: what the user sent, and what the bot answers with. The
// engines stay testable because none of this touches the Bot API.
package dialog

// Input is one user message as the engine sees it.
type Input struct {
	Text         string
	ContactPhone string
}

// Button is one inline keyboard button.
type Button struct {
	Text   string
	Unique string
	Data   string
}

// Reply is one outgoing message. At most one keyboard field is set: Rows for
// a reply keyboard, Inline for an inline keyboard, Contact for a single
// contact-request button, Remove to hide the current keyboard.
type Reply struct {
	Text    string
	Remove  bool
	Contact string
	Rows    [][]string
	Inline  [][]Button
}

// Text builds a plain reply that keeps the current keyboard.
func Text(text string) Reply {
	return Reply{Text: text}
}

// WithKeyboard builds a reply carrying a reply keyboard.
func WithKeyboard(text string, rows ...[]string) Reply {
	return Reply{Text: text, Rows: rows}
}

// WithRemove builds a reply that hides the keyboard.
func WithRemove(text string) Reply {
	return Reply{Text: text, Remove: true}
}

// WithContact builds a reply with a single contact-request button.
func WithContact(text, button string) Reply {
	return Reply{Text: text, Contact: button}
}

// WithInline builds a reply carrying an inline keyboard.
func WithInline(text string, rows ...[]Button) Reply {
	return Reply{Text: text, Inline: rows}
}
