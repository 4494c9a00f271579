// Package commands defines the command metadata consumed by the registry.
package commands

import tele "gopkg.in/telebot.v4"

// Command binds a slash command to its handler and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// PrivateOnly restricts the command to private chats; in groups it is ignored.
	PrivateOnly bool
	// Hidden keeps the command out of the Telegram command menu.
	Hidden  bool
	Aliases []string
}
