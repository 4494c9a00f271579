// Command savdobot runs the payment collection platform: the dealer and
// seller bots, the group watcher, migrations and account management.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
