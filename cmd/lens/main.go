// cmd/lens/main.go
//
// This is the entry point for the lens CLI.
// Run `lens` inside a project to open the interactive review; the
// subcommands print, dump and edit the same exercise without a TUI.

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
