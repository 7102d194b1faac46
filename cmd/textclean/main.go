// Package main is the entry point for the textclean CLI.
package main

import (
	"os"

	"github.com/jmylchreest/textclean/cmd/textclean/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
