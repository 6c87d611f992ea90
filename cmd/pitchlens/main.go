package main

import (
	"os"

	"github.com/saisirisha1111/pitchlens/cmd/pitchlens/commands"
)

// main is the entry point for the pitchlens CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
