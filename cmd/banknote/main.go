package main

import (
	"os"

	"github.com/banknote-dev/banknote/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
