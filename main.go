package main

import (
	"os"

	"github.com/deckweaver/deckweaver/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
