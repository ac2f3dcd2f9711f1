package main

import (
	"os"

	"github.com/quantlab/graham/cmd/graham/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
