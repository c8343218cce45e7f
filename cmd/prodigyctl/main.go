package main

import (
	"os"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/cli"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/commands"
)

func main() {
	cli.LoadEnvFile()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
