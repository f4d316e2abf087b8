package main

import (
	"os"

	"github.com/timmit98/parse-and-track-spending/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
