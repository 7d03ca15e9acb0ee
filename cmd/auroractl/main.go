package main

import (
	"os"

	"aurora_backend/cmd/auroractl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
