package main

import (
	"os"

	"lingo/cmd/lingo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
