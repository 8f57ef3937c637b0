package main

import (
	"os"

	"github.com/fzhao70/dview/cmd/dview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
