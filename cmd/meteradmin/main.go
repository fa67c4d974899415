package main

import (
	"os"

	"meteradmin/cmd/meteradmin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
