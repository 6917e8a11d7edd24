package main

import (
	"os"

	"github.com/ledgerline-systems/paddlehook/cmd/paddlectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
