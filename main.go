package main

import (
	"os"

	"github.com/ff6editor/pluginvet/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
