package main

import (
	"os"

	"github.com/kmctl-dev/kmctl/pkg/cli"
	"github.com/kmctl-dev/kmctl/pkg/cli/config"
)

func main() {
	// Deletes are confirmed interactively unless --yes is passed.
	config.SetConfirmDeletes(true)

	if err := cli.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
