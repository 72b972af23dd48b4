// Package main provides the signalboard CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/signalboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
