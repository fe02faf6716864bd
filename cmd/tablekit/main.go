// Package main provides the TableKit command-line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/tablekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
