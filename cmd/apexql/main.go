// Package main provides the apexql CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/apexql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
