// Package main provides the sqldivider CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqldivider/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
