// Package main is the entry point for the geosql CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/geosql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
