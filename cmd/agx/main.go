// Package main is the entry point for the agx CLI tool.
package main

import (
	"os"

	"github.com/agxtool/agx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
