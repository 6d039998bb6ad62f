// Package main is the entry point for the sasce CLI binary.
package main

import (
	"os"

	"sasce-admin/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
