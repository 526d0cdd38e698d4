// Command pimmsrun is the CLI front-end for the pimmsrun library: it
// converts fluxes through a local PIMMS installation, prints command
// scripts for diagnosis, lists the catalog tables, and serves the
// conversion over MCP.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.Stderr.WriteString("pimmsrun: load .env: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
