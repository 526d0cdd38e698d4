package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xastro/pimmsrun"
	"github.com/xastro/pimmsrun/catalog"
)

// Environment variables honored when the matching flag is unset.
const (
	envBinary  = "PIMMSRUN_BINARY"
	envCatalog = "PIMMSRUN_CATALOG"
)

// app carries the persistent-flag state and the driver built from it.
type app struct {
	binary      string
	catalogPath string
	verbose     bool

	driver  *pimmsrun.Driver
	catalog *catalog.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "pimmsrun",
		Short: "Convert astrophysical fluxes through the PIMMS simulator",
		Long: `pimmsrun drives HEASARC's PIMMS simulator as a subprocess: it builds
the command script PIMMS expects, runs one session, and extracts the
predicted conversion factor.

PIMMS must be installed separately; pimmsrun finds it on PATH, via
--binary, or via the PIMMSRUN_BINARY environment variable.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.binary, "binary", "",
		"pimms binary name or path (default $PIMMSRUN_BINARY, then \"pimms\")")
	cmd.PersistentFlags().StringVar(&a.catalogPath, "catalog", "",
		"catalog TOML file overriding the embedded tables (default $PIMMSRUN_CATALOG)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"debug logging to stderr (scripts and transcripts)")

	cmd.AddCommand(
		newConvertCmd(a),
		newScriptCmd(a),
		newMissionsCmd(a),
		newModelsCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup resolves the persistent flags into a catalog and a driver.
// Runs before every subcommand.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	if a.binary == "" {
		a.binary = os.Getenv(envBinary)
	}
	if a.catalogPath == "" {
		a.catalogPath = os.Getenv(envCatalog)
	}

	a.catalog = catalog.Default()
	if a.catalogPath != "" {
		cat, err := catalog.LoadFile(a.catalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		a.catalog = cat
	}

	logger := slog.New(slog.DiscardHandler)
	if a.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	a.driver = pimmsrun.NewDriver(
		pimmsrun.WithBinary(a.binary),
		pimmsrun.WithCatalog(a.catalog),
		pimmsrun.WithLogger(logger),
	)
	return nil
}
