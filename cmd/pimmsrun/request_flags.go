package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xastro/pimmsrun"
)

// requestFlags assembles a pimmsrun.Request from command-line flags.
// Shared by the convert and script commands.
type requestFlags struct {
	flux       float64
	mission    string
	detector   string
	filter     string
	model      string
	params     []float64
	nh         float64
	redshift   float64
	galnh      float64
	from       string
	to         string
	unabsorbed bool
}

func (rf *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rf.flux, "flux", 0, "observed source flux in ergs/s/cm2 (required)")
	cmd.Flags().StringVar(&rf.mission, "mission", "", "mission code (e.g. xmm); omit for a model flux")
	cmd.Flags().StringVar(&rf.detector, "detector", "", "detector code (e.g. pn)")
	cmd.Flags().StringVar(&rf.filter, "filter", "", "filter code (e.g. thin)")
	cmd.Flags().StringVar(&rf.model, "model", "powerlaw", "spectral model name")
	cmd.Flags().Float64SliceVar(&rf.params, "par", nil, "model parameter, repeatable in model order")
	cmd.Flags().Float64Var(&rf.nh, "nh", 0, "absorption column density in cm-2 (default 1e19)")
	cmd.Flags().Float64Var(&rf.redshift, "z", 0, "source redshift (0 = rest frame)")
	cmd.Flags().Float64Var(&rf.galnh, "galnh", 0, "Galactic column density in cm-2 (default 1e19)")
	cmd.Flags().StringVar(&rf.from, "from", "", "input energy band in keV as lo:hi (default 0.5:2)")
	cmd.Flags().StringVar(&rf.to, "to", "", "output energy band in keV as lo:hi (default 0.5:2)")
	cmd.Flags().BoolVar(&rf.unabsorbed, "unabsorbed", false, "absorption-corrected output (flux mode only)")
	_ = cmd.MarkFlagRequired("flux")
}

func (rf *requestFlags) request() (pimmsrun.Request, error) {
	inputRange, err := parseRange(rf.from)
	if err != nil {
		return pimmsrun.Request{}, fmt.Errorf("--from: %w", err)
	}
	outputRange, err := parseRange(rf.to)
	if err != nil {
		return pimmsrun.Request{}, fmt.Errorf("--to: %w", err)
	}
	return pimmsrun.Request{
		Flux:        rf.flux,
		Mission:     rf.mission,
		Detector:    rf.detector,
		Filter:      rf.filter,
		Model:       rf.model,
		Params:      rf.params,
		NH:          rf.nh,
		Redshift:    rf.redshift,
		GalacticNH:  rf.galnh,
		InputRange:  inputRange,
		OutputRange: outputRange,
		Unabsorbed:  rf.unabsorbed,
	}, nil
}

// parseRange parses a "lo:hi" energy band. Empty input yields the zero
// range, which the library maps to its default band.
func parseRange(s string) (pimmsrun.EnergyRange, error) {
	if s == "" {
		return pimmsrun.EnergyRange{}, nil
	}
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return pimmsrun.EnergyRange{}, fmt.Errorf("expected lo:hi, got %q", s)
	}
	low, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return pimmsrun.EnergyRange{}, fmt.Errorf("lower bound %q: %w", lo, err)
	}
	high, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return pimmsrun.EnergyRange{}, fmt.Errorf("upper bound %q: %w", hi, err)
	}
	return pimmsrun.EnergyRange{Low: low, High: high}, nil
}
