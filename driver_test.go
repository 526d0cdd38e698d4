//go:build !windows

package pimmsrun_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xastro/pimmsrun"
	"github.com/xastro/pimmsrun/pimmstest"
)

func documentedRequest() pimmsrun.Request {
	return pimmsrun.Request{
		Flux:        1e-14,
		Mission:     "xmm",
		Detector:    "pn",
		Filter:      "thin",
		Model:       "powerlaw",
		Params:      []float64{2.0},
		NH:          1e22,
		Redshift:    3.0,
		GalacticNH:  1e20,
		InputRange:  pimmsrun.EnergyRange{Low: 0.5, High: 2},
		OutputRange: pimmsrun.EnergyRange{Low: 2, High: 10},
	}
}

func TestDriver_Convert_EndToEnd(t *testing.T) {
	tool := pimmstest.WriteTool(t, pimmstest.TranscriptXMMPN, 0)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	res, err := drv.Convert(context.Background(), documentedRequest())
	require.NoError(t, err)

	assert.Equal(t, 0.001704, res.Value)
	assert.Equal(t, "cps", res.Units)
	assert.Equal(t, pimmstest.TranscriptXMMPN, res.Transcript)
	assert.NotEmpty(t, res.RunID)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestDriver_Convert_Deterministic(t *testing.T) {
	tool := pimmstest.WriteTool(t, pimmstest.TranscriptXMMPN, 0)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	first, err := drv.Convert(context.Background(), documentedRequest())
	require.NoError(t, err)
	second, err := drv.Convert(context.Background(), documentedRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestDriver_Convert_ScriptReachesTool(t *testing.T) {
	record := filepath.Join(t.TempDir(), "input")
	tool := pimmstest.WriteRecorderTool(t, record, pimmstest.TranscriptXMMPN)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	_, err := drv.Convert(context.Background(), documentedRequest())
	require.NoError(t, err)

	got, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t,
		"mo powerlaw 2 1e+22 z 3 1e+20\n"+
			"inst xmm pn thin 2-10\n"+
			"from flux ergs 0.5-2\n"+
			"go 1e-14\n"+
			"q\n",
		string(got))
}

func TestDriver_Convert_CommandFileMode(t *testing.T) {
	record := filepath.Join(t.TempDir(), "input")
	tool := pimmstest.WriteRecorderTool(t, record, pimmstest.TranscriptXMMPN)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool), pimmsrun.WithCommandFile(true))

	res, err := drv.Convert(context.Background(), documentedRequest())
	require.NoError(t, err)
	assert.Equal(t, 0.001704, res.Value)

	// The same script lines reached the tool through the @file argument.
	got, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Contains(t, string(got), "go 1e-14\n")

	// No command files are left behind.
	leftovers, err := filepath.Glob(filepath.Join(os.TempDir(), "pimmsrun-*.xco"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDriver_Convert_ToolNotFound(t *testing.T) {
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(filepath.Join(t.TempDir(), "no-such-pimms")))

	_, err := drv.Convert(context.Background(), documentedRequest())
	assert.ErrorIs(t, err, pimmsrun.ErrToolNotFound)
}

func TestDriver_Convert_NonzeroExit(t *testing.T) {
	tool := pimmstest.WriteTool(t, "license check failed", 3)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	_, err := drv.Convert(context.Background(), documentedRequest())

	var outErr *pimmsrun.OutputError
	require.ErrorAs(t, err, &outErr)
	assert.Equal(t, 3, outErr.ExitCode)
	assert.Contains(t, outErr.Transcript, "license check failed")
}

func TestDriver_Convert_NoResultCarriesVerbatimTranscript(t *testing.T) {
	tool := pimmstest.WriteTool(t, pimmstest.TranscriptNoResult, 0)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	_, err := drv.Convert(context.Background(), documentedRequest())

	assert.ErrorIs(t, err, pimmsrun.ErrNoResult)
	transcript, ok := pimmsrun.Transcript(err)
	require.True(t, ok)
	assert.Equal(t, pimmstest.TranscriptNoResult, transcript)
}

func TestDriver_Convert_ParseError(t *testing.T) {
	tool := pimmstest.WriteTool(t, pimmstest.TranscriptBadToken, 0)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	_, err := drv.Convert(context.Background(), documentedRequest())

	var parseErr *pimmsrun.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "NaN_token", parseErr.Token)
}

func TestDriver_Convert_InvalidRequestSkipsSpawn(t *testing.T) {
	// An invalid request fails before any subprocess runs, so a missing
	// binary is never noticed.
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(filepath.Join(t.TempDir(), "no-such-pimms")))

	_, err := drv.Convert(context.Background(), pimmsrun.Request{Flux: -1})
	assert.ErrorIs(t, err, pimmsrun.ErrInvalidRequest)
}

func TestDriver_Run_ContextCancellationKillsChild(t *testing.T) {
	tool := pimmstest.WriteHangingTool(t)
	drv := pimmsrun.NewDriver(pimmsrun.WithBinary(tool))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := drv.Run(ctx, pimmsrun.Script{"q"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second, "child was not killed on cancellation")
}

func TestDriver_Validate(t *testing.T) {
	tool := pimmstest.WriteTool(t, pimmstest.TranscriptXMMPN, 0)
	assert.NoError(t, pimmsrun.NewDriver(pimmsrun.WithBinary(tool)).Validate())

	missing := pimmsrun.NewDriver(pimmsrun.WithBinary(filepath.Join(t.TempDir(), "no-such-pimms")))
	assert.ErrorIs(t, missing.Validate(), pimmsrun.ErrToolNotFound)
}

func TestConvert_PackageLevel(t *testing.T) {
	tool := pimmstest.WriteTool(t, pimmstest.TranscriptXMMPN, 0)

	factor, err := pimmsrun.Convert(context.Background(), documentedRequest(),
		pimmsrun.WithBinary(tool))
	require.NoError(t, err)
	assert.Equal(t, 0.001704, factor)
}

func TestDriver_Convert_RunnerSeam(t *testing.T) {
	fake := runnerFunc(func(ctx context.Context, script pimmsrun.Script) (string, error) {
		return pimmstest.TranscriptFluxMode, nil
	})
	drv := pimmsrun.NewDriver(pimmsrun.WithRunner(fake))

	res, err := drv.Convert(context.Background(), pimmsrun.Request{
		Flux:   3.2e-13,
		Model:  "powerlaw",
		Params: []float64{1.8},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.061e-13, res.Value)
	assert.Equal(t, "ergs/cm/cm/s", res.Units)
}

func TestDriver_Convert_RunnerError(t *testing.T) {
	errBoom := errors.New("boom")
	fake := runnerFunc(func(ctx context.Context, script pimmsrun.Script) (string, error) {
		return "", errBoom
	})
	drv := pimmsrun.NewDriver(pimmsrun.WithRunner(fake))

	_, err := drv.Convert(context.Background(), documentedRequest())
	assert.ErrorIs(t, err, errBoom)
}

// runnerFunc adapts a func to the Runner interface.
type runnerFunc func(ctx context.Context, script pimmsrun.Script) (string, error)

func (f runnerFunc) Run(ctx context.Context, script pimmsrun.Script) (string, error) {
	return f(ctx, script)
}
