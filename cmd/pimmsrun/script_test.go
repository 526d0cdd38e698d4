//go:build !windows

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptCmd_GoldenOutput(t *testing.T) {
	out, err := execute(t, "script",
		"--flux", "1e-14",
		"--mission", "xmm", "--detector", "pn", "--filter", "thin",
		"--model", "powerlaw", "--par", "2.0",
		"--nh", "1e22", "--z", "3.0", "--galnh", "1e20",
		"--from", "0.5:2", "--to", "2:10")
	require.NoError(t, err)

	assert.Equal(t,
		"mo powerlaw 2 1e+22 z 3 1e+20\n"+
			"inst xmm pn thin 2-10\n"+
			"from flux ergs 0.5-2\n"+
			"go 1e-14\n"+
			"q\n",
		out)
}

func TestScriptCmd_FluxMode(t *testing.T) {
	out, err := execute(t, "script", "--flux", "2e-13", "--par", "1.8",
		"--unabsorbed")
	require.NoError(t, err)
	assert.Contains(t, out, "inst flux ergs 0.5-2 unabsorbed\n")
}

func TestScriptCmd_UserCatalog(t *testing.T) {
	// A user catalog replaces the embedded tables wholesale.
	path := filepath.Join(t.TempDir(), "catalog.toml")
	doc := `
[pattern]
marker = "* PIMMS predicts"
value_token = 3
fallback_from_end = 2

[[model]]
name = "powerlaw"
command = "powerlaw"
params = ["phoindex"]

[[instrument]]
mission = "athena"
detector = "wfi"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := execute(t, "script", "--catalog", path,
		"--flux", "1e-14", "--mission", "athena", "--detector", "wfi",
		"--par", "2.0")
	require.NoError(t, err)
	assert.Contains(t, out, "inst athena wfi 0.5-2\n")

	// The embedded xmm tables are gone under the override.
	_, err = execute(t, "script", "--catalog", path,
		"--flux", "1e-14", "--mission", "xmm", "--detector", "pn",
		"--filter", "thin", "--par", "2.0")
	assert.Error(t, err)
}

func TestScriptCmd_MalformedCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pattern"), 0o600))

	_, err := execute(t, "script", "--catalog", path,
		"--flux", "1e-14", "--par", "2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading catalog")
}
