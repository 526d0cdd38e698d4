// Package pimmstest provides test support for packages that drive the
// conversion tool: executable fake-tool scripts written into temp dirs
// and canned session transcripts, so the full subprocess round trip can
// be exercised without a PIMMS installation.
package pimmstest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Canned transcripts mirroring real tool sessions.
const (
	// TranscriptXMMPN is an instrument-mode session: the prediction line
	// carries the count rate at the primary value token.
	TranscriptXMMPN = ` * PIMMS version 4.12c
PIMMS > mo powerlaw 2 1e+22 z 3 1e+20
 * Current model is power law, photon index = 2.0000
 * Galactic absorption nH = 1.000E+20 at z=0, intrinsic nH = 1.000E+22 at z=3.000
PIMMS > inst xmm pn thin 2-10
 * Simulation product is XMM EPIC pn counts with Thin filter
PIMMS > from flux ergs 0.5-2
PIMMS > go 1e-14
* PIMMS predicts 1.704E-03 cps with XMM/EPIC pn (Thin filter)
PIMMS > q
`

	// TranscriptFluxMode is a flux-output session: the prediction line
	// interposes words before the value, so only the fallback token
	// position parses.
	TranscriptFluxMode = ` * PIMMS version 4.12c
PIMMS > mo powerlaw 1.8 1e+21
PIMMS > inst flux ergs 2-10
PIMMS > from flux ergs 0.5-2
PIMMS > go 3.2e-13
* PIMMS predicts a flux (     2.000- 10.000keV) of 1.061E-13 ergs/cm/cm/s
PIMMS > q
`

	// TranscriptNoResult is a session that ran but never predicted,
	// e.g. after the tool rejected the instrument line.
	TranscriptNoResult = ` * PIMMS version 4.12c
PIMMS > mo powerlaw 2 1e+22
PIMMS > inst xmn pn thin 2-10
 !! Unknown mission: XMN
PIMMS > q
`

	// TranscriptBadToken carries the marker with a non-numeric value token.
	TranscriptBadToken = `* PIMMS predicts NaN_token cps
`
)

// WriteTool writes an executable fake tool into a temp dir: it drains
// stdin, prints transcript on stdout, and exits with exitCode. Returns
// the tool path.
func WriteTool(t testing.TB, transcript string, exitCode int) string {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\ncat >/dev/null\n%s\nexit %d\n",
		emitTranscript(transcript), exitCode)
	return writeExecutable(t, script)
}

// WriteRecorderTool writes a fake tool that additionally copies its input
// to recordPath — the script lines from stdin, or from the command file
// when invoked with an @file argument — so tests can assert the exact
// serialized script that reached the tool.
func WriteRecorderTool(t testing.TB, recordPath, transcript string) string {
	t.Helper()
	script := fmt.Sprintf(`#!/bin/sh
case "$1" in
@*) cat "${1#@}" >%q ;;
*) cat >%q ;;
esac
%s
`, recordPath, recordPath, emitTranscript(transcript))
	return writeExecutable(t, script)
}

// WriteHangingTool writes a fake tool that drains stdin and then sleeps,
// for exercising caller-side cancellation.
func WriteHangingTool(t testing.TB) string {
	t.Helper()
	return writeExecutable(t, "#!/bin/sh\ncat >/dev/null\nexec sleep 60\n")
}

// emitTranscript renders a shell fragment that prints transcript verbatim.
func emitTranscript(transcript string) string {
	if strings.Contains(transcript, "PIMMSTEST_EOF") {
		panic("pimmstest: transcript contains the heredoc delimiter")
	}
	return "cat <<'PIMMSTEST_EOF'\n" + strings.TrimSuffix(transcript, "\n") + "\nPIMMSTEST_EOF"
}

func writeExecutable(t testing.TB, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pimms")
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod fake tool: %v", err)
	}
	return path
}
