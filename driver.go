package pimmsrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xastro/pimmsrun/catalog"
)

const defaultBinary = "pimms"

// Runner performs one subprocess round trip: feed the script to the tool,
// return the combined output.
//
// Runner is an interface to let front-ends and downstream tests substitute
// a canned transcript for a real tool installation.
type Runner interface {
	Run(ctx context.Context, script Script) (transcript string, err error)
}

// Driver owns the tool invocation: it serializes requests against its
// catalog, runs one exclusively-owned subprocess per call, and extracts
// the conversion factor from the captured transcript.
//
// A Driver is immutable after construction and safe for concurrent use;
// concurrent Convert calls own independent subprocesses.
type Driver struct {
	binary      string
	catalog     *catalog.Catalog
	logger      *slog.Logger
	commandFile bool
	runner      Runner
}

// Compile-time interface satisfaction check.
var _ Runner = (*Driver)(nil)

// NewDriver creates a Driver with the given options. The defaults run the
// "pimms" binary from PATH against the embedded catalog, feeding the
// script over stdin and logging nowhere.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		binary:  defaultBinary,
		catalog: catalog.Default(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Catalog returns the catalog the driver validates and serializes against.
func (d *Driver) Catalog() *catalog.Catalog { return d.catalog }

// Validate checks that the tool binary is available on PATH. An installed
// binary is an environment precondition; call this at startup to fail
// before the first conversion does.
func (d *Driver) Validate() error {
	if _, err := exec.LookPath(d.binary); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrToolNotFound, d.binary, err)
	}
	return nil
}

// Convert runs one conversion: validate, serialize, one subprocess round
// trip, extract. The returned Result carries the verbatim transcript and
// run metadata. Apply timeouts through ctx; cancellation kills the child,
// which is reaped before Convert returns on every path.
func (d *Driver) Convert(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	logger := d.logger.With("run_id", runID)

	script, err := BuildScript(req, d.catalog)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "serialized script", "script", script.String())

	runner := d.runner
	if runner == nil {
		runner = d
	}
	start := time.Now()
	transcript, err := runner.Run(ctx, script)
	elapsed := time.Since(start)
	logger.DebugContext(ctx, "session transcript", "transcript", transcript, "duration", elapsed)
	if err != nil {
		return nil, err
	}

	value, units, err := parseFactor(transcript, d.catalog.Pattern)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "conversion complete",
		"value", value, "units", units, "duration", elapsed)
	return &Result{
		RunID:      runID,
		Value:      value,
		Units:      units,
		Transcript: transcript,
		Duration:   elapsed,
	}, nil
}

// Run performs the subprocess round trip for an already-serialized script.
// It spawns exactly one child, blocks until it exits, and reaps it on
// every path (context cancellation kills it). The returned transcript is
// the combined stdout+stderr, verbatim.
//
// A missing binary yields ErrToolNotFound; a non-zero exit yields an
// *OutputError carrying the transcript and exit code.
func (d *Driver) Run(ctx context.Context, script Script) (string, error) {
	binary, err := exec.LookPath(d.binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrToolNotFound, d.binary, err)
	}

	var args []string
	if d.commandFile {
		path, cleanup, err := writeCommandFile(script)
		if err != nil {
			return "", err
		}
		defer cleanup()
		args = append(args, "@"+path)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if !d.commandFile {
		cmd.Stdin = strings.NewReader(script.String())
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	// Bound Wait on the output pipes so a grandchild holding them open
	// cannot stall reaping after the tool itself is killed.
	cmd.WaitDelay = 5 * time.Second

	runErr := cmd.Run()
	transcript := buf.String()
	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return transcript, fmt.Errorf("pimmsrun: run: %w", ctxErr)
		}
		var ee *exec.ExitError
		if errors.As(runErr, &ee) {
			return transcript, &OutputError{
				Transcript: transcript,
				ExitCode:   ee.ExitCode(),
				Err:        runErr,
			}
		}
		return transcript, fmt.Errorf("pimmsrun: run: %w", runErr)
	}
	return transcript, nil
}

// writeCommandFile writes the script to a temporary .xco command file and
// returns its path with a cleanup func.
func writeCommandFile(script Script) (string, func(), error) {
	f, err := os.CreateTemp("", "pimmsrun-*.xco")
	if err != nil {
		return "", nil, fmt.Errorf("pimmsrun: command file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.WriteString(script.String()); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("pimmsrun: command file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pimmsrun: command file: %w", err)
	}
	return path, cleanup, nil
}

// Convert is the single-call form: construct a Driver from opts, run one
// conversion, return the bare factor. Callers that need the transcript,
// units, or run metadata use [Driver.Convert].
func Convert(ctx context.Context, req Request, opts ...Option) (float64, error) {
	res, err := NewDriver(opts...).Convert(ctx, req)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}
