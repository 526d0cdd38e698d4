package pimmsrun

import (
	"log/slog"

	"github.com/xastro/pimmsrun/catalog"
)

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithBinary overrides the tool binary name or path.
// Empty values are ignored; the default is "pimms".
func WithBinary(path string) Option {
	return func(d *Driver) {
		if path != "" {
			d.binary = path
		}
	}
}

// WithCatalog replaces the embedded catalog, e.g. one loaded from a user
// TOML file for a diverging tool version. Nil values are ignored.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(d *Driver) {
		if cat != nil {
			d.catalog = cat
		}
	}
}

// WithLogger sets the structured logger. The driver logs the serialized
// script and the verbatim transcript at Debug and one completion record
// per run at Info. Nil values are ignored; the default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithCommandFile makes the driver pass the script as a temporary
// command file ("@file" argument) instead of writing it to the tool's
// stdin. The file is removed when the run finishes.
func WithCommandFile(enabled bool) Option {
	return func(d *Driver) {
		d.commandFile = enabled
	}
}

// WithRunner replaces the subprocess round trip, e.g. with a canned
// transcript in tests or a remote execution shim. Nil values are ignored;
// the default runs the tool locally.
func WithRunner(r Runner) Option {
	return func(d *Driver) {
		if r != nil {
			d.runner = r
		}
	}
}
