package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidCatalog indicates a catalog document that fails structural
// validation (duplicate entries, empty names, unusable pattern indices).
var ErrInvalidCatalog = errors.New("catalog: invalid catalog")

// Instrument is one supported mission/detector combination.
// Filters lists the valid filter answers for the combination; an empty
// list means the tool presents no filter step for it.
type Instrument struct {
	Mission  string   `toml:"mission"`
	Detector string   `toml:"detector"`
	Filters  []string `toml:"filters,omitempty"`
}

// HasFilterStep reports whether the tool expects a filter answer for
// this instrument.
func (i Instrument) HasFilterStep() bool { return len(i.Filters) > 0 }

// HasFilter reports whether name is a valid filter for this instrument.
// The comparison is case-insensitive.
func (i Instrument) HasFilter(name string) bool {
	for _, f := range i.Filters {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// Model is one spectral model. Command is the word emitted on the "mo"
// line, which may differ from Name (PIMMS spells a cut-off power law as
// plain "powerlaw" with extra parameters). Params names the ordered
// model parameters a request must supply.
type Model struct {
	Name    string   `toml:"name"`
	Command string   `toml:"command"`
	Params  []string `toml:"params"`
}

// ResultPattern locates the conversion factor in the session transcript.
// Lines beginning with Marker carry the value at whitespace token
// ValueToken (zero-based), or — when that token is not numeric, as on
// flux-mode prediction lines — at FallbackFromEnd tokens from the end.
type ResultPattern struct {
	Marker          string `toml:"marker"`
	ValueToken      int    `toml:"value_token"`
	FallbackFromEnd int    `toml:"fallback_from_end"`
}

// Catalog aggregates the version-dependent tables for one PIMMS release.
type Catalog struct {
	Pattern     ResultPattern `toml:"pattern"`
	Models      []Model       `toml:"model"`
	Instruments []Instrument  `toml:"instrument"`
}

// Load parses and validates a TOML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// LoadFile parses and validates a TOML catalog file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Model returns the spectral model with the given name.
// The lookup is case-insensitive.
func (c *Catalog) Model(name string) (Model, bool) {
	for _, m := range c.Models {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Model{}, false
}

// Instrument returns the entry for the given mission/detector pair.
// The lookup is case-insensitive.
func (c *Catalog) Instrument(mission, detector string) (Instrument, bool) {
	for _, inst := range c.Instruments {
		if strings.EqualFold(inst.Mission, mission) && strings.EqualFold(inst.Detector, detector) {
			return inst, true
		}
	}
	return Instrument{}, false
}

// HasMission reports whether any instrument entry belongs to mission.
func (c *Catalog) HasMission(mission string) bool {
	for _, inst := range c.Instruments {
		if strings.EqualFold(inst.Mission, mission) {
			return true
		}
	}
	return false
}

// Missions returns the sorted, deduplicated mission names.
func (c *Catalog) Missions() []string {
	var out []string
	for _, inst := range c.Instruments {
		name := strings.ToLower(inst.Mission)
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Detectors returns the detector names for mission, in table order.
func (c *Catalog) Detectors(mission string) []string {
	var out []string
	for _, inst := range c.Instruments {
		if strings.EqualFold(inst.Mission, mission) {
			out = append(out, strings.ToLower(inst.Detector))
		}
	}
	return out
}

// validate checks structural soundness of the tables. Violations wrap
// ErrInvalidCatalog.
func (c *Catalog) validate() error {
	if c.Pattern.Marker == "" {
		return fmt.Errorf("%w: pattern.marker is empty", ErrInvalidCatalog)
	}
	if c.Pattern.ValueToken < 0 {
		return fmt.Errorf("%w: pattern.value_token %d is negative", ErrInvalidCatalog, c.Pattern.ValueToken)
	}
	if c.Pattern.FallbackFromEnd < 1 {
		return fmt.Errorf("%w: pattern.fallback_from_end %d must be at least 1", ErrInvalidCatalog, c.Pattern.FallbackFromEnd)
	}

	seenModels := map[string]bool{}
	for _, m := range c.Models {
		name := strings.ToLower(m.Name)
		if name == "" {
			return fmt.Errorf("%w: model with empty name", ErrInvalidCatalog)
		}
		if m.Command == "" {
			return fmt.Errorf("%w: model %q has no command word", ErrInvalidCatalog, m.Name)
		}
		if seenModels[name] {
			return fmt.Errorf("%w: duplicate model %q", ErrInvalidCatalog, m.Name)
		}
		seenModels[name] = true
	}

	seenInst := map[string]bool{}
	for _, inst := range c.Instruments {
		if inst.Mission == "" || inst.Detector == "" {
			return fmt.Errorf("%w: instrument with empty mission or detector", ErrInvalidCatalog)
		}
		key := strings.ToLower(inst.Mission) + "/" + strings.ToLower(inst.Detector)
		if seenInst[key] {
			return fmt.Errorf("%w: duplicate instrument %s", ErrInvalidCatalog, key)
		}
		seenInst[key] = true
		for _, f := range inst.Filters {
			if f == "" {
				return fmt.Errorf("%w: instrument %s has an empty filter name", ErrInvalidCatalog, key)
			}
		}
	}
	return nil
}
