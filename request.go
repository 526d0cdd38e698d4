package pimmsrun

import (
	"fmt"
	"math"

	"github.com/xastro/pimmsrun/catalog"
)

// Defaults applied by BuildScript for zero-valued optional fields.
const (
	// DefaultNH is the absorption column density in cm^-2 when
	// Request.NH is zero.
	DefaultNH = 1e19

	// DefaultGalacticNH is the Galactic column density in cm^-2 when
	// Request.Redshift is set but Request.GalacticNH is zero.
	DefaultGalacticNH = 1e19
)

// DefaultEnergyRange is the energy band in keV when a Request range is
// the zero value.
var DefaultEnergyRange = EnergyRange{Low: 0.5, High: 2}

// EnergyRange is a pair of keV band bounds.
type EnergyRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// IsZero reports whether the range is unset (both bounds zero).
func (r EnergyRange) IsZero() bool { return r.Low == 0 && r.High == 0 }

// Request holds the parameters of one flux conversion.
//
// Request is a value type — it carries no runtime state and exists only
// for the duration of one Convert call. The zero values of NH, GalacticNH,
// InputRange, and OutputRange mean "use the default".
type Request struct {
	// Flux is the observed source flux in ergs/s/cm2. Required, positive.
	Flux float64 `json:"flux"`

	// Mission is the mission code (e.g. "xmm"). Empty selects flux-output
	// mode: no instrument response is applied and the result is a model
	// flux rather than a count rate.
	Mission string `json:"mission,omitempty"`

	// Detector is the detector code (e.g. "pn"). Required when Mission
	// is set; (Mission, Detector) must be a catalog entry.
	Detector string `json:"detector,omitempty"`

	// Filter is the filter code (e.g. "thin"). Required when the catalog
	// entry has a filter step, forbidden otherwise.
	Filter string `json:"filter,omitempty"`

	// Model is the spectral model name. Empty means "powerlaw".
	Model string `json:"model,omitempty"`

	// Params are the ordered model parameters per the catalog's
	// parameter list for Model (e.g. the photon index for a power law).
	Params []float64 `json:"params"`

	// NH is the absorption column density in cm^-2. Zero means DefaultNH.
	NH float64 `json:"nh,omitempty"`

	// Redshift of the source. Zero computes the spectrum at rest frame;
	// a positive value adds a Galactic absorption component.
	Redshift float64 `json:"z,omitempty"`

	// GalacticNH is the Galactic column density in cm^-2, used only when
	// Redshift is positive. Zero means DefaultGalacticNH.
	GalacticNH float64 `json:"galnh,omitempty"`

	// InputRange is the energy band of the input flux.
	InputRange EnergyRange `json:"input_range"`

	// OutputRange is the energy band of the predicted output.
	OutputRange EnergyRange `json:"output_range"`

	// Unabsorbed requests the intrinsic, absorption-corrected output.
	// Honored only in flux-output mode; with an instrument the output is
	// always the absorbed count rate.
	Unabsorbed bool `json:"unabsorbed,omitempty"`
}

// ModelName returns Model, or "powerlaw" when unset.
func (r Request) ModelName() string {
	if r.Model == "" {
		return "powerlaw"
	}
	return r.Model
}

// Validate checks the request against the catalog tables. Violations wrap
// ErrInvalidRequest.
func (r Request) Validate(cat *catalog.Catalog) error {
	if !(r.Flux > 0) || math.IsInf(r.Flux, 1) {
		return fmt.Errorf("%w: flux must be positive and finite, got %g", ErrInvalidRequest, r.Flux)
	}

	model, ok := cat.Model(r.ModelName())
	if !ok {
		return fmt.Errorf("%w: unknown model %q", ErrInvalidRequest, r.ModelName())
	}
	if len(r.Params) != len(model.Params) {
		return fmt.Errorf("%w: model %q expects %d parameters (%v), got %d",
			ErrInvalidRequest, model.Name, len(model.Params), model.Params, len(r.Params))
	}
	for i, p := range r.Params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: parameter %s is not finite", ErrInvalidRequest, model.Params[i])
		}
	}

	if r.NH < 0 || math.IsNaN(r.NH) || math.IsInf(r.NH, 0) {
		return fmt.Errorf("%w: nh must be non-negative and finite, got %g", ErrInvalidRequest, r.NH)
	}
	if r.Redshift < 0 || math.IsNaN(r.Redshift) || math.IsInf(r.Redshift, 0) {
		return fmt.Errorf("%w: redshift must be non-negative and finite, got %g", ErrInvalidRequest, r.Redshift)
	}
	if r.GalacticNH < 0 || math.IsNaN(r.GalacticNH) || math.IsInf(r.GalacticNH, 0) {
		return fmt.Errorf("%w: galnh must be non-negative and finite, got %g", ErrInvalidRequest, r.GalacticNH)
	}

	if err := validateRange("input range", r.InputRange); err != nil {
		return err
	}
	if err := validateRange("output range", r.OutputRange); err != nil {
		return err
	}

	if r.Mission == "" {
		if r.Detector != "" {
			return fmt.Errorf("%w: detector %q set without a mission", ErrInvalidRequest, r.Detector)
		}
		if r.Filter != "" {
			return fmt.Errorf("%w: filter %q set without a mission", ErrInvalidRequest, r.Filter)
		}
		return nil
	}

	if r.Detector == "" {
		if cat.HasMission(r.Mission) {
			return fmt.Errorf("%w: detector missing for mission %q (one of %v)",
				ErrInvalidRequest, r.Mission, cat.Detectors(r.Mission))
		}
		return fmt.Errorf("%w: unknown mission %q", ErrInvalidRequest, r.Mission)
	}
	inst, ok := cat.Instrument(r.Mission, r.Detector)
	if !ok {
		if cat.HasMission(r.Mission) {
			return fmt.Errorf("%w: unknown detector %q for mission %q (one of %v)",
				ErrInvalidRequest, r.Detector, r.Mission, cat.Detectors(r.Mission))
		}
		return fmt.Errorf("%w: unknown mission %q", ErrInvalidRequest, r.Mission)
	}

	switch {
	case inst.HasFilterStep() && r.Filter == "":
		return fmt.Errorf("%w: filter missing for %s/%s (one of %v)",
			ErrInvalidRequest, inst.Mission, inst.Detector, inst.Filters)
	case inst.HasFilterStep() && !inst.HasFilter(r.Filter):
		return fmt.Errorf("%w: unknown filter %q for %s/%s (one of %v)",
			ErrInvalidRequest, r.Filter, inst.Mission, inst.Detector, inst.Filters)
	case !inst.HasFilterStep() && r.Filter != "":
		return fmt.Errorf("%w: %s/%s has no filter step, got filter %q",
			ErrInvalidRequest, inst.Mission, inst.Detector, r.Filter)
	}
	return nil
}

func validateRange(name string, er EnergyRange) error {
	if er.IsZero() {
		return nil
	}
	if math.IsNaN(er.Low) || math.IsNaN(er.High) || math.IsInf(er.Low, 0) || math.IsInf(er.High, 0) {
		return fmt.Errorf("%w: %s bounds must be finite", ErrInvalidRequest, name)
	}
	if er.Low <= 0 || er.Low >= er.High {
		return fmt.Errorf("%w: %s must satisfy 0 < low < high, got %g-%g",
			ErrInvalidRequest, name, er.Low, er.High)
	}
	return nil
}
