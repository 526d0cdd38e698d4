package pimmsrun

import (
	"strconv"
	"strings"

	"github.com/xastro/pimmsrun/catalog"
)

// Script is the ordered sequence of command lines fed to the tool's
// interactive session, terminated by the quit command.
type Script []string

// String renders the script as newline-terminated input for the tool.
func (s Script) String() string {
	if len(s) == 0 {
		return ""
	}
	return strings.Join(s, "\n") + "\n"
}

// BuildScript serializes a Request into the command lines the tool's
// interactive session expects:
//
//	mo <model> <params...> <nh>[ z <z> <galnh>]
//	inst <mission> <detector>[ <filter>] <lo>-<hi>
//	from flux ergs <lo>-<hi>
//	go <flux>
//	q
//
// In flux-output mode (empty Mission) the inst line is
// "inst flux ergs <lo>-<hi>[ unabsorbed]". The request is validated
// against the catalog first; violations wrap ErrInvalidRequest.
func BuildScript(req Request, cat *catalog.Catalog) (Script, error) {
	if err := req.Validate(cat); err != nil {
		return nil, err
	}

	model, _ := cat.Model(req.ModelName())
	return Script{
		modelLine(req, model),
		instLine(req, cat),
		"from flux ergs " + rangeToken(orDefault(req.InputRange)),
		"go " + ftoa(req.Flux),
		"q",
	}, nil
}

func modelLine(req Request, model catalog.Model) string {
	var b strings.Builder
	b.WriteString("mo ")
	b.WriteString(strings.ToLower(model.Command))
	for _, p := range req.Params {
		b.WriteByte(' ')
		b.WriteString(ftoa(p))
	}
	nh := req.NH
	if nh == 0 {
		nh = DefaultNH
	}
	b.WriteByte(' ')
	b.WriteString(ftoa(nh))
	if req.Redshift > 0 {
		galnh := req.GalacticNH
		if galnh == 0 {
			galnh = DefaultGalacticNH
		}
		b.WriteString(" z ")
		b.WriteString(ftoa(req.Redshift))
		b.WriteByte(' ')
		b.WriteString(ftoa(galnh))
	}
	return b.String()
}

func instLine(req Request, cat *catalog.Catalog) string {
	out := rangeToken(orDefault(req.OutputRange))
	if req.Mission == "" {
		line := "inst flux ergs " + out
		if req.Unabsorbed {
			line += " unabsorbed"
		}
		return line
	}

	inst, _ := cat.Instrument(req.Mission, req.Detector)
	var b strings.Builder
	b.WriteString("inst ")
	b.WriteString(strings.ToLower(req.Mission))
	b.WriteByte(' ')
	b.WriteString(strings.ToLower(req.Detector))
	if inst.HasFilterStep() {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(req.Filter))
	}
	// Unabsorbed is ignored with an instrument: the tool always reports
	// the absorbed count rate.
	b.WriteByte(' ')
	b.WriteString(out)
	return b.String()
}

func orDefault(er EnergyRange) EnergyRange {
	if er.IsZero() {
		return DefaultEnergyRange
	}
	return er
}

func rangeToken(er EnergyRange) string {
	return ftoa(er.Low) + "-" + ftoa(er.High)
}

// ftoa renders a float the way the tool's command language expects
// (shortest 'g' form, e.g. "2", "0.5", "1e+22").
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
