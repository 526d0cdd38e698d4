package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xastro/pimmsrun"
)

// ConvertInput is the input schema for the convert tool.
type ConvertInput struct {
	Flux       float64   `json:"flux" jsonschema:"observed source flux in ergs/s/cm2, must be positive"`
	Mission    string    `json:"mission,omitempty" jsonschema:"mission code (e.g. xmm); omit for a model flux instead of a count rate"`
	Detector   string    `json:"detector,omitempty" jsonschema:"detector code (e.g. pn); required with a mission"`
	Filter     string    `json:"filter,omitempty" jsonschema:"filter code (e.g. thin); required when the instrument has a filter wheel"`
	Model      string    `json:"model,omitempty" jsonschema:"spectral model name (default powerlaw)"`
	Params     []float64 `json:"params" jsonschema:"ordered model parameters (e.g. the photon index)"`
	NH         float64   `json:"nh,omitempty" jsonschema:"absorption column density in cm-2 (default 1e19)"`
	Redshift   float64   `json:"z,omitempty" jsonschema:"source redshift; 0 computes at rest frame"`
	GalacticNH float64   `json:"galnh,omitempty" jsonschema:"Galactic column density in cm-2, used with a redshift (default 1e19)"`
	InputLow   float64   `json:"input_low,omitempty" jsonschema:"input band lower bound in keV (default 0.5)"`
	InputHigh  float64   `json:"input_high,omitempty" jsonschema:"input band upper bound in keV (default 2)"`
	OutputLow  float64   `json:"output_low,omitempty" jsonschema:"output band lower bound in keV (default 0.5)"`
	OutputHigh float64   `json:"output_high,omitempty" jsonschema:"output band upper bound in keV (default 2)"`
	Unabsorbed bool      `json:"unabsorbed,omitempty" jsonschema:"request the absorption-corrected flux; honored only without a mission"`
}

// ConvertOutput is the output schema for the convert tool.
type ConvertOutput struct {
	Value float64 `json:"value"`
	Units string  `json:"units,omitempty"`
	RunID string  `json:"run_id"`
}

// MissionsOutput is the output schema for the list_missions tool.
type MissionsOutput struct {
	Missions []MissionOutput `json:"missions"`
}

// MissionOutput is one mission with its detectors.
type MissionOutput struct {
	Mission   string   `json:"mission"`
	Detectors []string `json:"detectors"`
}

// ModelsOutput is the output schema for the list_models tool.
type ModelsOutput struct {
	Models []ModelOutput `json:"models"`
}

// ModelOutput is one spectral model with its ordered parameter names.
type ModelOutput struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an astrophysical source flux into a predicted instrument count rate (or band flux) via PIMMS",
	}, s.handleConvert)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_missions",
		Description: "List the supported mission and detector codes",
	}, s.handleListMissions)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_models",
		Description: "List the supported spectral models and their parameter names",
	}, s.handleListModels)
}

// handleConvert handles the convert tool invocation. Request violations
// come back as tool errors so the assistant can correct its call.
func (s *Server) handleConvert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	req := pimmsrun.Request{
		Flux:        input.Flux,
		Mission:     input.Mission,
		Detector:    input.Detector,
		Filter:      input.Filter,
		Model:       input.Model,
		Params:      input.Params,
		NH:          input.NH,
		Redshift:    input.Redshift,
		GalacticNH:  input.GalacticNH,
		InputRange:  pimmsrun.EnergyRange{Low: input.InputLow, High: input.InputHigh},
		OutputRange: pimmsrun.EnergyRange{Low: input.OutputLow, High: input.OutputHigh},
		Unabsorbed:  input.Unabsorbed,
	}

	res, err := s.conv.Convert(ctx, req)
	if err != nil {
		if errors.Is(err, pimmsrun.ErrInvalidRequest) {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, ConvertOutput{}, nil
		}
		return nil, ConvertOutput{}, err
	}

	return nil, ConvertOutput{
		Value: res.Value,
		Units: res.Units,
		RunID: res.RunID,
	}, nil
}

// handleListMissions handles the list_missions tool invocation.
func (s *Server) handleListMissions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, MissionsOutput, error) {
	var out MissionsOutput
	for _, mission := range s.catalog.Missions() {
		out.Missions = append(out.Missions, MissionOutput{
			Mission:   mission,
			Detectors: s.catalog.Detectors(mission),
		})
	}
	return nil, out, nil
}

// handleListModels handles the list_models tool invocation.
func (s *Server) handleListModels(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ModelsOutput, error) {
	var out ModelsOutput
	for _, m := range s.catalog.Models {
		out.Models = append(out.Models, ModelOutput{
			Name:   m.Name,
			Params: m.Params,
		})
	}
	return nil, out, nil
}
