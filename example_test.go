package pimmsrun_test

import (
	"fmt"

	"github.com/xastro/pimmsrun"
	"github.com/xastro/pimmsrun/catalog"
)

func ExampleBuildScript() {
	script, err := pimmsrun.BuildScript(pimmsrun.Request{
		Flux:        1e-14,
		Mission:     "xmm",
		Detector:    "pn",
		Filter:      "thin",
		Model:       "powerlaw",
		Params:      []float64{2.0},
		NH:          1e22,
		OutputRange: pimmsrun.EnergyRange{Low: 2, High: 10},
	}, catalog.Default())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(script)
	// Output:
	// mo powerlaw 2 1e+22
	// inst xmm pn thin 2-10
	// from flux ergs 0.5-2
	// go 1e-14
	// q
}

func ExampleBuildScript_fluxMode() {
	script, err := pimmsrun.BuildScript(pimmsrun.Request{
		Flux:       3.2e-13,
		Model:      "bremss",
		Params:     []float64{5.0},
		Unabsorbed: true,
	}, catalog.Default())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(script[1])
	// Output: inst flux ergs 0.5-2 unabsorbed
}

func ExampleRequest_Validate() {
	req := pimmsrun.Request{
		Flux:     1e-14,
		Mission:  "xmm",
		Detector: "pn",
		Model:    "powerlaw",
		Params:   []float64{2.0},
	}
	err := req.Validate(catalog.Default())
	fmt.Println(err)
	// Output: pimmsrun: invalid request: filter missing for xmm/pn (one of [thin medium thick])
}
