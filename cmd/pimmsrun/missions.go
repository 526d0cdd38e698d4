package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMissionsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List the supported mission and detector codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				out := map[string]any{}
				for _, mission := range a.catalog.Missions() {
					detectors := map[string][]string{}
					for _, det := range a.catalog.Detectors(mission) {
						inst, _ := a.catalog.Instrument(mission, det)
						detectors[det] = inst.Filters
					}
					out[mission] = detectors
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal missions: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			for _, mission := range a.catalog.Missions() {
				cmd.Println(mission)
				for _, det := range a.catalog.Detectors(mission) {
					inst, _ := a.catalog.Instrument(mission, det)
					if inst.HasFilterStep() {
						cmd.Printf("  %s (filters: %s)\n", det, strings.Join(inst.Filters, ", "))
					} else {
						cmd.Printf("  %s\n", det)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
