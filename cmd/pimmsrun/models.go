package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the supported spectral models and their parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				out := map[string][]string{}
				for _, m := range a.catalog.Models {
					out[m.Name] = m.Params
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal models: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			for _, m := range a.catalog.Models {
				cmd.Printf("%s (%s)\n", m.Name, strings.Join(m.Params, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
