package main

import (
	"github.com/spf13/cobra"

	"github.com/xastro/pimmsrun"
)

func newScriptCmd(a *app) *cobra.Command {
	rf := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the command script without running the tool",
		Long: `Serializes the request into the exact command lines that would be fed
to the tool and prints them. Useful for diagnosing a prompt-order mismatch
against a newly installed PIMMS version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := rf.request()
			if err != nil {
				return err
			}
			script, err := pimmsrun.BuildScript(req, a.catalog)
			if err != nil {
				return err
			}
			cmd.Print(script.String())
			return nil
		},
	}

	rf.register(cmd)
	return cmd
}
