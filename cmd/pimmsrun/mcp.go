package main

import (
	"github.com/spf13/cobra"

	"github.com/xastro/pimmsrun/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over the Model Context Protocol (stdio)",
		Long: `Starts an MCP server on stdin/stdout exposing convert, list_missions,
and list_models tools for MCP-capable AI assistants.

Client configuration (e.g. claude_desktop_config.json):
  {
    "mcpServers": {
      "pimmsrun": {
        "command": "/path/to/pimmsrun",
        "args": ["mcp", "serve"]
      }
    }
  }`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := mcpserver.New(a.driver, a.catalog)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}

	cmd.AddCommand(serveCmd)
	return cmd
}
