package commands

import (
	"github.com/erraggy/oasprofile/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the validate and profile tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the validate
and profile tools. Defaults come from OASPROFILE_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
