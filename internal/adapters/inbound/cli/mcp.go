package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/ff6editor/pluginvet/internal/adapters/inbound/mcp"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the pluginvet MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(flags))
	return cmd
}

func newMCPServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start pluginvet MCP server (stdio)",
		Long:  "Start the pluginvet MCP server using stdio transport so assistants can validate plugins and verify checksums.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			s := mcpadapter.NewPluginvetMCPServer(e.service(), version)
			return server.ServeStdio(s)
		},
	}
}
