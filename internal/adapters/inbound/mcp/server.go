package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ff6editor/pluginvet/internal/application"
)

// NewPluginvetMCPServer creates an MCP server exposing the validation
// service as tools plus the effective rule tables as a resource.
func NewPluginvetMCPServer(svc *application.ValidateService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pluginvet",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
