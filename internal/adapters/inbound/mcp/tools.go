package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ff6editor/pluginvet/internal/application"
)

func registerTools(s *server.MCPServer, svc *application.ValidateService) {
	s.AddTool(
		mcplib.NewTool("pluginvet_validate",
			mcplib.WithDescription("Run every validation pass over a plugin directory and return the run as JSON. Writes checksum.sha256 as a side effect."),
			mcplib.WithString("dir",
				mcplib.Required(),
				mcplib.Description("Path to the plugin submission directory"),
			),
		),
		handleValidate(svc),
	)

	s.AddTool(
		mcplib.NewTool("pluginvet_verify_checksum",
			mcplib.WithDescription("Compare checksum.sha256 with a fresh digest of plugin.lua without writing anything"),
			mcplib.WithString("dir",
				mcplib.Required(),
				mcplib.Description("Path to the plugin submission directory"),
			),
		),
		handleVerifyChecksum(svc),
	)

	s.AddTool(
		mcplib.NewTool("pluginvet_rules",
			mcplib.WithDescription("Returns the effective rule tables: required files, size limits, categories, permissions and forbidden patterns"),
		),
		handleRules(svc),
	)
}

func handleValidate(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return errorResult("dir parameter is required"), nil
		}

		run, err := svc.Validate(dir)
		result, jerr := jsonResult(run)
		if jerr != nil {
			return nil, jerr
		}
		if err != nil {
			result.Content = append(result.Content, mcplib.NewTextContent("warning: "+err.Error()))
		}
		return result, nil
	}
}

func handleVerifyChecksum(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return errorResult("dir parameter is required"), nil
		}

		v, err := svc.VerifyChecksum(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("checksum verification failed: %v", err)), nil
		}
		return jsonResult(v)
	}
}

func handleRules(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(svc.Rules())
	}
}

// jsonResult marshals v to indented JSON and wraps it in a text result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
