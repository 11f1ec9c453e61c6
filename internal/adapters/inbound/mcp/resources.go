package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ff6editor/pluginvet/internal/application"
)

const rulesURI = "pluginvet://rules"

func registerResources(s *server.MCPServer, svc *application.ValidateService) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Rules",
			mcplib.WithResourceDescription("Effective submission rule tables after config overrides"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(svc),
	)
}

func handleRulesResource(svc *application.ValidateService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(svc.Rules(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      rulesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
