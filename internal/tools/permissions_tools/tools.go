package permissions_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ekbridge/ekbridge/internal/bridge"
	"github.com/ekbridge/ekbridge/internal/server"
	"github.com/ekbridge/ekbridge/internal/tools/common"
)

// scopeFromArgs extracts and validates the privacy scope argument.
func scopeFromArgs(args map[string]interface{}) (bridge.Domain, error) {
	raw, _ := args["scope"].(string)
	if raw == "" {
		return "", fmt.Errorf("scope is required (reminders or calendars)")
	}
	return bridge.ParseDomain(raw)
}

// RegisterPermissionsTools registers the permission inspection tools with the
// MCP server. Both tools are read-safe: requesting a permission only shows
// the OS dialog, it never changes state on its own.
func RegisterPermissionsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("permissions_get_status",
		mcp.WithDescription("Report the macOS authorization state for a privacy scope"),
		mcp.WithString("scope",
			mcp.Required(),
			mcp.Description("Privacy scope: reminders or calendars"),
		),
	)

	s.AddTool(statusTool, common.InstrumentedToolHandler("permissions_get_status", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		scope, err := scopeFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		status, err := sc.Bridge().PermissionStatus(ctx, scope)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(status, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	requestTool := mcp.NewTool("permissions_request",
		mcp.WithDescription("Trigger the macOS permission dialog for a privacy scope and report the outcome"),
		mcp.WithString("scope",
			mcp.Required(),
			mcp.Description("Privacy scope: reminders or calendars"),
		),
	)

	s.AddTool(requestTool, common.InstrumentedToolHandler("permissions_request", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		scope, err := scopeFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		status, err := sc.Bridge().RequestPermission(ctx, scope)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(status, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	return nil
}
