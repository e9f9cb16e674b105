package calendar_tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ekbridge/ekbridge/internal/bridge"
	"github.com/ekbridge/ekbridge/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eventkit-cli")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake binary: %v", err)
	}

	b, err := bridge.New(bridge.Options{
		Locator:     bridge.NewLocator(bridge.LocatorConfig{Path: path}),
		Permissions: bridge.NewPermissionService(bridge.PermissionOptions{}),
	})
	if err != nil {
		t.Fatalf("failed to create bridge: %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), b, false)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterCalendarTools(t *testing.T) {
	sc := newTestServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))

	if err := RegisterCalendarTools(s, sc, false); err != nil {
		t.Errorf("RegisterCalendarTools() error = %v", err)
	}
}

func TestRegisterCalendarToolsReadOnly(t *testing.T) {
	sc := newTestServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))

	if err := RegisterCalendarTools(s, sc, true); err != nil {
		t.Errorf("RegisterCalendarTools(readOnly) error = %v", err)
	}
}
