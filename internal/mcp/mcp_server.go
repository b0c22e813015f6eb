// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lineheat/lineheat/core"
	"github.com/lineheat/lineheat/internal/contract"
)

// NewMCPServer initializes and configures the Lineheat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, session *core.Session, renderer *core.Renderer) *server.MCPServer {
	s := server.NewMCPServer(
		"Lineheat Heatmap Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		session:  session,
		renderer: renderer,
	}

	// --- 1. Tool: enable_heatmap ---
	s.AddTool(mcp.NewTool("enable_heatmap",
		mcp.WithDescription("Enable the line-history heatmap for a file."),
		mcp.WithString("file", mcp.Description("Path to the file."), mcp.Required()),
	), h.handleEnableHeatmap)

	// --- 2. Tool: disable_heatmap ---
	s.AddTool(mcp.NewTool("disable_heatmap",
		mcp.WithDescription("Disable the line-history heatmap for a file."),
		mcp.WithString("file", mcp.Description("Path to the file."), mcp.Required()),
	), h.handleDisableHeatmap)

	// --- 3. Tool: toggle_heatmap ---
	s.AddTool(mcp.NewTool("toggle_heatmap",
		mcp.WithDescription("Toggle the line-history heatmap for a file and report the new state."),
		mcp.WithString("file", mcp.Description("Path to the file."), mcp.Required()),
	), h.handleToggleHeatmap)

	// --- 4. Tool: render_heatmap ---
	s.AddTool(mcp.NewTool("render_heatmap",
		mcp.WithDescription("Compute per-line heat data for an enabled file: raw history signal and heat bucket per line."),
		mcp.WithString("file", mcp.Description("Path to the file."), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Heat mode override (age, line_commit). Defaults to the session mode."), mcp.Enum("age", "line_commit")),
	), h.handleRenderHeatmap)

	// --- 5. Tool: get_vcs_type ---
	s.AddTool(mcp.NewTool("get_vcs_type",
		mcp.WithDescription("Report which version control system governs a file (git, perforce, none)."),
		mcp.WithString("file", mcp.Description("Path to the file."), mcp.Required()),
	), h.handleGetVCSType)

	// --- 6. Tool: set_heatmap_mode ---
	s.AddTool(mcp.NewTool("set_heatmap_mode",
		mcp.WithDescription("Switch the session heat mode."),
		mcp.WithString("mode", mcp.Description("Heat mode (age, line_commit)."), mcp.Required(), mcp.Enum("age", "line_commit")),
	), h.handleSetHeatmapMode)

	// --- 7. Tool: get_heatmap_mode ---
	s.AddTool(mcp.NewTool("get_heatmap_mode",
		mcp.WithDescription("Report the session heat mode."),
	), h.handleGetHeatmapMode)

	return s
}

// StartMCPServer starts the Lineheat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, session *core.Session, renderer *core.Renderer) error {
	s := NewMCPServer(baseCfg, session, renderer)
	return server.ServeStdio(s)
}
