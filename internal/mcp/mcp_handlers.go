package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lineheat/lineheat/core"
	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	session  *core.Session
	renderer *core.Renderer
}

// resolveFile normalizes the file argument to the absolute path used as
// the document identity across the session.
func resolveFile(request mcp.CallToolRequest) (string, error) {
	path := request.GetString("file", "")
	if path == "" {
		return "", fmt.Errorf("file is required")
	}
	return filepath.Abs(path)
}

func (h *toolHandler) handleEnableHeatmap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolveFile(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.session.Enable(path)
	return mcp.NewToolResultText(fmt.Sprintf("heatmap enabled for %s", path)), nil
}

func (h *toolHandler) handleDisableHeatmap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolveFile(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.session.Disable(path)
	return mcp.NewToolResultText(fmt.Sprintf("heatmap disabled for %s", path)), nil
}

func (h *toolHandler) handleToggleHeatmap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolveFile(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if h.session.Toggle(path) {
		return mcp.NewToolResultText(fmt.Sprintf("heatmap enabled for %s", path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("heatmap disabled for %s", path)), nil
}

func (h *toolHandler) handleRenderHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolveFile(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !h.session.Enabled(path) {
		return mcp.NewToolResultError(fmt.Sprintf("heatmap is not enabled for %s; call enable_heatmap first", path)), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Mode = h.session.Mode()
	if m := request.GetString("mode", ""); m != "" {
		mode := schema.Mode(m)
		if _, ok := schema.ValidModes[mode]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mode: %s", m)), nil
		}
		cfg.Mode = mode
	}

	doc, err := schema.LoadDocument(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load file: %v", err)), nil
	}

	records, err := h.renderer.Records(ctx, cfg, doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	palette := h.session.Palette()
	colors := make([]string, len(palette))
	for i, c := range palette {
		colors[i] = c.Hex()
	}

	payload := struct {
		Path    string              `json:"path"`
		Mode    schema.Mode         `json:"mode"`
		Palette []string            `json:"palette"`
		Lines   []schema.LineRecord `json:"lines"`
	}{
		Path:    path,
		Mode:    cfg.Mode,
		Palette: colors,
		Lines:   records,
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetVCSType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolveFile(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	kind := core.Detect(filepath.Dir(path))
	return mcp.NewToolResultText(string(kind)), nil
}

func (h *toolHandler) handleSetHeatmapMode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := request.GetString("mode", "")
	mode := schema.Mode(m)
	if _, ok := schema.ValidModes[mode]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mode: %s (must be age or line_commit)", m)), nil
	}

	h.session.SetMode(mode)
	return mcp.NewToolResultText(fmt.Sprintf("heat mode set to %s", mode)), nil
}

func (h *toolHandler) handleGetHeatmapMode(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(string(h.session.Mode())), nil
}
