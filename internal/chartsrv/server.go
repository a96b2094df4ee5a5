// Package chartsrv exposes the chart pipeline (normalize, resolve roles,
// render) as MCP tools.
package chartsrv

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const serverVersion = "1.0.0"

// New builds the MCP server with the four chart tools registered.
func New(log *zap.Logger) *server.MCPServer {
	srv := server.NewMCPServer(
		"charting",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	registerBarChartTool(srv, log)
	registerLineChartTool(srv, log)
	registerHistogramTool(srv, log)
	registerPieChartTool(srv, log)

	return srv
}

type chartToolConfig struct {
	name        string
	description string
}

// registerChartTool wires one typed tool: bind arguments, run the pipeline,
// and return either the PNG image envelope or the error message unchanged.
// Errors are terminal per invocation; nothing is retried.
func registerChartTool[T any](
	srv *server.MCPServer,
	log *zap.Logger,
	cfg chartToolConfig,
	renderFn func(T) ([]byte, error),
) {
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args T
		if err := req.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("bind arguments: %v", err)), nil
		}

		start := time.Now()
		png, err := renderFn(args)
		if err != nil {
			log.Warn("chart generation failed",
				zap.String("tool", cfg.name),
				zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}

		log.Info("chart rendered",
			zap.String("tool", cfg.name),
			zap.Int("png_bytes", len(png)),
			zap.Duration("elapsed", time.Since(start)))
		return imageResult(png), nil
	}

	tool := mcp.NewTool(
		cfg.name,
		mcp.WithDescription(cfg.description),
		mcp.WithInputSchema[T](),
	)

	srv.AddTool(tool, handler)
}

func imageResult(png []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(png),
				MIMEType: "image/png",
			},
		},
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
