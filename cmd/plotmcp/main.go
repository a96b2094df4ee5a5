// Package main serves the charting MCP tools over stdio (default) or
// streamable HTTP (--http :8001).
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"plotmcp/internal/chartsrv"
)

var (
	httpAddr string
	debug    bool
)

func main() {
	root := &cobra.Command{
		Use:           "plotmcp",
		Short:         "MCP server that renders charts from loosely-structured tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8001)")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Logs go to stderr; stdout belongs to the stdio transport.
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv := chartsrv.New(logger)

	if httpAddr != "" {
		logger.Info("serving streamable HTTP", zap.String("addr", httpAddr))
		return server.NewStreamableHTTPServer(srv).Start(httpAddr)
	}
	return server.ServeStdio(srv)
}
