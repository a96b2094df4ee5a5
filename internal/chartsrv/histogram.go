package chartsrv

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"plotmcp/internal/render"
	"plotmcp/internal/roles"
	"plotmcp/internal/tabular"
)

type HistogramArgs struct {
	Data   any     `json:"data" jsonschema:"description=Data as JSON text; CSV text; an array of records or scalars; or a mapping"`
	Column string  `json:"column,omitempty" jsonschema:"description=Column to build the distribution from (defaults to the first column)"`
	Bins   int     `json:"bins,omitempty" jsonschema:"description=Number of bins for the continuous path (default 30)"`
	Title  string  `json:"title,omitempty" jsonschema:"description=Chart title"`
	XLabel string  `json:"x_label,omitempty" jsonschema:"description=X-axis label"`
	YLabel string  `json:"y_label,omitempty" jsonschema:"description=Y-axis label"`
	Color  string  `json:"color,omitempty" jsonschema:"description=Bar color (name or #rrggbb)"`
	Alpha  float64 `json:"alpha,omitempty" jsonschema:"description=Bar transparency between 0 and 1 (default 0.7)"`
}

func renderHistogram(args HistogramArgs) ([]byte, error) {
	if args.Bins < 0 {
		return nil, fmt.Errorf("create histogram: bins must be >= 1")
	}
	tbl, err := tabular.Normalize(args.Data)
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}
	asg, err := roles.Resolve(tbl, roles.Request{
		Chart: roles.Histogram,
		Value: args.Column,
		Bins:  args.Bins,
	})
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	alpha := args.Alpha
	if alpha == 0 {
		alpha = 0.7
	}
	return render.PNG(asg, render.Style{
		Title:  orDefault(args.Title, "Histogram"),
		XLabel: orDefault(args.XLabel, "Values"),
		YLabel: orDefault(args.YLabel, "Frequency"),
		Color:  orDefault(args.Color, "skyblue"),
		Alpha:  alpha,
	})
}

func registerHistogramTool(srv *server.MCPServer, log *zap.Logger) {
	registerChartTool(srv, log, chartToolConfig{
		name: "create_histogram",
		description: `Create a histogram from the provided data and return it as a PNG image.
		              Columns with at most 20 distinct values, or categorical columns, are counted
		              per distinct value; wider numeric columns are binned (bins, default 30).`,
	},
		renderHistogram,
	)
}
