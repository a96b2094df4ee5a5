package chartsrv

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"plotmcp/internal/render"
	"plotmcp/internal/roles"
	"plotmcp/internal/tabular"
)

type LineChartArgs struct {
	Data      any    `json:"data" jsonschema:"description=Data as JSON text; CSV text; an array of records or scalars; or a mapping"`
	XColumn   string `json:"x_column,omitempty" jsonschema:"description=Column name for the x axis"`
	YColumn   string `json:"y_column,omitempty" jsonschema:"description=Column name for the y axis"`
	Title     string `json:"title,omitempty" jsonschema:"description=Chart title"`
	XLabel    string `json:"x_label,omitempty" jsonschema:"description=X-axis label"`
	YLabel    string `json:"y_label,omitempty" jsonschema:"description=Y-axis label"`
	Color     string `json:"color,omitempty" jsonschema:"description=Line color (name or #rrggbb)"`
	LineStyle string `json:"line_style,omitempty" jsonschema:"description=Line style: - -- -. or :"`
	Marker    string `json:"marker,omitempty" jsonschema:"description=Marker style (o, s, ^, ...); empty disables markers"`
}

func renderLineChart(args LineChartArgs) ([]byte, error) {
	tbl, err := tabular.Normalize(args.Data)
	if err != nil {
		return nil, fmt.Errorf("create line chart: %w", err)
	}
	asg, err := roles.Resolve(tbl, roles.Request{
		Chart:    roles.Line,
		Category: args.XColumn,
		Value:    args.YColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("create line chart: %w", err)
	}
	return render.PNG(asg, render.Style{
		Title:     orDefault(args.Title, "Line Chart"),
		XLabel:    orDefault(args.XLabel, "X Values"),
		YLabel:    orDefault(args.YLabel, "Y Values"),
		Color:     orDefault(args.Color, "blue"),
		LineStyle: orDefault(args.LineStyle, "-"),
		Marker:    orDefault(args.Marker, "o"),
	})
}

func registerLineChartTool(srv *server.MCPServer, log *zap.Logger) {
	registerChartTool(srv, log, chartToolConfig{
		name: "create_line_chart",
		description: `Create a line chart from the provided data and return it as a PNG image.
		              A categorical x column is plotted at ordinal positions with its text as
		              tick labels; a numeric x column is plotted at its own values.`,
	},
		renderLineChart,
	)
}
