package chartsrv

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"plotmcp/internal/render"
	"plotmcp/internal/roles"
	"plotmcp/internal/tabular"
)

type BarChartArgs struct {
	Data       any    `json:"data" jsonschema:"description=Data as JSON text; CSV text; an array of records or scalars; or a mapping"`
	XColumn    string `json:"x_column,omitempty" jsonschema:"description=Column name for the x axis (categories)"`
	YColumn    string `json:"y_column,omitempty" jsonschema:"description=Column name for the y axis (values)"`
	Title      string `json:"title,omitempty" jsonschema:"description=Chart title"`
	XLabel     string `json:"x_label,omitempty" jsonschema:"description=X-axis label"`
	YLabel     string `json:"y_label,omitempty" jsonschema:"description=Y-axis label"`
	Color      string `json:"color,omitempty" jsonschema:"description=Bar color (name or #rrggbb)"`
	Horizontal bool   `json:"horizontal,omitempty" jsonschema:"description=Whether to draw horizontal bars"`
}

func renderBarChart(args BarChartArgs) ([]byte, error) {
	tbl, err := tabular.Normalize(args.Data)
	if err != nil {
		return nil, fmt.Errorf("create bar chart: %w", err)
	}
	asg, err := roles.Resolve(tbl, roles.Request{
		Chart:    roles.Bar,
		Category: args.XColumn,
		Value:    args.YColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("create bar chart: %w", err)
	}
	return render.PNG(asg, render.Style{
		Title:      orDefault(args.Title, "Bar Chart"),
		XLabel:     orDefault(args.XLabel, "Categories"),
		YLabel:     orDefault(args.YLabel, "Values"),
		Color:      orDefault(args.Color, "steelblue"),
		Horizontal: args.Horizontal,
	})
}

func registerBarChartTool(srv *server.MCPServer, log *zap.Logger) {
	registerChartTool(srv, log, chartToolConfig{
		name: "create_bar_chart",
		description: `Create a bar chart from the provided data and return it as a PNG image.
		              Accepts JSON text, CSV text, an array of records, or a mapping; column roles
		              are inferred automatically unless x_column/y_column name them explicitly.`,
	},
		renderBarChart,
	)
}
