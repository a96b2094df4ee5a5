package chartsrv

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"plotmcp/internal/render"
	"plotmcp/internal/roles"
	"plotmcp/internal/tabular"
)

type PieChartArgs struct {
	Data         any      `json:"data" jsonschema:"description=Data as JSON text; CSV text; an array of records or scalars; or a mapping"`
	LabelsColumn string   `json:"labels_column,omitempty" jsonschema:"description=Column name for slice labels"`
	ValuesColumn string   `json:"values_column,omitempty" jsonschema:"description=Column name for slice values"`
	Title        string   `json:"title,omitempty" jsonschema:"description=Chart title"`
	Colors       []string `json:"colors,omitempty" jsonschema:"description=Slice colors; cycled when shorter than the data"`
	AutoPct      string   `json:"autopct,omitempty" jsonschema:"description=Percentage format string (accepted for compatibility)"`
	StartAngle   int      `json:"startangle,omitempty" jsonschema:"description=Starting angle in degrees (accepted for compatibility)"`
}

func renderPieChart(args PieChartArgs) ([]byte, error) {
	tbl, err := tabular.Normalize(args.Data)
	if err != nil {
		return nil, fmt.Errorf("create pie chart: %w", err)
	}
	asg, err := roles.Resolve(tbl, roles.Request{
		Chart:    roles.Pie,
		Category: args.LabelsColumn,
		Value:    args.ValuesColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("create pie chart: %w", err)
	}

	startAngle := args.StartAngle
	if startAngle == 0 {
		startAngle = 90
	}
	return render.PNG(asg, render.Style{
		Title:      orDefault(args.Title, "Pie Chart"),
		Colors:     args.Colors,
		AutoPct:    orDefault(args.AutoPct, "%1.1f%%"),
		StartAngle: startAngle,
	})
}

func registerPieChartTool(srv *server.MCPServer, log *zap.Logger) {
	registerChartTool(srv, log, chartToolConfig{
		name: "create_pie_chart",
		description: `Create a pie chart from the provided data and return it as a PNG image.
		              Rows with zero or negative values are dropped before rendering; the call
		              fails only when no positive values remain.`,
	},
		renderPieChart,
	)
}
