// Package render turns a role assignment plus pass-through style parameters
// into a PNG image. It is the in-process stand-in for the matplotlib side of
// the original server, built on go-chart.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"plotmcp/internal/roles"
	"plotmcp/internal/tabular"
)

// Style carries the chart-kind-specific parameters the core passes through
// unmodified. Fields the backend cannot express (horizontal bars, pie start
// angle, percentage format, the x-axis label on bar charts) are accepted for
// wire compatibility and ignored.
type Style struct {
	Title      string
	XLabel     string
	YLabel     string
	Color      string
	Horizontal bool
	LineStyle  string
	Marker     string
	Alpha      float64
	Colors     []string
	AutoPct    string
	StartAngle int
}

const (
	chartWidth  = 1024
	chartHeight = 512
)

// PNG renders the assignment. Errors are terminal for the invocation; no
// partial image is ever produced.
func PNG(a *roles.Assignment, style Style) ([]byte, error) {
	switch a.Chart {
	case roles.Bar:
		return renderBars(a.Category.Labels(), a.Value, style)
	case roles.Line:
		return renderLine(a, style)
	case roles.Histogram:
		if a.Continuous {
			return renderContinuousHistogram(a, style)
		}
		return renderBars(a.Category.Labels(), a.Value, style)
	case roles.Pie:
		return renderPie(a, style)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", a.Chart)
	}
}

func renderBars(labels []string, values roles.Series, style Style) ([]byte, error) {
	vals, keep, ok := values.Floats()
	if !ok {
		return nil, fmt.Errorf("non-numeric value column %q", values.Name)
	}

	fill := fillColor(style.Color, style.Alpha)
	var bars []chart.Value
	for i, v := range vals {
		if !keep[i] {
			continue
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		bars = append(bars, chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no data to render")
	}

	// BarChart has no x-axis name, so style.XLabel is dropped here.
	graph := chart.BarChart{
		Title:      style.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth(len(bars)),
		Bars:       bars,
		YAxis:      chart.YAxis{Name: style.YLabel, Range: valueRange(bars)},
	}
	return encodePNG(&graph)
}

func renderLine(a *roles.Assignment, style Style) ([]byte, error) {
	ys, keepY, ok := a.Value.Floats()
	if !ok {
		return nil, fmt.Errorf("non-numeric value column %q", a.Value.Name)
	}

	var xs, plotY []float64
	var ticks []chart.Tick
	if a.Category.Kind == tabular.Numeric {
		cx, keepX, _ := a.Category.Floats()
		for i := range ys {
			if !keepY[i] || !keepX[i] {
				continue
			}
			xs = append(xs, cx[i])
			plotY = append(plotY, ys[i])
		}
	} else {
		// Categorical categories are discrete ordinal positions; the text is
		// only used as tick labels.
		labels := a.Category.Labels()
		for i := range ys {
			if !keepY[i] {
				continue
			}
			pos := float64(len(xs))
			xs = append(xs, pos)
			label := ""
			if i < len(labels) {
				label = labels[i]
			}
			ticks = append(ticks, chart.Tick{Value: pos, Label: label})
			plotY = append(plotY, ys[i])
		}
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("no data to render")
	}

	stroke := fillColor(style.Color, 0)
	seriesStyle := chart.Style{
		StrokeColor:     stroke,
		StrokeDashArray: dashArray(style.LineStyle),
	}
	if style.Marker != "" {
		seriesStyle.DotWidth = 5
		seriesStyle.DotColor = stroke
	}

	graph := chart.Chart{
		Title:  style.Title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: style.XLabel, Ticks: ticks},
		YAxis:  chart.YAxis{Name: style.YLabel},
		Series: []chart.Series{chart.ContinuousSeries{
			Style:   seriesStyle,
			XValues: xs,
			YValues: plotY,
		}},
	}
	return encodePNG(&graph)
}

func renderContinuousHistogram(a *roles.Assignment, style Style) ([]byte, error) {
	vals, keep, ok := a.Value.Floats()
	if !ok {
		return nil, fmt.Errorf("non-numeric value column %q", a.Value.Name)
	}
	var series []float64
	for i, v := range vals {
		if keep[i] {
			series = append(series, v)
		}
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no data to render")
	}

	labels, counts := binSeries(series, a.Bins)
	fill := fillColor(style.Color, style.Alpha)
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		bars[i] = chart.Value{
			Value: c,
			Label: labels[i],
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	graph := chart.BarChart{
		Title:      style.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth(len(bars)),
		Bars:       bars,
		YAxis:      chart.YAxis{Name: style.YLabel, Range: valueRange(bars)},
	}
	return encodePNG(&graph)
}

func renderPie(a *roles.Assignment, style Style) ([]byte, error) {
	vals, keep, ok := a.Value.Floats()
	if !ok {
		return nil, fmt.Errorf("non-numeric value column %q", a.Value.Name)
	}
	labels := a.Category.Labels()

	var values []chart.Value
	for i, v := range vals {
		if !keep[i] {
			continue
		}
		cv := chart.Value{Value: v}
		if i < len(labels) {
			cv.Label = labels[i]
		}
		if len(style.Colors) > 0 {
			fill := fillColor(style.Colors[len(values)%len(style.Colors)], 0)
			cv.Style = chart.Style{FillColor: fill, StrokeColor: fill}
		}
		values = append(values, cv)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no data to render")
	}

	graph := chart.PieChart{
		Title:  style.Title,
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return encodePNG(&graph)
}

// binSeries splits values into equal-width bins over [min, max], top edge
// inclusive in the last bin. A single-valued series degenerates to one bin.
func binSeries(values []float64, bins int) (labels []string, counts []float64) {
	if bins < 1 {
		bins = 1
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []string{fmt.Sprintf("%.4g", lo)}, []float64{float64(len(values))}
	}

	width := (hi - lo) / float64(bins)
	counts = make([]float64, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	labels = make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.4g-%.4g", lo+float64(i)*width, lo+float64(i+1)*width)
	}
	return labels, counts
}

// dashArray maps matplotlib-style line styles onto stroke dash patterns.
// Solid and unknown styles draw an unbroken line.
func dashArray(style string) []float64 {
	switch style {
	case "--":
		return []float64{5, 5}
	case "-.":
		return []float64{8, 3, 2, 3}
	case ":":
		return []float64{2, 2}
	default:
		return nil
	}
}

// valueRange pins the y axis explicitly. go-chart cannot infer a range from
// a flat series (all bars equal), which is the normal shape of a discrete
// histogram of unique values.
func valueRange(bars []chart.Value) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func barWidth(n int) int {
	if n <= 0 {
		return 60
	}
	w := (chartWidth - 120) / n
	if w > 60 {
		return 60
	}
	if w < 4 {
		return 4
	}
	return w
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func encodePNG(graph renderable) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
