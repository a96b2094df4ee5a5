// Package roles decides which columns of a canonical table play which
// semantic part (category, value, label, magnitude) for a requested chart
// kind, including the histogram discrete/continuous routing and the pie
// positivity filter.
package roles

import (
	"plotmcp/internal/tabular"
)

// ChartKind is the target chart of a resolution request.
type ChartKind string

const (
	Bar       ChartKind = "bar"
	Line      ChartKind = "line"
	Histogram ChartKind = "histogram"
	Pie       ChartKind = "pie"
)

// Request carries the chart kind plus the caller's optional column hints.
// Category covers x_column/labels_column, Value covers y_column,
// values_column, and the histogram's column hint. Bins applies to the
// histogram continuous path only; zero means the default of 30.
type Request struct {
	Chart    ChartKind
	Category string
	Value    string
	Bins     int
}

// Series is one resolved role: an ordered run of cells with the column's
// classification attached so the renderer knows whether the category axis is
// positional or ordinal.
type Series struct {
	Name  string
	Kind  tabular.Kind
	Cells []any
}

// Assignment is the resolver's output, constructed fresh per invocation.
// For bar, line, and pie: Category and Value. For histogram: either the
// discrete result (Category = distinct values, Value = frequencies) or the
// continuous one (Continuous true, Value = raw numeric series, Bins set).
type Assignment struct {
	Chart      ChartKind
	Category   Series
	Value      Series
	Continuous bool
	Bins       int
}

// AssignmentError reports a valid table that admits no role assignment for
// the requested chart kind.
type AssignmentError struct {
	Reason string
}

func (e *AssignmentError) Error() string {
	return "role assignment: " + e.Reason
}

const defaultBins = 30

// Resolve maps the table's columns onto chart roles. It never mutates the
// table and holds no state across calls.
func Resolve(t *tabular.Table, req Request) (*Assignment, error) {
	switch req.Chart {
	case Bar, Line:
		return resolveXY(t, req)
	case Pie:
		return resolvePie(t, req)
	case Histogram:
		return resolveHistogram(t, req)
	default:
		return nil, &AssignmentError{Reason: "unknown chart kind " + string(req.Chart)}
	}
}

func seriesOf(c tabular.Column) Series {
	return Series{Name: c.Name, Kind: c.Kind(), Cells: c.Cells}
}

// Floats converts the series to numeric values. Null cells come back as
// keep=false entries so callers can drop the row pair-wise.
func (s Series) Floats() ([]float64, []bool, bool) {
	vals := make([]float64, len(s.Cells))
	keep := make([]bool, len(s.Cells))
	for i, c := range s.Cells {
		if c == nil {
			continue
		}
		n, ok := tabular.Number(c)
		if !ok {
			return nil, nil, false
		}
		vals[i] = n
		keep[i] = true
	}
	return vals, keep, true
}

// Labels formats every cell for tick or slice labeling.
func (s Series) Labels() []string {
	out := make([]string, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = tabular.Label(c)
	}
	return out
}
