package roles

import (
	"fmt"
	"sort"

	"plotmcp/internal/tabular"
)

// distinctLimit is the cutoff below which a numeric series is treated as
// discrete and counted instead of binned.
const distinctLimit = 20

// resolveHistogram routes between three strategies:
//
//  1. Grouped degradation: a hinted value column plus any other categorical
//     column turns the histogram into a bar of per-group sums. This silently
//     changes chart semantics; it is kept verbatim for compatibility with
//     the original server and may be dropped if that behavior is ever
//     confirmed unintentional.
//  2. Discrete: few distinct values, or a categorical column, produce
//     value -> count pairs sorted ascending.
//  3. Continuous: the raw numeric series plus a bin count for the renderer.
func resolveHistogram(t *tabular.Table, req Request) (*Assignment, error) {
	if req.Value != "" {
		if vcol, ok := t.Column(req.Value); ok {
			for _, c := range t.Columns {
				if c.Name != vcol.Name && c.Kind() == tabular.Categorical {
					return groupedSums(c, vcol)
				}
			}
		}
	}

	col, ok := t.Column(req.Value)
	if !ok {
		if len(t.Columns) == 0 {
			return nil, &AssignmentError{Reason: "insufficient data"}
		}
		col = t.Columns[0]
	}

	kind := col.Kind()
	cells := dropNulls(col.Cells)

	distinct := make(map[any]int)
	for _, c := range cells {
		distinct[c]++
	}

	if len(distinct) <= distinctLimit || kind == tabular.Categorical {
		return discreteCounts(col.Name, kind, distinct), nil
	}

	bins := req.Bins
	if bins <= 0 {
		bins = defaultBins
	}
	for _, c := range cells {
		if _, ok := tabular.Number(c); !ok {
			return nil, &AssignmentError{Reason: "non-numeric data for continuous histogram"}
		}
	}
	return &Assignment{
		Chart:      Histogram,
		Value:      Series{Name: col.Name, Kind: tabular.Numeric, Cells: cells},
		Continuous: true,
		Bins:       bins,
	}, nil
}

// discreteCounts produces the value -> frequency pairs, sorted ascending.
// The order is a (numeric, value) tuple comparison: numbers first, ascending,
// then text lexicographically, so a mixed column still gets a total order.
func discreteCounts(name string, kind tabular.Kind, distinct map[any]int) *Assignment {
	values := make([]any, 0, len(distinct))
	for v := range distinct {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		ni, iok := tabular.Number(values[i])
		nj, jok := tabular.Number(values[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok != jok:
			return iok
		default:
			return tabular.Label(values[i]) < tabular.Label(values[j])
		}
	})

	counts := make([]any, len(values))
	for i, v := range values {
		counts[i] = float64(distinct[v])
	}
	return &Assignment{
		Chart:    Histogram,
		Category: Series{Name: name, Kind: kind, Cells: values},
		Value:    Series{Name: "count", Kind: tabular.Numeric, Cells: counts},
	}
}

// groupedSums aggregates the hinted value column per category of the
// grouping column, keeping first-appearance group order.
func groupedSums(group, value tabular.Column) (*Assignment, error) {
	var order []any
	sums := make(map[any]float64)
	for i, g := range group.Cells {
		if g == nil || i >= len(value.Cells) {
			continue
		}
		cell := value.Cells[i]
		if cell == nil {
			continue
		}
		n, ok := tabular.Number(cell)
		if !ok {
			return nil, &AssignmentError{Reason: fmt.Sprintf("non-numeric value column %q for grouped histogram", value.Name)}
		}
		if _, seen := sums[g]; !seen {
			order = append(order, g)
		}
		sums[g] += n
	}
	if len(order) == 0 {
		return nil, &AssignmentError{Reason: "insufficient data"}
	}

	totals := make([]any, len(order))
	for i, g := range order {
		totals[i] = sums[g]
	}
	return &Assignment{
		Chart:    Histogram,
		Category: Series{Name: group.Name, Kind: tabular.Categorical, Cells: order},
		Value:    Series{Name: value.Name, Kind: tabular.Numeric, Cells: totals},
	}, nil
}

func dropNulls(cells []any) []any {
	out := make([]any, 0, len(cells))
	for _, c := range cells {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
