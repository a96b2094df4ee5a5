package roles

import (
	"fmt"

	"plotmcp/internal/tabular"
)

// pairResult is the outcome of the shared two-column rule. When the table
// has a single column, value is set and synthetic is true: the caller
// supplies its own category series (positional index or generated labels).
type pairResult struct {
	category  tabular.Column
	value     tabular.Column
	synthetic bool
}

// resolvePair implements the disambiguation shared by bar, line, and pie.
// Explicit hints naming two existing columns are honored verbatim in the
// given order. Otherwise the first two columns are taken and, when exactly
// one of them is categorical, it becomes the category regardless of
// position; ties keep left-to-right order.
func resolvePair(t *tabular.Table, req Request) (pairResult, error) {
	if req.Category != "" && req.Value != "" {
		cat, okCat := t.Column(req.Category)
		val, okVal := t.Column(req.Value)
		if okCat && okVal {
			return pairResult{category: cat, value: val}, nil
		}
	}

	switch len(t.Columns) {
	case 0:
		return pairResult{}, &AssignmentError{Reason: "insufficient data"}
	case 1:
		return pairResult{value: t.Columns[0], synthetic: true}, nil
	}

	a, b := t.Columns[0], t.Columns[1]
	ka, kb := a.Kind(), b.Kind()
	if ka == tabular.Numeric && kb == tabular.Categorical {
		return pairResult{category: b, value: a}, nil
	}
	return pairResult{category: a, value: b}, nil
}

func resolveXY(t *tabular.Table, req Request) (*Assignment, error) {
	pr, err := resolvePair(t, req)
	if err != nil {
		return nil, err
	}

	asg := &Assignment{Chart: req.Chart, Value: seriesOf(pr.value)}
	if pr.synthetic {
		asg.Category = indexSeries(len(pr.value.Cells))
	} else {
		asg.Category = seriesOf(pr.category)
	}
	return asg, nil
}

func resolvePie(t *tabular.Table, req Request) (*Assignment, error) {
	pr, err := resolvePair(t, req)
	if err != nil {
		return nil, err
	}

	labels := Series{}
	if pr.synthetic {
		labels = categoryLabels(len(pr.value.Cells))
	} else {
		labels = seriesOf(pr.category)
	}
	values := seriesOf(pr.value)

	// Zero and negative magnitudes are filtered out, not rejected; only an
	// empty remainder is an error.
	var keptLabels, keptValues []any
	for i, cell := range values.Cells {
		if cell == nil {
			continue
		}
		n, ok := tabular.Number(cell)
		if !ok {
			return nil, &AssignmentError{Reason: fmt.Sprintf("non-numeric value %q for pie chart", tabular.Label(cell))}
		}
		if n <= 0 {
			continue
		}
		keptValues = append(keptValues, n)
		if i < len(labels.Cells) {
			keptLabels = append(keptLabels, labels.Cells[i])
		} else {
			keptLabels = append(keptLabels, nil)
		}
	}
	if len(keptValues) == 0 {
		return nil, &AssignmentError{Reason: "no positive values"}
	}

	return &Assignment{
		Chart:    Pie,
		Category: Series{Name: labels.Name, Kind: labels.Kind, Cells: keptLabels},
		Value:    Series{Name: values.Name, Kind: tabular.Numeric, Cells: keptValues},
	}, nil
}

// indexSeries is the synthetic 0-based x axis for single-column bar and
// line input.
func indexSeries(n int) Series {
	cells := make([]any, n)
	for i := range cells {
		cells[i] = float64(i)
	}
	return Series{Name: "index", Kind: tabular.Numeric, Cells: cells}
}

// categoryLabels is the pie variant: generated "Category N" labels,
// 1-indexed in the text.
func categoryLabels(n int) Series {
	cells := make([]any, n)
	for i := range cells {
		cells[i] = fmt.Sprintf("Category %d", i+1)
	}
	return Series{Name: "category", Kind: tabular.Categorical, Cells: cells}
}
