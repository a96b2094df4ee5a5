// Package tabular normalizes loosely-structured chart input (JSON text, CSV
// text, arrays of records or scalars, mappings) into a single canonical
// column-oriented table that the role resolver consumes.
package tabular

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a column for role resolution. A column is numeric when
// every non-null cell parses as a real number; anything else is categorical.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column is one named, ordered series of cells. A cell is nil (null),
// float64, or string; normalization never produces anything else.
type Column struct {
	Name  string
	Cells []any
}

// Table is the canonical tabular structure: named columns of equal length.
type Table struct {
	Columns []Column
}

// FormatError reports input that cannot be normalized into a table.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "data format: " + e.Reason
}

// Rows returns the row count; all columns have the same length.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Column looks a column up by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Kind recomputes the column's classification. Null cells are skipped, so a
// numeric column with gaps stays numeric; an empty column is vacuously
// numeric and the resolver decides what to do with it.
func (c Column) Kind() Kind {
	for _, cell := range c.Cells {
		if cell == nil {
			continue
		}
		if _, ok := Number(cell); !ok {
			return Categorical
		}
	}
	return Numeric
}

// Number reports whether a cell carries a numeric value, parsing numeric
// text the way column classification requires. ParseFloat accepts "NaN" and
// "Inf" spellings, but non-finite values never count as numbers here; every
// numeric consumer downstream needs finite arithmetic.
func Number(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, finite(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || !finite(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Label formats a cell for use as an axis tick or pie label.
func Label(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}
