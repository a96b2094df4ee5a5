package tabular

import (
	"math"
	"testing"
)

func TestColumnKind(t *testing.T) {
	tests := []struct {
		name  string
		cells []any
		want  Kind
	}{
		{name: "all numbers", cells: []any{1.0, 2.0}, want: Numeric},
		{name: "numeric text counts as numeric", cells: []any{"1", "2.5"}, want: Numeric},
		{name: "one word makes it categorical", cells: []any{1.0, "x"}, want: Categorical},
		{name: "nulls are skipped", cells: []any{nil, 3.0}, want: Numeric},
		{name: "empty column is vacuously numeric", cells: nil, want: Numeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Column{Name: "c", Cells: tt.cells}
			if got := c.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	if n, ok := Number(" 2.5 "); !ok || n != 2.5 {
		t.Errorf("Number should trim and parse, got %v %v", n, ok)
	}
	if _, ok := Number("two"); ok {
		t.Error("Number should reject non-numeric text")
	}
	if _, ok := Number(nil); ok {
		t.Error("Number should reject nil")
	}
	// ParseFloat accepts these spellings; the cell domain does not
	for _, s := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		if _, ok := Number(s); ok {
			t.Errorf("Number should reject %q", s)
		}
	}
	if _, ok := Number(math.NaN()); ok {
		t.Error("Number should reject a NaN cell")
	}
}

func TestLabel(t *testing.T) {
	if Label(2.0) != "2" {
		t.Errorf("Label(2.0) = %q", Label(2.0))
	}
	if Label("x") != "x" {
		t.Errorf("Label(x) = %q", Label("x"))
	}
	if Label(nil) != "" {
		t.Errorf("Label(nil) = %q", Label(nil))
	}
}
