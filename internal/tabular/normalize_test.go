package tabular

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeJSONText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		validate func(t *testing.T, tbl *Table)
	}{
		{
			name: "object with all numeric values becomes index/value series",
			raw:  `{"A": 10, "B": -5, "C": 15}`,
			validate: func(t *testing.T, tbl *Table) {
				if len(tbl.Columns) != 2 {
					t.Fatalf("expected 2 columns, got %d", len(tbl.Columns))
				}
				if tbl.Columns[0].Name != "index" || tbl.Columns[1].Name != "value" {
					t.Errorf("unexpected column names: %q, %q", tbl.Columns[0].Name, tbl.Columns[1].Name)
				}
				wantKeys := []any{"A", "B", "C"}
				if !reflect.DeepEqual(tbl.Columns[0].Cells, wantKeys) {
					t.Errorf("keys not in key order: %v", tbl.Columns[0].Cells)
				}
				wantVals := []any{10.0, -5.0, 15.0}
				if !reflect.DeepEqual(tbl.Columns[1].Cells, wantVals) {
					t.Errorf("values not in key order: %v", tbl.Columns[1].Cells)
				}
			},
		},
		{
			name: "object with list values becomes named columns",
			raw:  `{"category": ["A", "B"], "value": [1, 2]}`,
			validate: func(t *testing.T, tbl *Table) {
				if len(tbl.Columns) != 2 || tbl.Rows() != 2 {
					t.Fatalf("expected 2x2 table, got %d columns x %d rows", len(tbl.Columns), tbl.Rows())
				}
				cat, _ := tbl.Column("category")
				if cat.Cells[0] != "A" || cat.Cells[1] != "B" {
					t.Errorf("unexpected category cells: %v", cat.Cells)
				}
				val, _ := tbl.Column("value")
				if val.Cells[0] != 1.0 || val.Cells[1] != 2.0 {
					t.Errorf("unexpected value cells: %v", val.Cells)
				}
			},
		},
		{
			name: "object mixing lists and scalars broadcasts the scalar",
			raw:  `{"x": [1, 2, 3], "unit": "ms"}`,
			validate: func(t *testing.T, tbl *Table) {
				unit, _ := tbl.Column("unit")
				if len(unit.Cells) != 3 {
					t.Fatalf("expected broadcast to 3 cells, got %d", len(unit.Cells))
				}
				for _, c := range unit.Cells {
					if c != "ms" {
						t.Errorf("unexpected broadcast cell: %v", c)
					}
				}
			},
		},
		{
			name: "array of records unions keys and fills missing cells with null",
			raw:  `[{"a": 1, "b": "x"}, {"a": 2, "c": 3}]`,
			validate: func(t *testing.T, tbl *Table) {
				if len(tbl.Columns) != 3 || tbl.Rows() != 2 {
					t.Fatalf("expected 3x2 table, got %d columns x %d rows", len(tbl.Columns), tbl.Rows())
				}
				b, _ := tbl.Column("b")
				if b.Cells[1] != nil {
					t.Errorf("missing key should be null, got %v", b.Cells[1])
				}
				c, _ := tbl.Column("c")
				if c.Cells[0] != nil || c.Cells[1] != 3.0 {
					t.Errorf("unexpected c cells: %v", c.Cells)
				}
			},
		},
		{
			name: "array of scalars becomes a single synthetic column",
			raw:  `[1, 4, 2, 8]`,
			validate: func(t *testing.T, tbl *Table) {
				if len(tbl.Columns) != 1 || tbl.Columns[0].Name != "value" {
					t.Fatalf("expected single 'value' column, got %+v", tbl.Columns)
				}
				if tbl.Rows() != 4 || tbl.Columns[0].Cells[2] != 2.0 {
					t.Errorf("unexpected cells: %v", tbl.Columns[0].Cells)
				}
			},
		},
		{
			name: "empty array yields an empty table",
			raw:  `[]`,
			validate: func(t *testing.T, tbl *Table) {
				if len(tbl.Columns) != 0 || tbl.Rows() != 0 {
					t.Errorf("expected empty table, got %+v", tbl)
				}
			},
		},
		{
			name: "empty object yields an empty table",
			raw:  `{}`,
			validate: func(t *testing.T, tbl *Table) {
				if len(tbl.Columns) != 0 || tbl.Rows() != 0 {
					t.Errorf("expected empty table, got %+v", tbl)
				}
			},
		},
		{
			name: "booleans become text cells",
			raw:  `{"flag": [true, false]}`,
			validate: func(t *testing.T, tbl *Table) {
				flag, _ := tbl.Column("flag")
				if flag.Cells[0] != "true" || flag.Cells[1] != "false" {
					t.Errorf("unexpected bool coercion: %v", flag.Cells)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			tt.validate(t, tbl)
		})
	}
}

func TestNormalizeNative(t *testing.T) {
	t.Run("sequence of records", func(t *testing.T) {
		tbl, err := Normalize([]any{
			map[string]any{"name": "A", "count": 1.0},
			map[string]any{"name": "B", "count": 2.0},
		})
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if len(tbl.Columns) != 2 || tbl.Rows() != 2 {
			t.Fatalf("expected 2x2 table, got %d columns x %d rows", len(tbl.Columns), tbl.Rows())
		}
	})

	t.Run("native map keys are sorted for determinism", func(t *testing.T) {
		tbl, err := Normalize(map[string]any{"b": 2.0, "a": 1.0, "c": 3.0})
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		want := []any{"a", "b", "c"}
		if !reflect.DeepEqual(tbl.Columns[0].Cells, want) {
			t.Errorf("expected sorted keys, got %v", tbl.Columns[0].Cells)
		}
	})

	t.Run("integer cells are widened to float64", func(t *testing.T) {
		tbl, err := Normalize([]any{1, 2, 3})
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if tbl.Columns[0].Cells[0] != 1.0 {
			t.Errorf("expected float64 cell, got %T", tbl.Columns[0].Cells[0])
		}
	})
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "nil input", raw: nil},
		{name: "unsupported type", raw: 42},
		{name: "scalar JSON text", raw: "5"},
		{name: "unparseable text", raw: "\"unclosed"},
		{name: "unequal column lengths", raw: `{"a": [1, 2], "b": [1, 2, 3]}`},
		{name: "mixed records and scalars", raw: `[{"a": 1}, 2]`},
		{name: "nested structure as cell", raw: `{"a": [[1, 2]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("expected *FormatError, got %T: %v", err, err)
			}
		})
	}
}
