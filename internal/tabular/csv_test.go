package tabular

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeCSVText(t *testing.T) {
	t.Run("header plus typed columns", func(t *testing.T) {
		tbl, err := Normalize("category,value\nA,10\nB,20\nC,15\nD,25")
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		cat, ok := tbl.Column("category")
		if !ok {
			t.Fatal("missing category column")
		}
		if !reflect.DeepEqual(cat.Cells, []any{"A", "B", "C", "D"}) {
			t.Errorf("unexpected category cells: %v", cat.Cells)
		}
		if cat.Kind() != Categorical {
			t.Errorf("category column should be categorical")
		}

		val, _ := tbl.Column("value")
		if !reflect.DeepEqual(val.Cells, []any{10.0, 20.0, 15.0, 25.0}) {
			t.Errorf("unexpected value cells: %v", val.Cells)
		}
		if val.Kind() != Numeric {
			t.Errorf("value column should be numeric")
		}
	})

	t.Run("mixed column stays text", func(t *testing.T) {
		tbl, err := Normalize("id\n1\ntwo\n3")
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		id := tbl.Columns[0]
		if id.Cells[0] != "1" {
			t.Errorf("mixed column should keep text cells, got %T", id.Cells[0])
		}
	})

	t.Run("empty cells become nulls without breaking numeric coercion", func(t *testing.T) {
		tbl, err := Normalize("k,v\nA,1\nB,\nC,3")
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		v, _ := tbl.Column("v")
		if v.Cells[1] != nil {
			t.Errorf("expected null cell, got %v", v.Cells[1])
		}
		if v.Kind() != Numeric {
			t.Errorf("nulls must not demote a numeric column")
		}
	})

	t.Run("NaN cells become nulls and keep the column numeric", func(t *testing.T) {
		tbl, err := Normalize("v\n1\nNaN\n3")
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		v := tbl.Columns[0]
		if v.Cells[1] != nil {
			t.Errorf("expected null cell for NaN, got %v", v.Cells[1])
		}
		if v.Kind() != Numeric {
			t.Errorf("NaN must not demote a numeric column")
		}
	})

	t.Run("header only yields a zero-row table", func(t *testing.T) {
		tbl, err := Normalize("a,b")
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if len(tbl.Columns) != 2 || tbl.Rows() != 0 {
			t.Errorf("expected 2 columns and 0 rows, got %d/%d", len(tbl.Columns), tbl.Rows())
		}
	})

	t.Run("duplicate header names are disambiguated", func(t *testing.T) {
		tbl, err := Normalize("x,x\n1,2")
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if tbl.Columns[0].Name != "x" || tbl.Columns[1].Name != "x_2" {
			t.Errorf("unexpected names: %q, %q", tbl.Columns[0].Name, tbl.Columns[1].Name)
		}
	})

	t.Run("empty text is insufficient data", func(t *testing.T) {
		_, err := Normalize("")
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FormatError, got %v", err)
		}
		if fe.Reason != "insufficient data" {
			t.Errorf("unexpected reason: %q", fe.Reason)
		}
	})

	t.Run("ragged rows fail", func(t *testing.T) {
		_, err := Normalize("a,b\n1\n2,3")
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FormatError, got %v", err)
		}
	})
}
