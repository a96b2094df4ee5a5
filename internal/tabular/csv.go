package tabular

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// parseCSV is the fallback for text that is not valid JSON. The first line
// is the header; each column is coerced to numeric cells when every
// non-empty cell in it parses as a number, otherwise kept as text. Empty
// cells become nulls either way.
func parseCSV(text string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	records, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Reason: "could not parse string data as JSON or CSV"}
	}
	if len(records) == 0 {
		return nil, &FormatError{Reason: "insufficient data"}
	}

	header := uniqueNames(records[0])
	rows := records[1:]

	cols := make([]Column, len(header))
	for i, name := range header {
		raw := make([]string, len(rows))
		for r, row := range rows {
			raw[r] = row[i]
		}
		cols[i] = Column{Name: name, Cells: coerceCells(raw)}
	}
	return &Table{Columns: cols}, nil
}

func coerceCells(raw []string) []any {
	numeric := true
	for _, s := range raw {
		if nullCell(s) {
			continue
		}
		if _, ok := Number(s); !ok {
			numeric = false
			break
		}
	}

	cells := make([]any, len(raw))
	for i, s := range raw {
		if nullCell(s) {
			cells[i] = nil
			continue
		}
		if numeric {
			n, _ := Number(s)
			cells[i] = n
		} else {
			cells[i] = s
		}
	}
	return cells
}

// nullCell reports fields that normalize to null: empty text and non-finite
// numeric text ("NaN", "Inf"), which drops out of the table the same way a
// missing value does.
func nullCell(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !finite(f) {
		return true
	}
	return false
}

// uniqueNames disambiguates duplicate header fields so column names stay
// unique in the canonical table.
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			out[i] = name
		} else {
			out[i] = fmt.Sprintf("%s_%d", name, n+1)
		}
	}
	return out
}
