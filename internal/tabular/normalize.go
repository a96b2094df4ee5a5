package tabular

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Normalize converts raw chart input into the canonical table. Accepted
// shapes: JSON or CSV text, a sequence (records or scalars), or a mapping.
// Anything else is a *FormatError.
func Normalize(raw any) (*Table, error) {
	switch v := raw.(type) {
	case nil:
		return nil, &FormatError{Reason: "data is missing"}
	case string:
		return normalizeText(v)
	case []any:
		return fromRecords(v)
	case map[string]any:
		return fromMapping(sortedPairs(v))
	case *orderedmap.OrderedMap[string, any]:
		return fromMapping(orderedPairs(v))
	default:
		return nil, &FormatError{Reason: fmt.Sprintf("data must be JSON/CSV text, a sequence, or a mapping, got %T", raw)}
	}
}

type pair struct {
	key   string
	value any
}

// sortedPairs gives native maps a stable order. Go maps carry no insertion
// order, so repeated calls stay bit-identical only if we impose one.
func sortedPairs(m map[string]any) []pair {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]pair, 0, len(keys))
	for _, k := range keys {
		out = append(out, pair{key: k, value: m[k]})
	}
	return out
}

func orderedPairs(m *orderedmap.OrderedMap[string, any]) []pair {
	out := make([]pair, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		out = append(out, pair{key: p.Key, value: p.Value})
	}
	return out
}

// normalizeText tries strict JSON first, then CSV. A JSON scalar is a parse
// success but not a tabular shape, so it fails rather than falling through.
func normalizeText(text string) (*Table, error) {
	v, err := parseJSON(text)
	if err == nil {
		switch t := v.(type) {
		case []any:
			return fromRecords(t)
		case *orderedmap.OrderedMap[string, any]:
			return fromMapping(orderedPairs(t))
		default:
			return nil, &FormatError{Reason: "JSON text must be an array or an object"}
		}
	}
	return parseCSV(text)
}

// parseJSON decodes a complete JSON value, keeping object key order.
func parseJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, float64, bool, or nil
		return tok, nil
	}
	switch delim {
	case '{':
		obj := orderedmap.New[string, any]()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string")
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// fromRecords builds a table from a sequence. All-mapping elements become
// rows with their keys unioned into columns; otherwise every element must be
// a scalar and the table gets a single synthetic "value" column.
func fromRecords(elems []any) (*Table, error) {
	if len(elems) == 0 {
		return &Table{}, nil
	}

	allMappings := true
	for _, e := range elems {
		switch e.(type) {
		case map[string]any, *orderedmap.OrderedMap[string, any]:
		default:
			allMappings = false
		}
	}

	if !allMappings {
		cells := make([]any, len(elems))
		for i, e := range elems {
			c, err := cellValue(e)
			if err != nil {
				return nil, &FormatError{Reason: "sequence elements must be all records or all scalars"}
			}
			cells[i] = c
		}
		return &Table{Columns: []Column{{Name: "value", Cells: cells}}}, nil
	}

	// Union keys in first-seen order across records.
	var names []string
	seen := make(map[string]bool)
	rows := make([][]pair, len(elems))
	for i, e := range elems {
		var ps []pair
		switch m := e.(type) {
		case map[string]any:
			ps = sortedPairs(m)
		case *orderedmap.OrderedMap[string, any]:
			ps = orderedPairs(m)
		}
		rows[i] = ps
		for _, p := range ps {
			if !seen[p.key] {
				seen[p.key] = true
				names = append(names, p.key)
			}
		}
	}

	cols := make([]Column, len(names))
	index := make(map[string]int, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Cells: make([]any, len(elems))}
		index[n] = i
	}
	for r, ps := range rows {
		for _, p := range ps {
			c, err := cellValue(p.value)
			if err != nil {
				return nil, err
			}
			cols[index[p.key]].Cells[r] = c
		}
	}
	return &Table{Columns: cols}, nil
}

// fromMapping applies the inherited disambiguation quirk: a mapping whose
// values are all bare numbers is an index->value series (keys become a
// category column), while any other mapping is column-name -> column-values.
// An empty mapping is vacuously all-numeric and yields an empty table; the
// resolver rejects it downstream.
func fromMapping(pairs []pair) (*Table, error) {
	if len(pairs) == 0 {
		return &Table{}, nil
	}

	allNumbers := true
	for _, p := range pairs {
		if !bareNumber(p.value) {
			allNumbers = false
			break
		}
	}

	if allNumbers {
		keys := make([]any, len(pairs))
		vals := make([]any, len(pairs))
		for i, p := range pairs {
			keys[i] = p.key
			n, _ := numberOf(p.value)
			vals[i] = n
		}
		return &Table{Columns: []Column{
			{Name: "index", Cells: keys},
			{Name: "value", Cells: vals},
		}}, nil
	}

	// Column orientation. Sequences must agree on length; scalars broadcast.
	length := -1
	for _, p := range pairs {
		if seq, ok := p.value.([]any); ok {
			if length >= 0 && len(seq) != length {
				return nil, &FormatError{Reason: "columns must be the same length"}
			}
			length = len(seq)
		}
	}
	if length < 0 {
		length = 1
	}

	cols := make([]Column, 0, len(pairs))
	for _, p := range pairs {
		cells := make([]any, length)
		if seq, ok := p.value.([]any); ok {
			for i, e := range seq {
				c, err := cellValue(e)
				if err != nil {
					return nil, err
				}
				cells[i] = c
			}
		} else {
			c, err := cellValue(p.value)
			if err != nil {
				return nil, err
			}
			for i := range cells {
				cells[i] = c
			}
		}
		cols = append(cols, Column{Name: p.key, Cells: cells})
	}
	return &Table{Columns: cols}, nil
}

// bareNumber is the mapping-disambiguation test: an actual number, not
// numeric text. "5" stays a column name's worth of text here even though
// column classification would parse it.
func bareNumber(v any) bool {
	switch v.(type) {
	case float64, int, int32, int64, json.Number:
		return true
	default:
		return false
	}
}

func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// cellValue coerces one input value into the canonical cell domain
// (nil, float64, string). Non-finite numbers become nulls; nested structures
// are not cells.
func cellValue(v any) (any, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case string:
		return c, nil
	case bool:
		return strconv.FormatBool(c), nil
	default:
		if n, ok := numberOf(v); ok {
			if !finite(n) {
				return nil, nil
			}
			return n, nil
		}
		return nil, &FormatError{Reason: fmt.Sprintf("unsupported cell value of type %T", v)}
	}
}
