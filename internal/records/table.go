package records

import "strconv"

// CellKind tags the value held by a Cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
)

// Cell is a loosely typed value read from a tabular source: either a string
// or a number. The zero value is an empty cell.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// StringCell wraps s.
func StringCell(s string) Cell { return Cell{Kind: KindString, Str: s} }

// NumberCell wraps f.
func NumberCell(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// String returns the textual form of the cell. Numbers are printed without
// trailing zeros (3 rather than 3.0).
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	}
	return ""
}

// Table is a raw table as decoded from a source, before normalization.
// Rows may be shorter or longer than Header.
type Table struct {
	Header []string
	Rows   [][]Cell
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// StringRows builds a table of string cells, the shape produced by CSV input.
func StringRows(header []string, rows [][]string) *Table {
	t := &Table{Header: append([]string(nil), header...), Rows: make([][]Cell, 0, len(rows))}
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, v := range row {
			cells[i] = StringCell(v)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
