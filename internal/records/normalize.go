package records

import (
	"math"
	"strconv"
	"strings"
)

// renames maps source headers (after trimming) to canonical column names.
// Matching is exact and case-sensitive.
var renames = map[string]string{
	"College Gender":  ColGender,
	"College Type":    ColType,
	"Salary Deducted": ColSalary,
}

// Normalize maps a raw table onto the canonical Record schema.
//
// Header names are trimmed and renamed, columns missing from the input are
// left empty, Salary is coerced to a non-negative integer and the District,
// College, Category, Action and Reason fields are trimmed. Malformed cells
// degrade to zero values; Normalize never fails and always returns exactly
// one record per input row.
func Normalize(t *Table) []Record {
	if t.Len() == 0 {
		return []Record{}
	}
	// canonical column -> source index; first matching header wins
	index := make(map[string]int, len(Columns))
	for i, h := range t.Header {
		name := strings.TrimSpace(h)
		if to, ok := renames[name]; ok {
			name = to
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	out := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := func(col string) Cell {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return Cell{}
			}
			return row[i]
		}
		text := func(col string) string { return cell(col).String() }
		out = append(out, Record{
			District:    strings.TrimSpace(text(ColDistrict)),
			College:     strings.TrimSpace(text(ColCollege)),
			Gender:      text(ColGender),
			Type:        text(ColType),
			Category:    strings.TrimSpace(text(ColCategory)),
			Action:      strings.TrimSpace(text(ColAction)),
			Name:        text(ColName),
			Designation: text(ColDesignation),
			Salary:      CoerceSalary(cell(ColSalary)),
			Reason:      strings.TrimSpace(text(ColReason)),
		})
	}
	return out
}

// CoerceSalary converts a cell to a non-negative whole amount. Values that
// are not numeric, not finite, negative or out of range become 0; fractions
// are truncated.
func CoerceSalary(c Cell) int64 {
	var f float64
	switch c.Kind {
	case KindNumber:
		f = c.Num
	case KindString:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Str), 64)
		if err != nil {
			return 0
		}
		f = v
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}
