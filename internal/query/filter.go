// Package query implements the record search behind the records table.
package query

import (
	"strings"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

// Columns are the record columns shown in the records table, in display order.
var Columns = []string{
	records.ColDistrict,
	records.ColCollege,
	records.ColName,
	records.ColDesignation,
	records.ColAction,
	records.ColReason,
	records.ColSalary,
}

// Filter returns the records where any single field contains term,
// ignoring case. Each field is tested on its own, so a term never matches
// across the boundary of two fields. An empty term returns recs unchanged.
// Matches keep their original order and recs is not modified.
func Filter(recs []records.Record, term string) []records.Record {
	if term == "" {
		return recs
	}
	needle := strings.ToLower(term)
	out := make([]records.Record, 0)
	for _, r := range recs {
		if Match(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether any field of r contains the lower-cased needle.
func Match(r records.Record, needle string) bool {
	for _, col := range records.Columns {
		if strings.Contains(strings.ToLower(r.Field(col)), needle) {
			return true
		}
	}
	return false
}
