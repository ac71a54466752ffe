package report

import (
	"strings"

	"github.com/KaramelBytes/actionboard-cli/internal/query"
	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

// columnTitle maps table columns to their display headers.
var columnTitle = map[string]string{
	records.ColSalary: "Salary Deducted",
}

// RecordsTable renders rows as a Markdown table with the display columns.
// Salary is shown in PKR.
func RecordsTable(rows []records.Record) string {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range query.Columns {
		t := c
		if v, ok := columnTitle[c]; ok {
			t = v
		}
		b.WriteString(" " + t + " |")
	}
	b.WriteString("\n|")
	for range query.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("|")
		for _, c := range query.Columns {
			v := r.Field(c)
			if c == records.ColSalary {
				v = FormatPKR(r.Salary)
			}
			b.WriteString(" " + safeVal(v) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}
