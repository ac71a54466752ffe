package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
)

// Markdown renders the dashboard as a plain-text report.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[ACTION DASHBOARD]\n\n")
	b.WriteString(d.Title + "\n\n")
	if d.Source != "" {
		b.WriteString(fmt.Sprintf("- Source: %s\n", safeVal(d.Source)))
	} else {
		b.WriteString("- Source: built-in sample data\n")
	}
	b.WriteString(fmt.Sprintf("- Status: %s\n", d.Status))
	if !d.LoadedAt.IsZero() {
		b.WriteString(fmt.Sprintf("- Loaded: %s\n", d.LoadedAt.Format("2006-01-02 15:04:05 MST")))
	}
	if d.Notice != "" {
		b.WriteString(fmt.Sprintf("\nNote: %s\n", d.Notice))
	}
	if d.Warning != "" {
		b.WriteString(fmt.Sprintf("\nWarning: %s\n", d.Warning))
		return b.String()
	}

	s := d.Summary
	b.WriteString("\n[KEY PERFORMANCE INDICATORS]\n\n")
	b.WriteString(fmt.Sprintf("- Total Actions: %s\n", FormatCount(s.TotalActions)))
	b.WriteString(fmt.Sprintf("- Unique Colleges: %s\n", FormatCount(s.UniqueColleges)))
	b.WriteString(fmt.Sprintf("- Total Salary Deducted: %s\n", FormatPKR(s.TotalSalaryDeducted)))
	b.WriteString(fmt.Sprintf("- Employee Issues: %s\n", FormatCount(s.EmployeeIssues)))
	b.WriteString(fmt.Sprintf("- Warnings Issued: %s\n", FormatCount(s.Warnings)))
	b.WriteString(fmt.Sprintf("- Explanations Called: %s\n", FormatCount(s.Explanations)))
	b.WriteString(fmt.Sprintf("- Inquiries Initiated: %s\n", FormatCount(s.Inquiries)))
	if d.Salary.Count > 0 {
		b.WriteString(fmt.Sprintf("- Deductions: %d (mean %s, median %s, max %s)\n",
			d.Salary.Count, FormatPKR(int64(d.Salary.Mean)), FormatPKR(int64(d.Salary.Median)), FormatPKR(int64(d.Salary.Max))))
	}

	if len(d.Actions) > 0 {
		b.WriteString("\n[ACTION BREAKDOWN]\n\n")
		for i, a := range d.Actions {
			b.WriteString(fmt.Sprintf("- %s: %d (%s)\n", safeVal(label(a.Label)), a.Count, percent(d.Actions.Share(i))))
		}
	}
	if len(d.TopReasons) > 0 {
		b.WriteString(fmt.Sprintf("\n[TOP %d REASONS FOR ACTION]\n\n", len(d.TopReasons)))
		for _, r := range d.TopReasons.Descending() {
			b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(label(r.Label)), r.Count))
		}
	}

	b.WriteString("\n[DETAILED RECORDS]\n\n")
	if d.Search != "" {
		b.WriteString(fmt.Sprintf("Search: %q (%d of %d records)\n\n", d.Search, len(d.Rows), s.TotalActions))
	}
	if len(d.Rows) == 0 {
		b.WriteString(d.Empty + "\n")
		return b.String()
	}
	b.WriteString(RecordsTable(d.Rows))
	return b.String()
}

// label shows blank group labels as "(blank)".
func label(s string) string {
	if s == "" {
		return "(blank)"
	}
	return s
}

// RenderHTML converts Markdown to an HTML fragment. Raw HTML in the input
// is dropped, since record text comes from an external sheet.
func RenderHTML(md string) []byte {
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return markdown.ToHTML([]byte(md), p, r)
}
