package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/actionboard-cli/internal/loader"
	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) (*loader.Payload, error) {
	return nil, errors.New("no such host")
}

func sampleResult(t *testing.T) loader.Result {
	t.Helper()
	res := loader.New(loader.Options{}).Load(context.Background(), "")
	if res.Err != nil {
		t.Fatalf("load sample: %v", res.Err)
	}
	return res
}

func TestFormatPKR(t *testing.T) {
	cases := map[int64]string{
		0:       "PKR 0",
		950:     "PKR 950",
		12000:   "PKR 12,000",
		1234567: "PKR 1,234,567",
	}
	for in, want := range cases {
		if got := FormatPKR(in); got != want {
			t.Errorf("FormatPKR(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildSample(t *testing.T) {
	d, err := Build(sampleResult(t), "", 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.Status != "sample" || d.Notice != loader.SampleNotice || d.Warning != "" {
		t.Fatalf("unexpected status fields: %q %q %q", d.Status, d.Notice, d.Warning)
	}
	if len(d.Rows) != 15 || d.Empty != "" {
		t.Fatalf("expected all 15 rows, got %d (%q)", len(d.Rows), d.Empty)
	}
	if d.Summary.TotalActions != 15 || len(d.Actions) != 3 || len(d.TopReasons) != 2 {
		t.Fatalf("unexpected aggregates: %+v %+v %+v", d.Summary, d.Actions, d.TopReasons)
	}
	if d.Failed() {
		t.Fatalf("sample dashboard must not be failed")
	}
}

func TestBuildSearchNoMatch(t *testing.T) {
	d, err := Build(sampleResult(t), "Peshawar", 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(d.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(d.Rows))
	}
	if d.Empty != "No records found matching 'Peshawar'." {
		t.Fatalf("unexpected empty message %q", d.Empty)
	}
	// KPIs describe the whole data set, not the search result
	if d.Summary.TotalActions != 15 {
		t.Fatalf("expected KPIs over the full data set, got %d", d.Summary.TotalActions)
	}
}

func TestBuildFailedSource(t *testing.T) {
	res := loader.New(loader.Options{Fetcher: failingFetcher{}}).Load(context.Background(), "https://example.org/sheet.csv")
	d, err := Build(res, "", 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !d.Failed() || d.Status != "failed" {
		t.Fatalf("expected failed dashboard, got %q", d.Status)
	}
	if !strings.Contains(d.Warning, "no such host") {
		t.Fatalf("warning should carry the failure detail: %q", d.Warning)
	}
	if d.Empty != "" || len(d.Rows) != 0 || !d.Summary.Empty() {
		t.Fatalf("failed dashboard should be empty: %+v", d)
	}
	md := d.Markdown()
	if !strings.Contains(md, "Warning: ") || strings.Contains(md, "[KEY PERFORMANCE INDICATORS]") {
		t.Fatalf("failed report should stop after the warning:\n%s", md)
	}
}

func TestBuildEmptyDataSet(t *testing.T) {
	d, err := Build(loader.Result{Locator: "empty.csv", Records: []records.Record{}}, "", 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.Empty != "The data set is empty." {
		t.Fatalf("unexpected empty message %q", d.Empty)
	}
}

func TestMarkdownSections(t *testing.T) {
	d, err := Build(sampleResult(t), "proxy", 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	md := d.Markdown()
	for _, want := range []string{
		"[ACTION DASHBOARD]",
		"- Source: built-in sample data",
		"Note: Showing sample data.",
		"- Total Actions: 15",
		"- Unique Colleges: 7",
		"- Total Salary Deducted: PKR 22,000",
		"- Warnings Issued: 9",
		"- Warning: 9 (60.0%)",
		"[TOP 2 REASONS FOR ACTION]",
		"- Habitual Absentiesm: 9\n- Proxy Attendance: 6",
		`Search: "proxy" (6 of 15 records)`,
		"| District | College | Name | Designation | Action | Reason | Salary Deducted |",
		"| Bannu | 01. Govt Postgraduate College, Bannu | Mohib ur Rehman | Naib Qasid | Explanation | Proxy Attendance | PKR 0 |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRecordsTableEscapesPipes(t *testing.T) {
	out := RecordsTable([]records.Record{{Name: "A|B", Reason: "line\nbreak", Salary: 1500}})
	if !strings.Contains(out, "| A/B |") || !strings.Contains(out, "| line break |") || !strings.Contains(out, "| PKR 1,500 |") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestRenderHTML(t *testing.T) {
	html := string(RenderHTML("- Total: 1\n\n| A | B |\n|---|---|\n| x | <script>alert(1)</script> |\n"))
	if !strings.Contains(html, "<li>Total: 1</li>") {
		t.Fatalf("list not rendered: %s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Fatalf("table not rendered: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw html must be dropped: %s", html)
	}
}
