package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sheetCSV = "District,College,College Gender,Category,Action,Name,Designation,Salary Deducted,Reason\n" +
	"Kohat,GPGC Kohat,Male,Employee,Warning,Sadiq Noor,Naib Qasid,0,Habitual Absentiesm\n" +
	"Bannu,GDC Kakki,Male,Employee,Explanation,Farid Zia,Lecturer,5000,Proxy Attendance\n"

// resetFlags restores every flag to its default; cobra keeps flag state
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns stdout, stderr and the
// command error.
func execCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// runCmd is a helper to execute the root command with args that must succeed.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolate points HOME at a temp dir so no user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeSheet(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "october.csv")
	if err := os.WriteFile(p, []byte(sheetCSV), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return p
}

type summaryJSON struct {
	Status  string `json:"status"`
	Notice  string `json:"notice"`
	Summary struct {
		TotalActions        int   `json:"total_actions"`
		UniqueColleges      int   `json:"unique_colleges"`
		TotalSalaryDeducted int64 `json:"total_salary_deducted"`
		Warnings            int   `json:"warnings"`
	} `json:"summary"`
	Rows []struct {
		Name string `json:"name"`
	} `json:"rows"`
}

func TestCLI_SummarySampleMarkdown(t *testing.T) {
	isolate(t)
	out := runCmd(t, "summary")
	for _, want := range []string{
		"[ACTION DASHBOARD]",
		"Note: Showing sample data.",
		"- Total Actions: 15",
		"- Unique Colleges: 7",
		"- Total Salary Deducted: PKR 22,000",
		"[TOP 2 REASONS FOR ACTION]",
		"| Asmat ullah |",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_SummaryJSONToFile(t *testing.T) {
	home := isolate(t)
	outPath := filepath.Join(home, "reports", "summary.json")
	out := runCmd(t, "summary", "--format", "json", "-o", outPath)
	if !strings.Contains(out, "✓ Wrote summary to") {
		t.Fatalf("expected confirmation, got %q", out)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got summaryJSON
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "sample" || got.Summary.TotalActions != 15 || got.Summary.Warnings != 9 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if len(got.Rows) != 15 {
		t.Fatalf("expected 15 rows, got %d", len(got.Rows))
	}
}

func TestCLI_SummaryLocalFileWithSearch(t *testing.T) {
	home := isolate(t)
	sheet := writeSheet(t, home)
	out := runCmd(t, "summary", sheet, "--format", "json", "-q", "kohat")
	var got summaryJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.Status != "loaded" || got.Notice != "" {
		t.Fatalf("expected a live load, got %+v", got)
	}
	if got.Summary.TotalActions != 2 || got.Summary.TotalSalaryDeducted != 5000 {
		t.Fatalf("KPIs must cover all records: %+v", got.Summary)
	}
	if len(got.Rows) != 1 || got.Rows[0].Name != "Sadiq Noor" {
		t.Fatalf("unexpected rows: %+v", got.Rows)
	}
}

func TestCLI_SummaryHTML(t *testing.T) {
	isolate(t)
	out := runCmd(t, "summary", "--format", "html")
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<li>Total Actions: 15</li>") {
		t.Fatalf("unexpected html:\n%s", out)
	}
}

func TestCLI_SummaryMissingSourceFails(t *testing.T) {
	home := isolate(t)
	_, errOut, err := execCmd(t, "summary", filepath.Join(home, "missing.csv"))
	if err == nil {
		t.Fatalf("expected error for missing source")
	}
	if !strings.Contains(errOut, "⚠ Warning: Error loading data from source.") {
		t.Fatalf("expected warning on stderr, got %q", errOut)
	}
}

func TestCLI_SummaryRejectsBadFlags(t *testing.T) {
	isolate(t)
	if _, _, err := execCmd(t, "summary", "--format", "pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, _, err := execCmd(t, "summary", "--top", "0"); err == nil {
		t.Fatalf("expected error for non-positive --top")
	}
}

func TestCLI_SearchJSON(t *testing.T) {
	isolate(t)
	out := runCmd(t, "search", "PROXY", "--format", "json")
	var got searchResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.Count != 6 || got.Total != 15 || len(got.Records) != 6 {
		t.Fatalf("unexpected search result: count=%d total=%d records=%d", got.Count, got.Total, len(got.Records))
	}
	if got.Records[0].Name != "Mohib ur Rehman" {
		t.Fatalf("expected source order, first is %q", got.Records[0].Name)
	}
}

func TestCLI_SearchTableWithLimit(t *testing.T) {
	isolate(t)
	out := runCmd(t, "search", "Bannu", "--limit", "2")
	if !strings.Contains(out, "| Salary Deducted |") {
		t.Fatalf("expected table header:\n%s", out)
	}
	if strings.Count(out, "| Bannu |") != 2 {
		t.Fatalf("expected 2 rows:\n%s", out)
	}
	if !strings.Contains(out, "10 of 15 records match \"Bannu\"") {
		t.Fatalf("expected match count line:\n%s", out)
	}
}

func TestCLI_SearchNoMatch(t *testing.T) {
	isolate(t)
	out := runCmd(t, "search", "Peshawar")
	if strings.TrimSpace(out) != "No records found matching 'Peshawar'." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCLI_ConfigSourceRoundTrip(t *testing.T) {
	home := isolate(t)
	sheet := writeSheet(t, home)

	runCmd(t, "config", "set", "source", sheet)
	runCmd(t, "config", "set", "top_reasons", "1")
	if _, err := os.Stat(filepath.Join(home, ".actionboard", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "source: "+sheet) || !strings.Contains(out, "top_reasons: 1") {
		t.Fatalf("unexpected config show:\n%s", out)
	}

	out = runCmd(t, "summary")
	if !strings.Contains(out, "- Total Actions: 2") || !strings.Contains(out, "[TOP 1 REASONS FOR ACTION]") {
		t.Fatalf("configured source not used:\n%s", out)
	}
	// An explicit empty --source selects the sample data again.
	out = runCmd(t, "summary", "--source=")
	if !strings.Contains(out, "- Total Actions: 15") {
		t.Fatalf("--source override not applied:\n%s", out)
	}

	if _, _, err := execCmd(t, "config", "set", "top_reasons", "zero"); err == nil {
		t.Fatalf("expected error for invalid int")
	}
	if _, _, err := execCmd(t, "config", "set", "api_key", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_ConfigSetIgnoresFlagOverrides(t *testing.T) {
	home := isolate(t)
	runCmd(t, "--retry-max", "9", "--source", "https://example.com/pub?output=csv", "config", "set", "top_reasons", "2")

	b, err := os.ReadFile(filepath.Join(home, ".actionboard", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	saved := string(b)
	if !strings.Contains(saved, "top_reasons: 2") {
		t.Fatalf("key not saved:\n%s", saved)
	}
	if !strings.Contains(saved, "retry_max_attempts: 3") || strings.Contains(saved, "example.com") {
		t.Fatalf("flag overrides leaked into saved config:\n%s", saved)
	}
}
