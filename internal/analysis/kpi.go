package analysis

import (
	"strings"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

// Summary holds the dashboard KPI scalars.
type Summary struct {
	TotalActions        int   `json:"total_actions"`
	UniqueColleges      int   `json:"unique_colleges"`
	TotalSalaryDeducted int64 `json:"total_salary_deducted"`
	EmployeeIssues      int   `json:"employee_issues"`
	Warnings            int   `json:"warnings"`
	Explanations        int   `json:"explanations"`
	Inquiries           int   `json:"inquiries"`
}

// Empty reports whether the summary was computed over no records.
func (s Summary) Empty() bool { return s.TotalActions == 0 }

// Summarize computes the KPI scalars. Warnings, Explanations and Inquiries
// count actions whose text contains the word in any case, so "Final Warning"
// is a warning.
func Summarize(recs []records.Record) Summary {
	var s Summary
	if len(recs) == 0 {
		return s
	}
	colleges := make(map[string]struct{})
	for _, r := range recs {
		s.TotalActions++
		colleges[r.College] = struct{}{}
		s.TotalSalaryDeducted += r.Salary
		if r.Category == "Employee" {
			s.EmployeeIssues++
		}
		action := strings.ToLower(r.Action)
		if strings.Contains(action, "warning") {
			s.Warnings++
		}
		if strings.Contains(action, "explanation") {
			s.Explanations++
		}
		if strings.Contains(action, "inquiry") {
			s.Inquiries++
		}
	}
	s.UniqueColleges = len(colleges)
	return s
}
