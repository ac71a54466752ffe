package report

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/actionboard-cli/internal/analysis"
	"github.com/KaramelBytes/actionboard-cli/internal/loader"
	"github.com/KaramelBytes/actionboard-cli/internal/query"
	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

// Title is the dashboard heading.
const Title = "Higher Education Department: Colleges Monitoring Action Dashboard"

// Dashboard is everything the presentation layer shows for one load and
// one search term.
type Dashboard struct {
	Title      string                `json:"title"`
	Source     string                `json:"source"`
	Status     string                `json:"status"`
	Notice     string                `json:"notice,omitempty"`
	Warning    string                `json:"warning,omitempty"`
	LoadID     string                `json:"load_id,omitempty"`
	LoadedAt   time.Time             `json:"loaded_at,omitzero"`
	Summary    analysis.Summary      `json:"summary"`
	Salary     analysis.SalaryStats  `json:"salary"`
	Actions    analysis.Distribution `json:"actions"`
	TopReasons analysis.Distribution `json:"top_reasons"`
	Search     string                `json:"search,omitempty"`
	Rows       []records.Record      `json:"rows"`
	// Empty explains an empty table: nothing loaded or nothing matched.
	Empty string `json:"empty,omitempty"`

	status loader.Status
}

// Build assembles the dashboard for a load result and a search term. topN
// bounds the reasons chart; non-positive values use the default of five.
func Build(res loader.Result, term string, topN int) (*Dashboard, error) {
	if topN <= 0 {
		topN = analysis.DefaultTopReasons
	}
	d := &Dashboard{
		Title:    Title,
		Source:   res.Locator,
		Status:   res.Status().String(),
		LoadID:   res.LoadID,
		LoadedAt: res.LoadedAt,
		Search:   term,
		status:   res.Status(),
	}
	switch d.status {
	case loader.StatusFailed:
		d.Warning = res.Message()
	case loader.StatusSample:
		d.Notice = res.Message()
	}

	recs := res.Records
	d.Summary = analysis.Summarize(recs)
	st, err := analysis.SalaryDeductions(recs)
	if err != nil {
		return nil, fmt.Errorf("salary stats: %w", err)
	}
	d.Salary = st
	d.Actions = analysis.ActionDistribution(recs)
	d.TopReasons = analysis.TopReasons(recs, topN)
	d.Rows = query.Filter(recs, term)
	if d.Rows == nil {
		d.Rows = []records.Record{}
	}

	if len(d.Rows) == 0 && d.status != loader.StatusFailed {
		if term != "" {
			d.Empty = fmt.Sprintf("No records found matching '%s'.", term)
		} else {
			d.Empty = "The data set is empty."
		}
	}
	return d, nil
}

// Failed reports whether the source could not be loaded.
func (d *Dashboard) Failed() bool { return d.status == loader.StatusFailed }
