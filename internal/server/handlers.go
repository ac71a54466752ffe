package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/KaramelBytes/actionboard-cli/internal/analysis"
	"github.com/KaramelBytes/actionboard-cli/internal/records"
	"github.com/KaramelBytes/actionboard-cli/internal/report"
)

type summaryResponse struct {
	Source  string               `json:"source"`
	Status  string               `json:"status"`
	Notice  string               `json:"notice,omitempty"`
	Warning string               `json:"warning,omitempty"`
	LoadID  string               `json:"load_id,omitempty"`
	Summary analysis.Summary     `json:"summary"`
	Salary  analysis.SalaryStats `json:"salary"`
}

type chartsResponse struct {
	Actions    analysis.Distribution `json:"actions"`
	TopReasons analysis.Distribution `json:"top_reasons"`
}

type recordsResponse struct {
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Records []records.Record `json:"records"`
	Message string           `json:"message,omitempty"`
}

// failedStatus is returned by API routes when the source could not be loaded.
const failedStatus = http.StatusBadGateway

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	status := http.StatusOK
	if d.Failed() {
		status = failedStatus
	}
	writeJSON(w, status, summaryResponse{
		Source:  d.Source,
		Status:  d.Status,
		Notice:  d.Notice,
		Warning: d.Warning,
		LoadID:  d.LoadID,
		Summary: d.Summary,
		Salary:  d.Salary,
	})
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	if d.Failed() {
		writeJSON(w, failedStatus, map[string]string{"error": d.Warning})
		return
	}
	writeJSON(w, http.StatusOK, chartsResponse{Actions: d.Actions, TopReasons: d.TopReasons})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	if d.Failed() {
		writeJSON(w, failedStatus, map[string]string{"error": d.Warning})
		return
	}
	writeJSON(w, http.StatusOK, recordsResponse{
		Count:   len(d.Rows),
		Total:   d.Summary.TotalActions,
		Records: d.Rows,
		Message: d.Empty,
	})
}

type indexPage struct {
	*report.Dashboard
	// MaxAction and MaxReason scale the bar widths.
	MaxAction int
	MaxReason int
	Reasons   analysis.Distribution
	Shares    []float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	page := indexPage{Dashboard: d, Reasons: d.TopReasons.Descending()}
	for i, a := range d.Actions {
		page.MaxAction = max(page.MaxAction, a.Count)
		page.Shares = append(page.Shares, d.Actions.Share(i))
	}
	for _, b := range d.TopReasons {
		page.MaxReason = max(page.MaxReason, b.Count)
	}
	s.render(w, "dashboard.html", page)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	body := template.HTML(report.RenderHTML(d.Markdown()))
	s.render(w, "report.html", map[string]any{"Title": d.Title, "Body": body})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
