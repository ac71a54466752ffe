package query

import (
	"reflect"
	"testing"

	"github.com/KaramelBytes/actionboard-cli/internal/parser"
	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

func fallbackRecords(t *testing.T) []records.Record {
	t.Helper()
	tbl, err := parser.ParseTable("fallback.csv", "", records.FallbackCSV, parser.Options{})
	if err != nil {
		t.Fatalf("parse fallback: %v", err)
	}
	return records.Normalize(tbl)
}

func TestFilterEmptyTermIsIdentity(t *testing.T) {
	recs := fallbackRecords(t)
	got := Filter(recs, "")
	if !reflect.DeepEqual(got, recs) {
		t.Fatalf("empty term must return all records unchanged")
	}
}

func TestFilterReasonOnlyTerm(t *testing.T) {
	recs := fallbackRecords(t)
	got := Filter(recs, "proxy")
	if len(got) != 6 {
		t.Fatalf("expected 6 proxy attendance rows, got %d", len(got))
	}
	for _, r := range got {
		if r.Reason != "Proxy Attendance" {
			t.Fatalf("unexpected match: %+v", r)
		}
	}
	// original relative order is kept
	wantNames := []string{"Mohib ur Rehman", "Zohaib Khan", "Saad Ullah Assoc Prof", "Nazir Ahmad Shah", "Usra Shahid Lab attendent", "Muhammad Farasat Ullah"}
	for i, r := range got {
		if r.Name != wantNames[i] {
			t.Fatalf("position %d: expected %q, got %q", i, wantNames[i], r.Name)
		}
	}
	if upper := Filter(recs, "PROXY"); !reflect.DeepEqual(upper, got) {
		t.Fatalf("search must ignore case")
	}
}

func TestFilterMatchesEachFieldIndependently(t *testing.T) {
	recs := []records.Record{
		{District: "Bannu", College: "GDC Kakki"},
		{District: "Kohat", College: "GPGC"},
	}
	// "nugdc" only exists when District and College are joined
	if got := Filter(recs, "nugdc"); len(got) != 0 {
		t.Fatalf("term must not match across fields, got %+v", got)
	}
	if got := Filter(recs, "kakki"); len(got) != 1 || got[0].District != "Bannu" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestFilterSalaryField(t *testing.T) {
	recs := []records.Record{{Name: "a", Salary: 12000}, {Name: "b", Salary: 0}}
	got := Filter(recs, "1200")
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("expected salary match on a, got %+v", got)
	}
}

func TestFilterNoMatchAndEmptyInput(t *testing.T) {
	recs := fallbackRecords(t)
	got := Filter(recs, "nonexistent-term")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
	if got := Filter(nil, "x"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if got := Filter(nil, ""); got != nil {
		t.Fatalf("expected input returned as-is")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	recs := fallbackRecords(t)
	before := append([]records.Record(nil), recs...)
	_ = Filter(recs, "warning")
	if !reflect.DeepEqual(before, recs) {
		t.Fatalf("input was modified")
	}
}
