package records

import (
	_ "embed"
	"strconv"
)

// Canonical column names, in output order.
const (
	ColDistrict    = "District"
	ColCollege     = "College"
	ColGender      = "Gender"
	ColType        = "Type"
	ColCategory    = "Category"
	ColAction      = "Action"
	ColName        = "Name"
	ColDesignation = "Designation"
	ColSalary      = "Salary"
	ColReason      = "Reason"
)

// Columns lists the canonical record columns in their fixed order.
var Columns = []string{
	ColDistrict, ColCollege, ColGender, ColType, ColCategory,
	ColAction, ColName, ColDesignation, ColSalary, ColReason,
}

// FallbackCSV is the built-in sample table used when no source is configured.
//
//go:embed fallback.csv
var FallbackCSV []byte

// Record is one normalized disciplinary action entry.
type Record struct {
	District    string `json:"district"`
	College     string `json:"college"`
	Gender      string `json:"gender"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Action      string `json:"action"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Salary      int64  `json:"salary"`
	Reason      string `json:"reason"`
}

// Field returns the string form of the named canonical column.
// Unknown names yield "".
func (r Record) Field(name string) string {
	switch name {
	case ColDistrict:
		return r.District
	case ColCollege:
		return r.College
	case ColGender:
		return r.Gender
	case ColType:
		return r.Type
	case ColCategory:
		return r.Category
	case ColAction:
		return r.Action
	case ColName:
		return r.Name
	case ColDesignation:
		return r.Designation
	case ColSalary:
		return strconv.FormatInt(r.Salary, 10)
	case ColReason:
		return r.Reason
	}
	return ""
}

// Fields returns every canonical column as a string, in Columns order.
func (r Record) Fields() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = r.Field(c)
	}
	return out
}
