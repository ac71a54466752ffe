package analysis

import (
	"fmt"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
	"github.com/montanaflynn/stats"
)

// SalaryStats describes the deductions of records that carry one.
type SalaryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// SalaryDeductions summarizes the non-zero salary deductions. With no
// deductions every field is zero.
func SalaryDeductions(recs []records.Record) (SalaryStats, error) {
	var data stats.Float64Data
	for _, r := range recs {
		if r.Salary > 0 {
			data = append(data, float64(r.Salary))
		}
	}
	if len(data) == 0 {
		return SalaryStats{}, nil
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return SalaryStats{}, fmt.Errorf("salary mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return SalaryStats{}, fmt.Errorf("salary median: %w", err)
	}
	maxv, err := stats.Max(data)
	if err != nil {
		return SalaryStats{}, fmt.Errorf("salary max: %w", err)
	}
	return SalaryStats{Count: len(data), Mean: mean, Median: median, Max: maxv}, nil
}
