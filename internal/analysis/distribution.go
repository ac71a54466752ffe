package analysis

import (
	"sort"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

// DefaultTopReasons is the number of reasons shown in the top-reasons chart.
const DefaultTopReasons = 5

// Bucket is one label of a frequency distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution is an ordered sequence of label counts.
type Distribution []Bucket

// Total returns the sum of all counts.
func (d Distribution) Total() int {
	n := 0
	for _, b := range d {
		n += b.Count
	}
	return n
}

// Share returns bucket i as a percentage of the total.
func (d Distribution) Share(i int) float64 {
	total := d.Total()
	if total == 0 || i < 0 || i >= len(d) {
		return 0
	}
	return float64(d[i].Count) * 100 / float64(total)
}

// Descending returns a copy ordered by count, largest first. Equal counts
// keep their current relative order.
func (d Distribution) Descending() Distribution {
	out := append(Distribution(nil), d...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Ascending returns a copy ordered by count, smallest first. Equal counts
// keep their current relative order.
func (d Distribution) Ascending() Distribution {
	out := append(Distribution(nil), d...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count < out[j].Count })
	return out
}

// Labels returns the bucket labels in order.
func (d Distribution) Labels() []string {
	out := make([]string, len(d))
	for i, b := range d {
		out[i] = b.Label
	}
	return out
}

// Counts returns the bucket counts in order.
func (d Distribution) Counts() []int {
	out := make([]int, len(d))
	for i, b := range d {
		out[i] = b.Count
	}
	return out
}

// countBy groups records by key and returns buckets in first-appearance order.
func countBy(recs []records.Record, key func(records.Record) string) Distribution {
	index := make(map[string]int)
	out := Distribution{}
	for _, r := range recs {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Bucket{Label: k})
		}
		out[i].Count++
	}
	return out
}

// ActionDistribution counts records per exact Action value, largest first;
// ties keep first-appearance order.
func ActionDistribution(recs []records.Record) Distribution {
	return countBy(recs, func(r records.Record) string { return r.Action }).Descending()
}

// TopReasons keeps the n most frequent Reason values (ties broken by first
// appearance) and returns them smallest first, the order a horizontal bar
// chart draws them bottom-up.
func TopReasons(recs []records.Record, n int) Distribution {
	if n <= 0 {
		return Distribution{}
	}
	d := countBy(recs, func(r records.Record) string { return r.Reason }).Descending()
	if len(d) > n {
		d = d[:n]
	}
	return d.Ascending()
}
