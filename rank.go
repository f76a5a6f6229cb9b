package cannibal

import (
	"cmp"
	"fmt"
	"slices"
)

// Record is one row of the cannibalization report: a keyword that two
// or more pages compete for.
type Record struct {
	Keyword   string   `json:"keyword"`
	Frequency int      `json:"frequency"`
	Pages     []string `json:"pages"`
	Density   float64  `json:"density"`
}

// FormatDensity renders the density as a percentage with two decimals.
func (r *Record) FormatDensity() string {
	return fmt.Sprintf("%.2f", r.Density)
}

// Rank drops keywords found on fewer than two pages and returns the rest
// as records sorted by descending frequency, ties broken by keyword.
// It returns an empty (non-nil) slice when nothing qualifies.
func Rank(aggregates map[string]*KeywordAggregate) []*Record {
	records := make([]*Record, 0)
	for _, agg := range aggregates {
		if len(agg.Pages) < 2 {
			continue
		}
		records = append(records, &Record{
			Keyword:   agg.Keyword,
			Frequency: agg.TotalCount,
			Pages:     agg.PageURLs(),
			Density:   agg.ComputeDensity(),
		})
	}
	slices.SortFunc(records, CompareRecords)
	return records
}

// CompareRecords orders records by descending frequency, then keyword.
func CompareRecords(a, b *Record) int {
	if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
		return c
	}
	return cmp.Compare(a.Keyword, b.Keyword)
}
