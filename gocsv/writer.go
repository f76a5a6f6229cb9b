// Package gocsv renders cannibalization reports as CSV.
package gocsv

import (
	"io"
	"strings"

	"github.com/fwojciec/cannibal"
	"github.com/gocarina/gocsv"
)

// Ensure Writer implements cannibal.ReportWriter at compile time.
var _ cannibal.ReportWriter = (*Writer)(nil)

// recordRow is one CSV line. Pages are newline-separated within the cell.
type recordRow struct {
	Keyword   string `csv:"Keyword"`
	Frequency int    `csv:"Frequency"`
	Pages     string `csv:"Pages"`
	Density   string `csv:"Keyword Density"`
}

// Writer writes a header row and one row per record.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the report's records as CSV to w.
func (cw *Writer) Write(w io.Writer, report *cannibal.Report) error {
	rows := make([]*recordRow, 0, len(report.Records))
	for _, r := range report.Records {
		rows = append(rows, &recordRow{
			Keyword:   r.Keyword,
			Frequency: r.Frequency,
			Pages:     strings.Join(r.Pages, "\n"),
			Density:   r.FormatDensity(),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return cannibal.Errorf(cannibal.EINTERNAL, "write csv: %v", err)
	}
	return nil
}
