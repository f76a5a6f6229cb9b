// Package table renders cannibalization reports as a terminal table.
package table

import (
	"fmt"
	"io"

	"github.com/fwojciec/cannibal"
	"github.com/rodaine/table"
)

// Ensure Writer implements cannibal.ReportWriter at compile time.
var _ cannibal.ReportWriter = (*Writer)(nil)

// NoCannibalization is printed in place of an empty table.
const NoCannibalization = "No cannibalization found."

// Writer prints one row per page, with the keyword columns filled on
// the first page of each record only.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write prints the report's records to w.
func (tw *Writer) Write(w io.Writer, report *cannibal.Report) error {
	if len(report.Records) == 0 {
		_, err := fmt.Fprintln(w, NoCannibalization)
		return err
	}

	tbl := table.New("Keyword", "Frequency", "Pages", "Keyword Density").WithWriter(w)
	for _, r := range report.Records {
		for i, page := range r.Pages {
			if i == 0 {
				tbl.AddRow(r.Keyword, r.Frequency, page, r.FormatDensity())
			} else {
				tbl.AddRow("", "", page, "")
			}
		}
	}
	tbl.Print()
	return nil
}
