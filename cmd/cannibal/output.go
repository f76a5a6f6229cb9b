package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/fs"
	"github.com/fwojciec/cannibal/gocsv"
	"github.com/fwojciec/cannibal/markdown"
	"github.com/fwojciec/cannibal/table"
)

// reportWriter returns the writer for an output format.
func reportWriter(format string) (cannibal.ReportWriter, error) {
	switch format {
	case "", "table":
		return table.NewWriter(), nil
	case "csv":
		return gocsv.NewWriter(), nil
	case "markdown":
		return markdown.NewWriter(), nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, cannibal.Errorf(cannibal.EINVALID, "unknown format %q", format)
	}
}

// writeReport writes report to path, or to stdout when path is empty.
func writeReport(deps *Dependencies, w cannibal.ReportWriter, report *cannibal.Report, path string) error {
	if path == "" {
		return w.Write(deps.Stdout, report)
	}
	if err := fs.WriteReport(path, w, report); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", path)
	return nil
}

// Ensure JSONWriter implements cannibal.ReportWriter at compile time.
var _ cannibal.ReportWriter = (*JSONWriter)(nil)

// JSONWriter writes the whole report as indented JSON.
type JSONWriter struct{}

func (jw *JSONWriter) Write(w io.Writer, report *cannibal.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
