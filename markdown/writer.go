// Package markdown renders cannibalization reports as Markdown documents.
package markdown

import (
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/cannibal"
	"github.com/nao1215/markdown"
)

// Ensure Writer implements cannibal.ReportWriter at compile time.
var _ cannibal.ReportWriter = (*Writer)(nil)

// Writer writes a summary table, the keyword table, and the failed pages.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the report as Markdown to w.
func (mw *Writer) Write(w io.Writer, report *cannibal.Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Keyword Cannibalization Report")
	md.PlainText("")
	mw.writeSummary(md, report)
	mw.writeRecords(md, report)
	mw.writeFailures(md, report)

	if err := md.Build(); err != nil {
		return cannibal.Errorf(cannibal.EINTERNAL, "write markdown: %v", err)
	}
	return nil
}

func (mw *Writer) writeSummary(md *markdown.Markdown, report *cannibal.Report) {
	rows := make([][]string, 0, len(report.Seeds)+5)
	for _, seed := range report.Seeds {
		rows = append(rows, []string{"Seed", seed})
	}
	rows = append(rows,
		[]string{"Status", string(report.Status)},
		[]string{"Pages Crawled", strconv.Itoa(report.PagesCrawled)},
		[]string{"Pages Failed", strconv.Itoa(report.PagesFailed)},
		[]string{"Pages Skipped", strconv.Itoa(report.PagesSkipped)},
	)
	if !report.CreatedAt.IsZero() {
		rows = append(rows, []string{"Created", report.CreatedAt.Format("2006-01-02 15:04:05 MST")})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (mw *Writer) writeRecords(md *markdown.Markdown, report *cannibal.Report) {
	md.H2("Shared Keywords")
	md.PlainText("")

	if len(report.Records) == 0 {
		md.PlainText("No cannibalization found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Records))
	for _, r := range report.Records {
		rows = append(rows, []string{
			r.Keyword,
			strconv.Itoa(r.Frequency),
			strings.Join(r.Pages, "<br>"),
			r.FormatDensity(),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Frequency", "Pages", "Keyword Density"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (mw *Writer) writeFailures(md *markdown.Markdown, report *cannibal.Report) {
	if len(report.Failures) == 0 {
		return
	}
	md.H2("Failed Pages")
	md.PlainText("")
	items := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		items = append(items, f.Error())
	}
	md.BulletList(items...)
	md.PlainText("")
}
