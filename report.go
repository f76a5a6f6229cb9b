package cannibal

import (
	"context"
	"io"
	"time"
)

// ReportStatus distinguishes the outcomes of a completed run.
type ReportStatus string

// Report statuses.
const (
	// StatusFound means at least one keyword is shared by two or more pages.
	StatusFound ReportStatus = "found"
	// StatusNone means pages were analyzed but no keyword is shared.
	StatusNone ReportStatus = "none"
	// StatusEmpty means no page could be retrieved.
	StatusEmpty ReportStatus = "empty"
)

// Report is the result of one analysis run.
type Report struct {
	ID           string        `json:"id,omitempty"`
	Seeds        []string      `json:"seeds"`
	Options      Options       `json:"options"`
	Status       ReportStatus  `json:"status"`
	PagesCrawled int           `json:"pagesCrawled"`
	PagesFailed  int           `json:"pagesFailed"`
	PagesSkipped int           `json:"pagesSkipped"`
	Failures     []*FetchError `json:"failures,omitempty"`
	Records      []*Record     `json:"records"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if len(r.Seeds) == 0 {
		return Errorf(EINVALID, "report seeds required")
	}
	switch r.Status {
	case StatusFound, StatusNone, StatusEmpty:
	default:
		return Errorf(EINVALID, "invalid report status %q", r.Status)
	}
	return nil
}

// SetStatus derives the status from the crawl and record counts.
func (r *Report) SetStatus() {
	switch {
	case r.PagesCrawled == 0:
		r.Status = StatusEmpty
	case len(r.Records) == 0:
		r.Status = StatusNone
	default:
		r.Status = StatusFound
	}
}

// Err returns an EEMPTY error when the run had nothing to analyze.
func (r *Report) Err() error {
	if r.Status == StatusEmpty {
		return Errorf(EEMPTY, "nothing to analyze: none of the %d page(s) could be retrieved", r.PagesFailed)
	}
	return nil
}

// ReportWriter renders a report.
type ReportWriter interface {
	Write(w io.Writer, report *Report) error
}

// ReportService represents a service for managing saved reports.
type ReportService interface {
	// CreateReport saves a report and assigns its ID.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report with its records.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	// Records are not loaded.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report and its records.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID   *string `json:"id"`
	Seed *string `json:"seed"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
