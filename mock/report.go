package mock

import (
	"context"
	"io"

	"github.com/fwojciec/cannibal"
)

var _ cannibal.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of cannibal.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, report *cannibal.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*cannibal.Report, error)
	FindReportsFn    func(ctx context.Context, filter cannibal.ReportFilter) ([]*cannibal.Report, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) CreateReport(ctx context.Context, report *cannibal.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*cannibal.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter cannibal.ReportFilter) ([]*cannibal.Report, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}

var _ cannibal.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of cannibal.ReportWriter.
type ReportWriter struct {
	WriteFn func(w io.Writer, report *cannibal.Report) error
}

func (rw *ReportWriter) Write(w io.Writer, report *cannibal.Report) error {
	return rw.WriteFn(w, report)
}
