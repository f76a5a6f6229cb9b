package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/cannibal"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cannibal.ReportService = (*ReportService)(nil)

// ReportService implements cannibal.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport saves a report and its records in one transaction.
func (s *ReportService) CreateReport(ctx context.Context, report *cannibal.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	seeds, err := json.Marshal(report.Seeds)
	if err != nil {
		return err
	}
	options, err := json.Marshal(report.Options)
	if err != nil {
		return err
	}
	failures := []byte("[]")
	if len(report.Failures) > 0 {
		if failures, err = json.Marshal(report.Failures); err != nil {
			return err
		}
	}

	id := uuid.New().String()
	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, seeds, status, options, pages_crawled, pages_failed, pages_skipped, failures, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, string(seeds), string(report.Status), string(options),
		report.PagesCrawled, report.PagesFailed, report.PagesSkipped, string(failures),
		createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, r := range report.Records {
		pages, err := json.Marshal(r.Pages)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (report_id, position, keyword, frequency, pages, density)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, i, r.Keyword, r.Frequency, string(pages), r.Density); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	report.ID = id
	report.CreatedAt = createdAt
	return nil
}

// FindReportByID retrieves a report with its records in rank order.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*cannibal.Report, error) {
	report, err := scanReport(s.db.QueryRowContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, cannibal.Errorf(cannibal.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, frequency, pages, density
		FROM records
		WHERE report_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report.Records = []*cannibal.Record{}
	for rows.Next() {
		var r cannibal.Record
		var pages string
		if err := rows.Scan(&r.Keyword, &r.Frequency, &pages, &r.Density); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(pages), &r.Pages); err != nil {
			return nil, fmt.Errorf("failed to parse pages: %w", err)
		}
		report.Records = append(report.Records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter cannibal.ReportFilter) ([]*cannibal.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + reportColumns + " FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Seed != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM json_each(reports.seeds) WHERE value = ?)")
		args = append(args, *filter.Seed)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*cannibal.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// DeleteReport permanently removes a report and its records.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return cannibal.Errorf(cannibal.ENOTFOUND, "report not found")
	}

	return nil
}

const reportColumns = "id, seeds, status, options, pages_crawled, pages_failed, pages_skipped, failures, created_at"

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*cannibal.Report, error) {
	var report cannibal.Report
	var seeds, status, options, failures, createdAt string

	if err := row.Scan(&report.ID, &seeds, &status, &options,
		&report.PagesCrawled, &report.PagesFailed, &report.PagesSkipped,
		&failures, &createdAt); err != nil {
		return nil, err
	}

	report.Status = cannibal.ReportStatus(status)
	if err := json.Unmarshal([]byte(seeds), &report.Seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seeds: %w", err)
	}
	if err := json.Unmarshal([]byte(options), &report.Options); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := json.Unmarshal([]byte(failures), &report.Failures); err != nil {
		return nil, fmt.Errorf("failed to parse failures: %w", err)
	}
	if len(report.Failures) == 0 {
		report.Failures = nil
	}

	var err error
	report.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &report, nil
}
