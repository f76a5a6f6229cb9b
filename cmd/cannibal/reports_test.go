package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/cannibal"
	main "github.com/fwojciec/cannibal/cmd/cannibal"
	"github.com/fwojciec/cannibal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists reports with ID, status, and seeds", func(t *testing.T) {
		t.Parallel()

		var gotFilter cannibal.ReportFilter
		reports := &mock.ReportService{
			FindReportsFn: func(_ context.Context, filter cannibal.ReportFilter) ([]*cannibal.Report, error) {
				gotFilter = filter
				return []*cannibal.Report{
					{
						ID:        "rep-123",
						Seeds:     []string{"https://example.com/"},
						Status:    cannibal.StatusFound,
						CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "rep-456",
						Seeds:     []string{"https://a.com/x", "https://b.com/y"},
						Status:    cannibal.StatusNone,
						CreatedAt: time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsListCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Nil(t, gotFilter.Seed)
		output := stdout.String()
		assert.Contains(t, output, "rep-123")
		assert.Contains(t, output, "found")
		assert.Contains(t, output, "https://a.com/x https://b.com/y")
	})

	t.Run("normalizes seed filter", func(t *testing.T) {
		t.Parallel()

		var gotSeed string
		reports := &mock.ReportService{
			FindReportsFn: func(_ context.Context, filter cannibal.ReportFilter) ([]*cannibal.Report, error) {
				gotSeed = *filter.Seed
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsListCmd{Seed: "HTTPS://Example.com"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", gotSeed)
	})

	t.Run("shows hint when no reports exist", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportsFn: func(context.Context, cannibal.ReportFilter) ([]*cannibal.Report, error) {
				return []*cannibal.Report{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No saved reports")
	})

	t.Run("returns service error", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportsFn: func(context.Context, cannibal.ReportFilter) ([]*cannibal.Report, error) {
				return nil, errors.New("database error")
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsListCmd{}).Run(deps)

		require.Error(t, err)
	})
}

func TestReportsShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("renders report in requested format", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportByIDFn: func(_ context.Context, id string) (*cannibal.Report, error) {
				assert.Equal(t, "rep-123", id)
				return &cannibal.Report{
					ID:     id,
					Seeds:  []string{"https://example.com/"},
					Status: cannibal.StatusFound,
					Records: []*cannibal.Record{
						{Keyword: "fox", Frequency: 2, Pages: []string{"https://example.com/a", "https://example.com/b"}, Density: 25},
					},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsShowCmd{ID: "rep-123", Format: "markdown"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Keyword Cannibalization Report")
		assert.Contains(t, stdout.String(), "fox")
	})

	t.Run("returns not found", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportByIDFn: func(context.Context, string) (*cannibal.Report, error) {
				return nil, cannibal.Errorf(cannibal.ENOTFOUND, "report not found")
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsShowCmd{ID: "missing", Format: "table"}).Run(deps)

		assert.Equal(t, cannibal.ENOTFOUND, cannibal.ErrorCode(err))
	})
}

func TestReportsDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		deleted := false
		reports := &mock.ReportService{
			DeleteReportFn: func(context.Context, string) error {
				deleted = true
				return nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsDeleteCmd{ID: "rep-123"}).Run(deps)

		assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(err))
		assert.False(t, deleted)
	})

	t.Run("deletes report", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		reports := &mock.ReportService{
			DeleteReportFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsDeleteCmd{ID: "rep-123", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "rep-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted report rep-123")
	})
}
