package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateReport measures saving a report of a typical size to a
// file-based database.
func BenchmarkCreateReport(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("records_%d", n), func(b *testing.B) {
			benchmarkCreateReport(b, n)
		})
	}
}

func benchmarkCreateReport(b *testing.B, numRecords int) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	records := make([]*cannibal.Record, 0, numRecords)
	for i := range numRecords {
		records = append(records, &cannibal.Record{
			Keyword:   fmt.Sprintf("keyword %d", i),
			Frequency: numRecords - i,
			Pages:     []string{"https://example.com/a", fmt.Sprintf("https://example.com/page%d", i)},
			Density:   1.5,
		})
	}

	ctx := context.Background()
	svc := sqlite.NewReportService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		report := &cannibal.Report{
			Seeds:   []string{"https://example.com/"},
			Status:  cannibal.StatusFound,
			Records: records,
		}
		if err := svc.CreateReport(ctx, report); err != nil {
			b.Fatal(err)
		}
	}
}
