package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/fs"
	"github.com/fwojciec/cannibal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	t.Run("writes rendered report to path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "report.csv")
		rw := &mock.ReportWriter{
			WriteFn: func(w io.Writer, report *cannibal.Report) error {
				_, err := io.WriteString(w, "Keyword\n")
				return err
			},
		}

		err := fs.WriteReport(path, rw, &cannibal.Report{})

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Keyword\n", string(content))
	})

	t.Run("keeps previous file when rendering fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "report.csv")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
		rw := &mock.ReportWriter{
			WriteFn: func(w io.Writer, report *cannibal.Report) error {
				io.WriteString(w, "partial")
				return errors.New("boom")
			},
		}

		err := fs.WriteReport(path, rw, &cannibal.Report{})

		require.Error(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(content))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file should be removed")
	})
}
