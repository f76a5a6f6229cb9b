package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/cannibal"
)

// WriteReport renders report with rw into path. The file is written
// next to path and renamed into place, so readers never observe a
// partial report.
func WriteReport(path string, rw cannibal.ReportWriter, report *cannibal.Report) error {
	f, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	if err := rw.Write(f, report); err != nil {
		f.Abort()
		return err
	}
	return f.Commit()
}

// AtomicFile is a file that becomes visible at its final path only on Commit.
type AtomicFile struct {
	file *os.File
	path string
}

// CreateAtomic opens a temporary file in path's directory.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{file: f, path: path}, nil
}

// Ensure AtomicFile implements io.Writer at compile time.
var _ io.Writer = (*AtomicFile)(nil)

func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Commit flushes the temporary file and renames it to the final path.
func (f *AtomicFile) Commit() error {
	if err := f.file.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.file.Close(); err != nil {
		os.Remove(f.file.Name())
		return err
	}
	if err := os.Chmod(f.file.Name(), 0644); err != nil {
		os.Remove(f.file.Name())
		return err
	}
	if err := os.Rename(f.file.Name(), f.path); err != nil {
		os.Remove(f.file.Name())
		return err
	}
	return nil
}

// Abort closes and removes the temporary file.
func (f *AtomicFile) Abort() error {
	f.file.Close()
	return os.Remove(f.file.Name())
}
