package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/repository"
)

// FailedDomainsFile is the name of the aggregate failure report
const FailedDomainsFile = "failed_domains.txt"

// ErrWrite marks an I/O failure while persisting output, it aborts the run
var ErrWrite = errors.New("write failed")

// CheckOutputDir verifies the output directory exists, it is never created
func CheckOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: output directory %s: %v", ErrWrite, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: output directory %s: not a directory", ErrWrite, dir)
	}
	return nil
}

// ResultWriter implements repository.ResultWriter, one CSV file per base domain
type ResultWriter struct {
	dir string
}

// NewResultWriter creates a new result writer rooted at dir
func NewResultWriter(dir string) repository.ResultWriter {
	return &ResultWriter{dir: dir}
}

// Path returns the CSV path for a base domain
func (w *ResultWriter) Path(name string) string {
	return filepath.Join(w.dir, name+".csv")
}

// Write writes "{name},{variant}" lines without a header. Zero variants
// produce an empty file.
func (w *ResultWriter) Write(name string, variants []entity.Variant) (string, error) {
	path := w.Path(name)

	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}

	writer := csv.NewWriter(file)
	for _, variant := range variants {
		if err := writer.Write([]string{name, variant.Domain}); err != nil {
			file.Close()
			return path, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return path, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}

	if err := file.Close(); err != nil {
		return path, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return path, nil
}

// ReportWriter implements repository.ReportWriter
type ReportWriter struct {
	path string
}

// NewReportWriter creates a report writer for dir/failed_domains.txt
func NewReportWriter(dir string) repository.ReportWriter {
	return &ReportWriter{path: filepath.Join(dir, FailedDomainsFile)}
}

// WriteReport writes one failure message per line
func (w *ReportWriter) WriteReport(report *entity.JobReport) (string, error) {
	file, err := os.Create(w.path)
	if err != nil {
		return w.path, fmt.Errorf("%w: %s: %v", ErrWrite, w.path, err)
	}

	buf := bufio.NewWriter(file)
	for _, line := range report.Failures {
		if _, err := buf.WriteString(line + "\n"); err != nil {
			file.Close()
			return w.path, fmt.Errorf("%w: %s: %v", ErrWrite, w.path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return w.path, fmt.Errorf("%w: %s: %v", ErrWrite, w.path, err)
	}

	if err := file.Close(); err != nil {
		return w.path, fmt.Errorf("%w: %s: %v", ErrWrite, w.path, err)
	}
	return w.path, nil
}
