package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReportPaths resolves the output files of one run.
// All report formats share a stem so they sort together in a directory.
type ReportPaths struct {
	Dir  string
	Stem string
}

// NewReportPaths builds the report stem <prefix>_<YYYYMMDD> for the given run time.
func NewReportPaths(out OutputConfig, now time.Time) *ReportPaths {
	return &ReportPaths{
		Dir:  out.Dir,
		Stem: fmt.Sprintf("%s_%s", out.Prefix, now.Format(ReportDateLayout)),
	}
}

// ReportPath returns the full path of the report for a format.
// TSV keeps the historical .txt extension.
func (p *ReportPaths) ReportPath(format string) string {
	ext := ".txt"
	switch format {
	case FormatXLSX:
		ext = ".xlsx"
	case FormatSQLite:
		ext = ".db"
	}
	return filepath.Join(p.Dir, p.Stem+ext)
}

// EnsureDirectories creates the output directory if needed.
func (p *ReportPaths) EnsureDirectories() error {
	if p.Dir == "" || p.Dir == "." {
		return nil
	}
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.Dir, err)
	}
	return nil
}
