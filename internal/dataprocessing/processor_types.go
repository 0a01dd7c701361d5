package dataprocessing

import (
	"assemblystats/pkg/contracts/domain"
)

// ProcessingOptions configures a Processor.
type ProcessingOptions struct {
	// Filter is applied to every attribute of every taxon.
	Filter IQRFilter

	// MaxLineBytes bounds a single input line. Longer lines abort the run.
	MaxLineBytes int
}

// DefaultOptions returns default processing options
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		Filter:       DefaultIQRFilter(),
		MaxLineBytes: 4 * 1024 * 1024,
	}
}

// RunStats counts what happened to each input line.
type RunStats struct {
	Lines     int                `json:"lines"`
	Comments  int                `json:"comments"`
	Rows      int                `json:"rows"`
	Skipped   map[SkipReason]int `json:"skipped"`
	Taxa      int                `json:"taxa"`
	Conflicts int                `json:"conflicts"`
}

// SkippedTotal returns the number of data lines that produced no observation.
func (s RunStats) SkippedTotal() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

// Result is the outcome of one complete pass.
type Result struct {
	Records   []domain.TaxonSummary
	Conflicts []domain.NameConflict
	Stats     RunStats
}
