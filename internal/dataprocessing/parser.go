package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"assemblystats/pkg/contracts/domain"
)

// Column positions (0-indexed) in the NCBI assembly_summary table.
const (
	ColTaxID        = 5
	ColOrganismName = 7
	ColGenomeSize   = 25
	ColGCPercent    = 27
	ColCDSCount     = 35

	// MinColumns is the shortest row that still reaches every used column.
	MinColumns = ColCDSCount + 1
)

// CommentPrefix marks header and comment lines.
const CommentPrefix = "#"

// SkipReason explains why a line produced no observation.
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipComment  SkipReason = "comment"
	SkipShortRow SkipReason = "short_row"
	SkipBadTaxID SkipReason = "bad_taxid"
)

// IsComment reports whether line is a comment rather than a data row.
func IsComment(line string) bool {
	return strings.HasPrefix(line, CommentPrefix)
}

// SplitRow strips the line terminator and splits on tabs.
func SplitRow(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	return strings.Split(line, "\t")
}

// ExtractObservation builds an observation from the fields of one data row.
// Rows that are too short or whose taxid is not an integer are rejected as a
// whole; every other problem only drops the affected attribute.
func ExtractObservation(fields []string) (domain.Observation, SkipReason) {
	if len(fields) < MinColumns {
		return domain.Observation{}, SkipShortRow
	}

	taxID, err := strconv.ParseInt(strings.TrimSpace(fields[ColTaxID]), 10, 64)
	if err != nil {
		return domain.Observation{}, SkipBadTaxID
	}

	obs := domain.Observation{
		TaxID:        taxID,
		OrganismName: fields[ColOrganismName],
	}
	if v, ok := ParseNumber(fields[ColGenomeSize]); ok {
		obs.GenomeSize = &v
	}
	if v, ok := ParseGCPercent(fields[ColGCPercent]); ok {
		obs.GCPercent = &v
	}
	if v, ok := ParseCount(fields[ColCDSCount]); ok {
		obs.CDSCount = &v
	}
	return obs, SkipNone
}

// ParseNumber parses a finite decimal number. Empty cells, "na" and other
// non-numeric text, NaN and infinities are all reported as absent.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseGCPercent is ParseNumber restricted to [0,100]. Out-of-range values
// are absent, not clamped.
func ParseGCPercent(s string) (float64, bool) {
	v, ok := ParseNumber(s)
	if !ok || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

// ParseCount parses a count that may be written as a decimal ("4288.0") and
// truncates it toward zero.
func ParseCount(s string) (int64, bool) {
	v, ok := ParseNumber(s)
	if !ok || math.Abs(v) >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
