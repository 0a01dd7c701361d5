package exporter

import (
	"math"
	"strconv"
	"strings"

	"assemblystats/pkg/contracts/domain"
)

// NA marks a cell that could not be computed.
const NA = "NA"

// Header is the fixed report header.
var Header = []string{
	"Species",
	"Min", "Max", "Median", "Mean", "StDev", "Assembly_count",
	"GC_Min", "GC_Max", "GC_Median", "GC_Mean", "GC_Stdev", "GC_count",
	"CDS_Min", "CDS_Max", "CDS_Median", "CDS_Mean", "CDS_Stdev", "CDS_count",
	"Consensus_TAXID",
}

// summaryColumns is the number of cells each StatSummary occupies.
const summaryColumns = 6

// formatFloat renders f in shortest round-trip form. Integral values keep a
// trailing ".0" and very large or small magnitudes switch to exponent form,
// so 1e6 prints as 1000000.0 and 1e16 as 1e+16.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if exp < -4 || exp >= 16 {
			return sci
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatInt formats an int64 value for report output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// Row renders one record as report cells, in Header order.
func Row(rec domain.TaxonSummary) []string {
	row := make([]string, 0, len(Header))
	row = append(row, rec.Species)
	row = appendSummary(row, rec.GenomeSize, columnScaled)
	row = appendSummary(row, rec.GCPercent, columnReal)
	row = appendSummary(row, rec.CDSCount, columnIntegral)
	return append(row, formatInt(rec.TaxID))
}

// columnKind selects how exact values of an attribute are rendered.
type columnKind int

const (
	// columnScaled values went through a division, so every cell is a float.
	columnScaled columnKind = iota
	// columnReal values are floats, but a lone sample has a spread of 0.
	columnReal
	// columnIntegral values are counts. Exact results print as integers,
	// except the median of an even sample, which is a midpoint.
	columnIntegral
)

// appendSummary appends min, max, median, mean, stdev and count.
func appendSummary(row []string, s domain.StatSummary, kind columnKind) []string {
	if s.IsNA() {
		for i := 0; i < summaryColumns; i++ {
			row = append(row, NA)
		}
		return row
	}

	stdev := formatFloat(s.StdDev)
	if s.Count == 1 && kind != columnScaled {
		stdev = "0"
	}

	if kind != columnIntegral {
		return append(row,
			formatFloat(s.Min),
			formatFloat(s.Max),
			formatFloat(s.Median),
			formatFloat(s.Mean),
			stdev,
			strconv.Itoa(s.Count),
		)
	}

	median := formatFloat(s.Median)
	if s.Count%2 == 1 {
		median = formatInt(int64(s.Median))
	}
	return append(row,
		formatInt(int64(s.Min)),
		formatInt(int64(s.Max)),
		median,
		formatExact(s.Mean),
		stdev,
		strconv.Itoa(s.Count),
	)
}

// formatExact prints integral values without a fraction.
func formatExact(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return formatInt(int64(f))
	}
	return formatFloat(f)
}

// Values is Row with typed numeric cells, for spreadsheet output.
func Values(rec domain.TaxonSummary) []any {
	values := make([]any, 0, len(Header))
	values = append(values, rec.Species)
	values = appendSummaryValues(values, rec.GenomeSize, false)
	values = appendSummaryValues(values, rec.GCPercent, false)
	values = appendSummaryValues(values, rec.CDSCount, true)
	return append(values, rec.TaxID)
}

func appendSummaryValues(values []any, s domain.StatSummary, integral bool) []any {
	if s.IsNA() {
		for i := 0; i < summaryColumns; i++ {
			values = append(values, NA)
		}
		return values
	}

	if integral {
		values = append(values, int64(s.Min), int64(s.Max))
	} else {
		values = append(values, s.Min, s.Max)
	}
	return append(values, s.Median, s.Mean, s.StdDev, s.Count)
}
