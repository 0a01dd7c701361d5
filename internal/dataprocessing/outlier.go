package dataprocessing

import (
	"math"
	"sort"
)

// IQRFilter drops values outside [Q1 - k*IQR, Q3 + k*IQR].
type IQRFilter struct {
	// Multiplier is k, normally 1.5.
	Multiplier float64
	// MinSampleSize is the smallest sample that gets filtered. Smaller
	// samples are returned unchanged because their quartiles are unreliable.
	MinSampleSize int
}

// DefaultIQRFilter returns the Tukey fence filter (k = 1.5, at least 4 values).
func DefaultIQRFilter() IQRFilter {
	return IQRFilter{Multiplier: 1.5, MinSampleSize: 4}
}

// Bounds returns the inclusive fences for values.
func (f IQRFilter) Bounds(values []float64) (lower, upper float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := Percentile(sorted, 25)
	q3 := Percentile(sorted, 75)
	iqr := q3 - q1
	return q1 - f.Multiplier*iqr, q3 + f.Multiplier*iqr
}

// Apply returns the values inside the fences. The input is never modified;
// below MinSampleSize it is returned as is.
func (f IQRFilter) Apply(values []float64) []float64 {
	if len(values) < f.MinSampleSize {
		return values
	}

	lower, upper := f.Bounds(values)
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if lower <= v && v <= upper {
			kept = append(kept, v)
		}
	}
	return kept
}

// Percentile returns the p-th percentile (0..100) of an ascending slice by
// linear interpolation between closest ranks, the "inclusive" method used by
// numpy.percentile and Excel PERCENTILE.INC. It returns NaN for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
