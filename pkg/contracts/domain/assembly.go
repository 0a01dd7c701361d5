package domain

import "fmt"

// Observation is one validated row of the assembly summary table.
//
// TaxID and OrganismName are always present. The numeric attributes are
// optional: a nil pointer means the source cell was empty, non-numeric or
// (for GC percentage) outside [0,100].
//
// Usage:
//
//	obs := Observation{
//	    TaxID:        562,
//	    OrganismName: "Escherichia coli",
//	    GenomeSize:   Float(4641652),
//	    GCPercent:    Float(50.5),
//	    CDSCount:     Int(4288),
//	}
type Observation struct {
	TaxID        int64    `json:"taxid"`
	OrganismName string   `json:"organism_name"`
	GenomeSize   *float64 `json:"genome_size,omitempty"`
	GCPercent    *float64 `json:"gc_percent,omitempty"`
	CDSCount     *int64   `json:"cds_count,omitempty"`
}

// Float returns a pointer to v, for building observations.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building observations.
func Int(v int64) *int64 { return &v }

// StatSummary is the six-number summary of one numeric attribute.
//
// The zero value is the "not available" sentinel: Available is false and
// Count is 0. Every renderer must print NA for all five statistics when
// Available is false.
type StatSummary struct {
	Available bool    `json:"available"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Median    float64 `json:"median"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stdev"`
	Count     int     `json:"count"`
}

// NotAvailable returns the sentinel summary.
func NotAvailable() StatSummary {
	return StatSummary{}
}

// IsNA reports whether s is the "not available" sentinel.
func (s StatSummary) IsNA() bool {
	return !s.Available
}

// Scale divides every length-like statistic by divisor. Count is a
// cardinality and is left untouched; the sentinel is returned unchanged.
func (s StatSummary) Scale(divisor float64) StatSummary {
	if s.IsNA() || divisor == 0 {
		return s
	}
	s.Min /= divisor
	s.Max /= divisor
	s.Median /= divisor
	s.Mean /= divisor
	s.StdDev /= divisor
	return s
}

// TaxonSummary is one output row of the assembly statistics report.
// GenomeSize is expressed in megabase pairs.
type TaxonSummary struct {
	Species    string      `json:"species"`
	GenomeSize StatSummary `json:"genome_size_mb"`
	GCPercent  StatSummary `json:"gc_percent"`
	CDSCount   StatSummary `json:"cds_count"`
	TaxID      int64       `json:"consensus_taxid"`
}

// String implements fmt.Stringer for log output.
func (t TaxonSummary) String() string {
	return fmt.Sprintf("%s (taxid %d, %d assemblies)", t.Species, t.TaxID, t.GenomeSize.Count)
}

// NameConflict records a later organism name that disagreed with the
// first-seen name for the same taxonomic identifier.
type NameConflict struct {
	TaxID    int64  `json:"taxid"`
	Kept     string `json:"kept"`
	Rejected string `json:"rejected"`
	Line     int    `json:"line,omitempty"`
}
