package dataprocessing

import "assemblystats/pkg/contracts/domain"

// Attribute names one of the three summarized numeric columns.
type Attribute string

const (
	AttrGenomeSize Attribute = "genome_size"
	AttrGCPercent  Attribute = "gc_percent"
	AttrCDSCount   Attribute = "cds_count"
)

// Attributes lists every summarized attribute in report order.
var Attributes = []Attribute{AttrGenomeSize, AttrGCPercent, AttrCDSCount}

// Observer receives pipeline diagnostics. It is purely observational;
// nothing it does can change what the pipeline produces.
type Observer interface {
	RowRead()
	RowSkipped(reason SkipReason)
	FieldMissing(attr Attribute)
	NameConflict(conflict domain.NameConflict)
	OutliersRemoved(attr Attribute, n int)
	TaxonSummarized()
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) RowRead() {}
func (NopObserver) RowSkipped(SkipReason) {}
func (NopObserver) FieldMissing(Attribute) {}
func (NopObserver) NameConflict(domain.NameConflict) {}
func (NopObserver) OutliersRemoved(Attribute, int) {}
func (NopObserver) TaxonSummarized() {}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) RowRead() {
	for _, o := range m {
		o.RowRead()
	}
}

func (m MultiObserver) RowSkipped(reason SkipReason) {
	for _, o := range m {
		o.RowSkipped(reason)
	}
}

func (m MultiObserver) FieldMissing(attr Attribute) {
	for _, o := range m {
		o.FieldMissing(attr)
	}
}

func (m MultiObserver) NameConflict(conflict domain.NameConflict) {
	for _, o := range m {
		o.NameConflict(conflict)
	}
}

func (m MultiObserver) OutliersRemoved(attr Attribute, n int) {
	for _, o := range m {
		o.OutliersRemoved(attr, n)
	}
}

func (m MultiObserver) TaxonSummarized() {
	for _, o := range m {
		o.TaxonSummarized()
	}
}

// OutlierTally counts the samples the IQR filter dropped, per attribute, over
// one run. Not safe for concurrent use.
type OutlierTally struct {
	NopObserver
	removed map[Attribute]int
}

// NewOutlierTally creates an empty tally.
func NewOutlierTally() *OutlierTally {
	return &OutlierTally{removed: make(map[Attribute]int, len(Attributes))}
}

func (t *OutlierTally) OutliersRemoved(attr Attribute, n int) {
	t.removed[attr] += n
}

// Removed returns the count for every attribute, zero included.
func (t *OutlierTally) Removed() map[Attribute]int {
	out := make(map[Attribute]int, len(Attributes))
	for _, attr := range Attributes {
		out[attr] = t.removed[attr]
	}
	return out
}

// Total is the number of samples dropped across all attributes.
func (t *OutlierTally) Total() int {
	total := 0
	for _, n := range t.removed {
		total += n
	}
	return total
}
