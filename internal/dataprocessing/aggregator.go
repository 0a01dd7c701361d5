package dataprocessing

import (
	"log/slog"

	"assemblystats/pkg/contracts/domain"
)

// MaxRecordedConflicts caps how many name conflicts Conflicts returns.
// Every conflict is still logged and counted.
const MaxRecordedConflicts = 1000

// TaxonAccumulator collects every validated observation for one taxid.
// Its lists only ever hold values that passed field validation.
type TaxonAccumulator struct {
	TaxID       int64
	Species     string
	GenomeSizes []float64
	GCPercents  []float64
	CDSCounts   []int64
}

// newTaxonAccumulator creates the accumulator on first sight of a taxid.
// The first organism name seen becomes the consensus species name.
func newTaxonAccumulator(taxID int64, species string) *TaxonAccumulator {
	return &TaxonAccumulator{
		TaxID:       taxID,
		Species:     species,
		GenomeSizes: []float64{},
		GCPercents:  []float64{},
		CDSCounts:   []int64{},
	}
}

// CDSValues returns the CDS counts as floats for filtering and summarizing.
func (t *TaxonAccumulator) CDSValues() []float64 {
	out := make([]float64, len(t.CDSCounts))
	for i, v := range t.CDSCounts {
		out[i] = float64(v)
	}
	return out
}

// Aggregator folds observations into per-taxid accumulators. It is the only
// writer of accumulator state and is not safe for concurrent use.
type Aggregator struct {
	logger    *slog.Logger
	observer  Observer
	taxa      map[int64]*TaxonAccumulator
	order     []int64
	conflicts []domain.NameConflict
	nConflict int
}

// NewAggregator creates an empty aggregator. A nil logger uses slog.Default
// and a nil observer discards events.
func NewAggregator(logger *slog.Logger, observer Observer) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Aggregator{
		logger:   logger,
		observer: observer,
		taxa:     make(map[int64]*TaxonAccumulator),
	}
}

// Add folds one observation into its taxon. line is the 1-based source line
// number used in diagnostics; pass 0 when unknown.
func (a *Aggregator) Add(obs domain.Observation, line int) {
	acc, ok := a.taxa[obs.TaxID]
	if !ok {
		acc = newTaxonAccumulator(obs.TaxID, obs.OrganismName)
		a.taxa[obs.TaxID] = acc
		a.order = append(a.order, obs.TaxID)
	} else if acc.Species != obs.OrganismName {
		a.recordConflict(domain.NameConflict{
			TaxID:    obs.TaxID,
			Kept:     acc.Species,
			Rejected: obs.OrganismName,
			Line:     line,
		})
	}

	if obs.GenomeSize != nil {
		acc.GenomeSizes = append(acc.GenomeSizes, *obs.GenomeSize)
	} else {
		a.observer.FieldMissing(AttrGenomeSize)
	}
	if obs.GCPercent != nil {
		acc.GCPercents = append(acc.GCPercents, *obs.GCPercent)
	} else {
		a.observer.FieldMissing(AttrGCPercent)
	}
	if obs.CDSCount != nil {
		acc.CDSCounts = append(acc.CDSCounts, *obs.CDSCount)
	} else {
		a.observer.FieldMissing(AttrCDSCount)
	}
}

func (a *Aggregator) recordConflict(c domain.NameConflict) {
	a.nConflict++
	if len(a.conflicts) < MaxRecordedConflicts {
		a.conflicts = append(a.conflicts, c)
	}
	a.observer.NameConflict(c)
	a.logger.Debug("taxid has multiple organism names",
		slog.Int64("taxid", c.TaxID),
		slog.String("kept", c.Kept),
		slog.String("rejected", c.Rejected),
		slog.Int("line", c.Line))
}

// Len returns the number of distinct taxids seen.
func (a *Aggregator) Len() int {
	return len(a.taxa)
}

// Get returns the accumulator for taxID.
func (a *Aggregator) Get(taxID int64) (*TaxonAccumulator, bool) {
	acc, ok := a.taxa[taxID]
	return acc, ok
}

// Each calls fn for every accumulator in first-seen order.
func (a *Aggregator) Each(fn func(*TaxonAccumulator)) {
	for _, id := range a.order {
		fn(a.taxa[id])
	}
}

// Conflicts returns up to MaxRecordedConflicts recorded name conflicts.
func (a *Aggregator) Conflicts() []domain.NameConflict {
	return a.conflicts
}

// ConflictCount returns the total number of name conflicts seen.
func (a *Aggregator) ConflictCount() int {
	return a.nConflict
}
