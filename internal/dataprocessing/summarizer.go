package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"assemblystats/pkg/contracts/domain"
)

// Summarizer turns accumulators into report records: each attribute is
// outlier-filtered, reduced to a six-number summary and, for genome size,
// converted to megabase pairs.
type Summarizer struct {
	logger   *slog.Logger
	observer Observer
	filter   IQRFilter
}

// NewSummarizer creates a summarizer using filter for every attribute.
func NewSummarizer(logger *slog.Logger, observer Observer, filter IQRFilter) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Summarizer{
		logger:   logger,
		observer: observer,
		filter:   filter,
	}
}

// SummarizeTaxon builds the report record for one taxon. Attributes are
// filtered independently of each other and of every other taxon.
func (s *Summarizer) SummarizeTaxon(acc *TaxonAccumulator) domain.TaxonSummary {
	record := domain.TaxonSummary{
		Species:    acc.Species,
		GenomeSize: ToMegabases(Summarize(s.filtered(AttrGenomeSize, acc.GenomeSizes))),
		GCPercent:  Summarize(s.filtered(AttrGCPercent, acc.GCPercents)),
		CDSCount:   Summarize(s.filtered(AttrCDSCount, acc.CDSValues())),
		TaxID:      acc.TaxID,
	}
	s.observer.TaxonSummarized()
	return record
}

// SummarizeAll reduces every accumulator, in first-seen taxid order.
func (s *Summarizer) SummarizeAll(ctx context.Context, agg *Aggregator) []domain.TaxonSummary {
	records := make([]domain.TaxonSummary, 0, agg.Len())
	agg.Each(func(acc *TaxonAccumulator) {
		records = append(records, s.SummarizeTaxon(acc))
	})

	s.logger.InfoContext(ctx, "summarized taxa",
		slog.Int("taxon_count", len(records)))
	return records
}

func (s *Summarizer) filtered(attr Attribute, values []float64) []float64 {
	kept := s.filter.Apply(values)
	if removed := len(values) - len(kept); removed > 0 {
		s.observer.OutliersRemoved(attr, removed)
	}
	return kept
}

// Summarize computes min, max, median, mean, sample standard deviation and
// count. An empty input yields the "not available" sentinel; a single value
// has a standard deviation of 0.
func Summarize(values []float64) domain.StatSummary {
	if len(values) == 0 {
		return domain.NotAvailable()
	}

	lo, hi := stats.Bounds(values)
	summary := domain.StatSummary{
		Available: true,
		Min:       lo,
		Max:       hi,
		Median:    Median(values),
		Mean:      stats.Mean(values),
		Count:     len(values),
	}
	if len(values) >= 2 {
		summary.StdDev = stats.StdDev(values)
	}
	return summary
}

// Median returns the middle value, or the mean of the two middle values for
// an even count. values is not modified.
func Median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
