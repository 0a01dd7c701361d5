package dataprocessing

import (
	"bytes"
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assemblystats/pkg/contracts/domain"
)

func TestSummarize(t *testing.T) {
	t.Run("empty input is the sentinel", func(t *testing.T) {
		got := Summarize(nil)
		assert.True(t, got.IsNA())
		assert.Equal(t, 0, got.Count)
		assert.Equal(t, domain.NotAvailable(), Summarize([]float64{}))
	})

	t.Run("single value", func(t *testing.T) {
		got := Summarize([]float64{5})
		assert.Equal(t, domain.StatSummary{
			Available: true,
			Min:       5,
			Max:       5,
			Median:    5,
			Mean:      5,
			StdDev:    0,
			Count:     1,
		}, got)
	})

	t.Run("even count", func(t *testing.T) {
		got := Summarize([]float64{4, 1, 3, 2})
		assert.True(t, got.Available)
		assert.Equal(t, 1.0, got.Min)
		assert.Equal(t, 4.0, got.Max)
		assert.Equal(t, 2.5, got.Median)
		assert.InDelta(t, 2.5, got.Mean, 1e-12)
		assert.InDelta(t, math.Sqrt(5.0/3.0), got.StdDev, 1e-12)
		assert.InDelta(t, 1.291, got.StdDev, 1e-3)
		assert.Equal(t, 4, got.Count)
	})

	t.Run("odd count", func(t *testing.T) {
		got := Summarize([]float64{9, 1, 5})
		assert.Equal(t, 5.0, got.Median)
		assert.InDelta(t, 5.0, got.Mean, 1e-12)
		assert.InDelta(t, 4.0, got.StdDev, 1e-12)
	})
}

func TestSummarize_AgreesWithExactMean(t *testing.T) {
	values := []float64{4641652, 4700000, 4598321, 5020113, 4811870, 4755432, 4699999}

	exact := new(big.Rat)
	for _, v := range values {
		exact.Add(exact, new(big.Rat).SetFloat64(v))
	}
	exact.Quo(exact, big.NewRat(int64(len(values)), 1))
	want, _ := exact.Float64()

	got := Summarize(values)
	assert.InEpsilon(t, want, got.Mean, 1e-15, "mean within rounding of the exact value")
	assert.InEpsilon(t, want/1e6, ToMegabases(got).Mean, 1e-15)
}

func TestMedian(t *testing.T) {
	values := []float64{3, 1, 2}
	assert.Equal(t, 2.0, Median(values))
	assert.Equal(t, []float64{3, 1, 2}, values, "input must not be sorted in place")
	assert.Equal(t, 1.5, Median([]float64{2, 1}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestToMegabases(t *testing.T) {
	in := domain.StatSummary{Available: true, Min: 1e6, Max: 5e6, Median: 3e6, Mean: 3e6, StdDev: 2e6, Count: 3}

	got := ToMegabases(in)
	assert.Equal(t, 3.0, got.Mean)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 5.0, got.Max)
	assert.Equal(t, 3.0, got.Median)
	assert.Equal(t, 2.0, got.StdDev)
	assert.Equal(t, 3, got.Count)

	assert.Equal(t, domain.NotAvailable(), ToMegabases(domain.NotAvailable()))
}

func TestSummarizer_SummarizeTaxon(t *testing.T) {
	obs := newRecordingObserver()
	s := NewSummarizer(nil, obs, DefaultIQRFilter())

	acc := newTaxonAccumulator(562, "Escherichia coli")
	acc.GenomeSizes = []float64{4.6e6, 4.7e6, 4.8e6, 4.9e6, 90e6}
	acc.GCPercents = []float64{50, 51}
	acc.CDSCounts = []int64{4000, 4100, 4200, 4300, 10}

	got := s.SummarizeTaxon(acc)

	assert.Equal(t, "Escherichia coli", got.Species)
	assert.Equal(t, int64(562), got.TaxID)

	assert.Equal(t, 4, got.GenomeSize.Count)
	assert.InDelta(t, 4.6, got.GenomeSize.Min, 1e-9)
	assert.InDelta(t, 4.9, got.GenomeSize.Max, 1e-9)
	assert.InDelta(t, 4.75, got.GenomeSize.Mean, 1e-9)

	assert.Equal(t, 2, got.GCPercent.Count)
	assert.Equal(t, 50.5, got.GCPercent.Median)

	assert.Equal(t, 4, got.CDSCount.Count)
	assert.Equal(t, 4000.0, got.CDSCount.Min)

	assert.Equal(t, 1, obs.outliers[AttrGenomeSize])
	assert.Equal(t, 1, obs.outliers[AttrCDSCount])
	assert.Equal(t, 0, obs.outliers[AttrGCPercent])
	assert.Equal(t, 1, obs.taxa)
}

func TestSummarizer_EmptyAttributes(t *testing.T) {
	s := NewSummarizer(nil, nil, DefaultIQRFilter())
	got := s.SummarizeTaxon(newTaxonAccumulator(7, "Nothing measured"))

	assert.True(t, got.GenomeSize.IsNA())
	assert.True(t, got.GCPercent.IsNA())
	assert.True(t, got.CDSCount.IsNA())
}

func TestSummarizer_SummarizeAll(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(nil, nil)
	agg.Add(domain.Observation{TaxID: 2, OrganismName: "b", GenomeSize: domain.Float(2e6)}, 1)
	agg.Add(domain.Observation{TaxID: 1, OrganismName: "a", GenomeSize: domain.Float(1e6)}, 2)

	s := NewSummarizer(debugLogger(&buf), nil, DefaultIQRFilter())
	records := s.SummarizeAll(context.Background(), agg)

	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].TaxID)
	assert.Equal(t, 2.0, records[0].GenomeSize.Mean)
	assert.Equal(t, int64(1), records[1].TaxID)
	assert.Contains(t, buf.String(), "taxon_count=2")
}

func TestSummarizer_RecordShape(t *testing.T) {
	acc := newTaxonAccumulator(7, "Seven")
	acc.GenomeSizes = []float64{2_000_000, 4_000_000}
	acc.GCPercents = []float64{40, 50, 60}

	got := NewSummarizer(nil, nil, DefaultIQRFilter()).SummarizeTaxon(acc)

	want := domain.TaxonSummary{
		Species: "Seven",
		GenomeSize: domain.StatSummary{
			Available: true, Min: 2, Max: 4, Median: 3, Mean: 3, StdDev: math.Sqrt2, Count: 2,
		},
		GCPercent: domain.StatSummary{
			Available: true, Min: 40, Max: 60, Median: 50, Mean: 50, StdDev: 10, Count: 3,
		},
		CDSCount: domain.NotAvailable(),
		TaxID:    7,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("SummarizeTaxon() mismatch (-want +got):\n%s", diff)
	}
}
