package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assemblystats/pkg/contracts/domain"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{50.5, "50.5"},
		{4.641652, "4.641652"},
		{1000000, "1000000.0"},
		{3000.6666666666665, "3000.6666666666665"},
		{0.0001, "0.0001"},
		{0.000015, "1.5e-05"},
		{1e16, "1e+16"},
		{123456789012345678, "1.2345678901234568e+17"},
		{9999999999999998, "9999999999999998.0"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFloat(tt.in))
		})
	}
}

func TestHeader(t *testing.T) {
	require.Len(t, Header, 20)
	assert.Equal(t, "Species", Header[0])
	assert.Equal(t, "Assembly_count", Header[6])
	assert.Equal(t, "GC_Stdev", Header[11])
	assert.Equal(t, "CDS_count", Header[18])
	assert.Equal(t, "Consensus_TAXID", Header[19])
}

func sampleRecord() domain.TaxonSummary {
	return domain.TaxonSummary{
		Species: "Foo bar",
		GenomeSize: domain.StatSummary{
			Available: true, Min: 1, Max: 9000, Median: 1, Mean: 3000.6666666666665,
			StdDev: 5195.575428756785, Count: 3,
		},
		GCPercent: domain.NotAvailable(),
		CDSCount: domain.StatSummary{
			Available: true, Min: 900, Max: 950, Median: 925, Mean: 925, StdDev: 35.5, Count: 2,
		},
		TaxID: 1234,
	}
}

func TestRow(t *testing.T) {
	row := Row(sampleRecord())

	require.Len(t, row, len(Header))
	assert.Equal(t, []string{
		"Foo bar",
		"1.0", "9000.0", "1.0", "3000.6666666666665", "5195.575428756785", "3",
		"NA", "NA", "NA", "NA", "NA", "NA",
		"900", "950", "925.0", "925", "35.5", "2",
		"1234",
	}, row)
}

func TestRow_ExactValues(t *testing.T) {
	rec := domain.TaxonSummary{
		Species: "Bar baz",
		GenomeSize: domain.StatSummary{
			Available: true, Min: 2.5, Max: 2.5, Median: 2.5, Mean: 2.5, Count: 1,
		},
		GCPercent: domain.StatSummary{
			Available: true, Min: 40, Max: 40, Median: 40, Mean: 40, Count: 1,
		},
		CDSCount: domain.StatSummary{
			Available: true, Min: 2000, Max: 2900, Median: 2446, Mean: 2449, StdDev: 450.0, Count: 3,
		},
		TaxID: 99,
	}

	row := Row(rec)

	require.Len(t, row, len(Header))
	assert.Equal(t, "0.0", row[5], "genome size spread is a scaled float")
	assert.Equal(t, "40.0", row[9])
	assert.Equal(t, "0", row[11], "a lone GC sample has no spread")
	assert.Equal(t, "2446", row[15], "odd median is a sample")
	assert.Equal(t, "2449", row[16], "exact mean has no fraction")
	assert.Equal(t, "450.0", row[17], "stdev stays a float")

	rec.CDSCount = domain.StatSummary{
		Available: true, Min: 900, Max: 951, Median: 925.5, Mean: 925.5, StdDev: 36.06, Count: 2,
	}
	row = Row(rec)
	assert.Equal(t, "925.5", row[15])
	assert.Equal(t, "925.5", row[16])

	rec.CDSCount = domain.StatSummary{
		Available: true, Min: 4288, Max: 4288, Median: 4288, Mean: 4288, Count: 1,
	}
	row = Row(rec)
	assert.Equal(t, []string{"4288", "4288", "4288", "4288", "0", "1"}, row[13:19])
}

func TestRow_AllNA(t *testing.T) {
	row := Row(domain.TaxonSummary{Species: "Nothing", TaxID: 7})

	require.Len(t, row, len(Header))
	assert.Equal(t, "Nothing", row[0])
	for i := 1; i < 19; i++ {
		assert.Equal(t, NA, row[i], "column %s", Header[i])
	}
	assert.Equal(t, "7", row[19])
}

func TestValues(t *testing.T) {
	values := Values(sampleRecord())

	require.Len(t, values, len(Header))
	assert.Equal(t, "Foo bar", values[0])
	assert.Equal(t, 1.0, values[1])
	assert.Equal(t, 3, values[6])
	assert.Equal(t, NA, values[7])
	assert.Equal(t, int64(900), values[13])
	assert.Equal(t, 925.0, values[15])
	assert.Equal(t, int64(1234), values[19])
}
