package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"assemblystats/internal/dataprocessing"
	"assemblystats/pkg/contracts/domain"
)

// PipelineMetrics counts pipeline events. It implements
// dataprocessing.Observer, so the processor feeds it directly.
type PipelineMetrics struct {
	rowsRead        metric.Int64Counter
	rowsSkipped     metric.Int64Counter
	fieldsMissing   metric.Int64Counter
	nameConflicts   metric.Int64Counter
	outliersRemoved metric.Int64Counter
	taxaSummarized  metric.Int64Counter
	phaseDuration   metric.Float64Histogram
	reportRecords   metric.Int64Counter
}

var _ dataprocessing.Observer = (*PipelineMetrics)(nil)

// CreatePipelineMetrics creates every instrument on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"assemblystats_rows_read",
		metric.WithDescription("Data rows read from the assembly summary"),
	)
	if err != nil {
		return nil, err
	}

	rowsSkipped, err := meter.Int64Counter(
		"assemblystats_rows_skipped",
		metric.WithDescription("Data rows that produced no observation, by reason"),
	)
	if err != nil {
		return nil, err
	}

	fieldsMissing, err := meter.Int64Counter(
		"assemblystats_fields_missing",
		metric.WithDescription("Numeric fields absent or rejected, by attribute"),
	)
	if err != nil {
		return nil, err
	}

	nameConflicts, err := meter.Int64Counter(
		"assemblystats_name_conflicts",
		metric.WithDescription("Rows whose organism name differed from the first name seen for the taxid"),
	)
	if err != nil {
		return nil, err
	}

	outliersRemoved, err := meter.Int64Counter(
		"assemblystats_outliers_removed",
		metric.WithDescription("Values dropped by the IQR filter, by attribute"),
	)
	if err != nil {
		return nil, err
	}

	taxaSummarized, err := meter.Int64Counter(
		"assemblystats_taxa_summarized",
		metric.WithDescription("Taxa reduced to a report record"),
	)
	if err != nil {
		return nil, err
	}

	phaseDuration, err := meter.Float64Histogram(
		"assemblystats_phase_duration_seconds",
		metric.WithDescription("Wall time of each pipeline phase"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	reportRecords, err := meter.Int64Counter(
		"assemblystats_report_records",
		metric.WithDescription("Records written, by report format"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		rowsRead:        rowsRead,
		rowsSkipped:     rowsSkipped,
		fieldsMissing:   fieldsMissing,
		nameConflicts:   nameConflicts,
		outliersRemoved: outliersRemoved,
		taxaSummarized:  taxaSummarized,
		phaseDuration:   phaseDuration,
		reportRecords:   reportRecords,
	}, nil
}

// RowRead implements dataprocessing.Observer
func (m *PipelineMetrics) RowRead() {
	m.rowsRead.Add(context.Background(), 1)
}

// RowSkipped implements dataprocessing.Observer
func (m *PipelineMetrics) RowSkipped(reason dataprocessing.SkipReason) {
	m.rowsSkipped.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", string(reason))))
}

// FieldMissing implements dataprocessing.Observer
func (m *PipelineMetrics) FieldMissing(attr dataprocessing.Attribute) {
	m.fieldsMissing.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("attribute", string(attr))))
}

// NameConflict implements dataprocessing.Observer
func (m *PipelineMetrics) NameConflict(domain.NameConflict) {
	m.nameConflicts.Add(context.Background(), 1)
}

// OutliersRemoved implements dataprocessing.Observer
func (m *PipelineMetrics) OutliersRemoved(attr dataprocessing.Attribute, n int) {
	m.outliersRemoved.Add(context.Background(), int64(n),
		metric.WithAttributes(attribute.String("attribute", string(attr))))
}

// TaxonSummarized implements dataprocessing.Observer
func (m *PipelineMetrics) TaxonSummarized() {
	m.taxaSummarized.Add(context.Background(), 1)
}

// RecordPhase records how long a named phase took.
func (m *PipelineMetrics) RecordPhase(ctx context.Context, phase string, d time.Duration) {
	m.phaseDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(attribute.String("phase", phase)))
}

// RecordReport records the number of records written in one format.
func (m *PipelineMetrics) RecordReport(ctx context.Context, format string, records int) {
	m.reportRecords.Add(ctx, int64(records),
		metric.WithAttributes(attribute.String("format", format)))
}
