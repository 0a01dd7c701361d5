// Package dataprocessing turns an NCBI assembly_summary table into robust
// per-taxid statistics for genome size, GC percentage and CDS count.
//
// # Architecture
//
// The package is organized into five components:
//
//  1. Parser: splits a line and extracts a validated Observation
//  2. Aggregator: folds observations into one TaxonAccumulator per taxid
//  3. IQRFilter: drops values outside 1.5×IQR of the quartiles
//  4. Summarizer: reduces each attribute to min/max/median/mean/stdev/count
//  5. ToMegabases: converts the genome-size summary from bp to Mb
//
// # Data Flow
//
//	lines → Parser → Observation → Aggregator ─┐
//	                                            │ (input exhausted)
//	TaxonAccumulator → IQRFilter → Summarize → TaxonSummary
//
// Processor wires the two phases together. The first phase holds every raw
// value in memory, because exact quartiles need the whole sample.
//
// # Usage
//
//	p := dataprocessing.NewProcessor(logger, observer, dataprocessing.DefaultOptions())
//	result, err := p.Process(ctx, reader)
//	if err != nil {
//	    return err // transport failure; no partial result
//	}
//	for _, rec := range result.Records {
//	    ...
//	}
//
// # Error Handling
//
// Malformed rows and fields never fail a run: short rows and rows with a
// non-integer taxid are skipped, and a bad numeric cell only drops that
// attribute. Conflicting organism names for one taxid keep the first name
// and are reported through the Observer and a debug log line. Only a read
// error on the underlying stream is returned.
package dataprocessing
