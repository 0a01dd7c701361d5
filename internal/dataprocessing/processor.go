package dataprocessing

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	apperrors "assemblystats/internal/errors"
)

// Processor runs the two-phase pipeline: stream every line into an
// Aggregator, then reduce each taxon to a report record. Nothing is emitted
// until the input is exhausted.
type Processor struct {
	logger   *slog.Logger
	observer Observer
	opts     ProcessingOptions
}

// NewProcessor creates a processor. A nil logger uses slog.Default and a nil
// observer discards events.
func NewProcessor(logger *slog.Logger, observer Observer, opts ProcessingOptions) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultOptions().MaxLineBytes
	}
	return &Processor{
		logger:   logger,
		observer: observer,
		opts:     opts,
	}
}

// Process consumes r to the end and returns one record per taxid. Bad rows
// and bad fields are skipped silently; only a read failure is an error, and
// then no partial result is returned.
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Result, error) {
	agg, stats, err := p.aggregate(ctx, r)
	if err != nil {
		return nil, err
	}

	summarizer := NewSummarizer(p.logger, p.observer, p.opts.Filter)
	records := summarizer.SummarizeAll(ctx, agg)

	return &Result{
		Records:   records,
		Conflicts: agg.Conflicts(),
		Stats:     stats,
	}, nil
}

// aggregate is phase one.
func (p *Processor) aggregate(ctx context.Context, r io.Reader) (*Aggregator, RunStats, error) {
	p.logger.InfoContext(ctx, "reading assembly summary file")

	agg := NewAggregator(p.logger, p.observer)
	stats := RunStats{Skipped: make(map[SkipReason]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, p.opts.MaxLineBytes)), p.opts.MaxLineBytes)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()

		if IsComment(line) {
			stats.Comments++
			continue
		}

		stats.Rows++
		p.observer.RowRead()

		obs, reason := ExtractObservation(SplitRow(line))
		if reason != SkipNone {
			stats.Skipped[reason]++
			p.observer.RowSkipped(reason)
			p.logger.DebugContext(ctx, "skipping row",
				slog.Int("line", stats.Lines),
				slog.String("reason", string(reason)))
			continue
		}
		agg.Add(obs, stats.Lines)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, RunStats{}, apperrors.NewTransportError("input line exceeds the configured limit", err).
				WithContext("line", stats.Lines+1).
				WithContext("max_line_bytes", p.opts.MaxLineBytes)
		}
		return nil, RunStats{}, apperrors.NewTransportError("failed to read assembly summary", err).
			WithContext("line", stats.Lines+1)
	}

	stats.Taxa = agg.Len()
	stats.Conflicts = agg.ConflictCount()

	p.logger.InfoContext(ctx, "collected data for tax IDs",
		slog.Int("taxon_count", stats.Taxa),
		slog.Int("lines", stats.Lines),
		slog.Int("rows_skipped", stats.SkippedTotal()),
		slog.Int("name_conflicts", stats.Conflicts))

	return agg, stats, nil
}
