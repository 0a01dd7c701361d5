package exporter

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"assemblystats/internal/config"
	apperrors "assemblystats/internal/errors"
	"assemblystats/pkg/contracts/domain"
)

// Formats lists the supported report formats.
var Formats = []string{config.FormatTSV, config.FormatXLSX, config.FormatSQLite}

// Recorder receives the number of records written per format.
type Recorder interface {
	RecordReport(ctx context.Context, format string, records int)
}

// ReportWriter writes one run's report in every requested format.
type ReportWriter struct {
	paths    *config.ReportPaths
	logger   *slog.Logger
	recorder Recorder
}

// NewReportWriter creates a writer for paths. logger and recorder may be nil.
func NewReportWriter(paths *config.ReportPaths, logger *slog.Logger, recorder Recorder) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		paths:    paths,
		logger:   logger,
		recorder: recorder,
	}
}

// Write writes records in each format concurrently and returns the files
// written, in format order. Duplicate formats are written once.
func (w *ReportWriter) Write(ctx context.Context, formats []string, records []domain.TaxonSummary) ([]string, error) {
	formats = dedupe(formats)
	for _, format := range formats {
		if !slices.Contains(Formats, format) {
			return nil, apperrors.NewValidationError("unsupported report format", nil).
				WithContext("format", format)
		}
	}

	if err := w.paths.EnsureDirectories(); err != nil {
		return nil, apperrors.NewStorageError("failed to prepare output directory", err)
	}

	files := make([]string, len(formats))
	g, gctx := errgroup.WithContext(ctx)

	for i, format := range formats {
		path := w.paths.ReportPath(format)
		files[i] = path

		g.Go(func() error {
			w.logger.InfoContext(gctx, "writing output file",
				slog.String("path", path),
				slog.String("format", format),
				slog.Int("record_count", len(records)))

			var err error
			switch format {
			case config.FormatXLSX:
				err = WriteXLSX(path, records)
			case config.FormatSQLite:
				err = WriteSQLite(gctx, path, records)
			default:
				err = WriteTSV(path, records)
			}
			if err != nil {
				return apperrors.NewStorageError("failed to write report", err).
					WithContext("path", path)
			}

			if w.recorder != nil {
				w.recorder.RecordReport(gctx, format, len(records))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
