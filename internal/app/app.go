package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"assemblystats/internal/config"
	"assemblystats/internal/dataprocessing"
	apperrors "assemblystats/internal/errors"
	"assemblystats/internal/exporter"
	"assemblystats/internal/infrastructure"
	"assemblystats/internal/source"
	"assemblystats/internal/validation"
)

// Phase names, used for spans and the phase duration histogram.
const (
	PhaseOpen    = "open"
	PhaseProcess = "process"
	PhaseExport  = "export"
)

// Application holds everything one run needs.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Metrics   *infrastructure.PipelineMetrics
	Runtime   *infrastructure.RuntimeMetrics

	// SourceOptions is derived from Config.Source; tests swap the transport.
	SourceOptions source.Options

	// Now returns the run time used to name report files.
	Now func() time.Time
}

// Report summarizes a completed run.
type Report struct {
	RunID     string
	Files     []string
	Records   int
	BytesRead int64
	Stats     dataprocessing.RunStats
	Outliers  map[dataprocessing.Attribute]int
	Runtime   infrastructure.RuntimeStats
}

// NewApplication creates an application with telemetry initialized from cfg.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize telemetry", err)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(tel.Meter)
	if err != nil {
		tel.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	runtimeMetrics, err := infrastructure.NewRuntimeMetrics(tel.Meter)
	if err != nil {
		tel.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create runtime metrics: %w", err)
	}

	return &Application{
		Config:        cfg,
		Logger:        logger,
		Telemetry:     tel,
		Metrics:       metrics,
		Runtime:       runtimeMetrics,
		SourceOptions: source.OptionsFromConfig(cfg.Source),
		Now:           time.Now,
	}, nil
}

// Run processes input and writes the report. Nothing is written unless the
// whole input was read successfully.
func (a *Application) Run(ctx context.Context, input string) (*Report, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, span := a.Telemetry.Tracer.Start(ctx, "assemblystats.run",
		trace.WithAttributes(attribute.String("input", input)))
	defer span.End()

	report := &Report{RunID: infrastructure.GetRunID(ctx)}

	a.Logger.InfoContext(ctx, "starting run",
		slog.String("version", config.VersionString()),
		slog.String("input", input),
		slog.Any("formats", a.Config.Output.Formats))

	var reader *source.Reader
	err := a.phase(ctx, PhaseOpen, func(ctx context.Context) error {
		if err := a.preflight(input); err != nil {
			return err
		}
		var err error
		reader, err = source.Open(ctx, input, a.SourceOptions)
		return err
	})
	if err != nil {
		return nil, a.fail(ctx, err)
	}
	defer reader.Close()

	var result *dataprocessing.Result
	tally := dataprocessing.NewOutlierTally()
	err = a.phase(ctx, PhaseProcess, func(ctx context.Context) error {
		observer := dataprocessing.MultiObserver{a.Metrics, tally}
		processor := dataprocessing.NewProcessor(a.Logger, observer, a.processingOptions())
		var err error
		result, err = processor.Process(ctx, contextReader{ctx: ctx, r: reader})
		return err
	})
	if err != nil {
		return nil, a.fail(ctx, err)
	}
	report.BytesRead = reader.BytesRead()
	report.Stats = result.Stats
	report.Records = len(result.Records)
	report.Outliers = tally.Removed()

	infrastructure.SetSpanAttributes(ctx, map[string]int{
		"rows":      result.Stats.Rows,
		"taxa":      result.Stats.Taxa,
		"conflicts": result.Stats.Conflicts,
		"outliers":  tally.Total(),
	})

	err = a.phase(ctx, PhaseExport, func(ctx context.Context) error {
		paths := config.NewReportPaths(a.Config.Output, a.Now())
		writer := exporter.NewReportWriter(paths, a.Logger, a.Metrics)
		var err error
		report.Files, err = writer.Write(ctx, a.Config.Output.Formats, result.Records)
		return err
	})
	if err != nil {
		return nil, a.fail(ctx, err)
	}

	report.Runtime = a.Runtime.Collect(ctx)

	a.Logger.InfoContext(ctx, "run complete",
		slog.Int("taxon_count", report.Records),
		slog.Int64("bytes_read", report.BytesRead),
		slog.Int("rows_skipped", report.Stats.SkippedTotal()),
		slog.Int("outliers_removed", tally.Total()),
		slog.Uint64("heap_alloc_bytes", report.Runtime.HeapAlloc),
		slog.Any("files", report.Files))

	return report, nil
}

// Shutdown writes the metrics textfile, if configured, and stops telemetry.
// Metrics must be gathered before the meter provider shuts down.
func (a *Application) Shutdown(ctx context.Context) error {
	metricsErr := a.Telemetry.WriteMetricsFile(a.Config.Telemetry.MetricsFile)
	if metricsErr != nil {
		a.Logger.ErrorContext(ctx, "failed to write metrics file", slog.String("error", metricsErr.Error()))
	}
	if err := a.Telemetry.Shutdown(ctx); err != nil {
		return err
	}
	return metricsErr
}

// preflight rejects a run that could never produce a report before any
// input is streamed.
func (a *Application) preflight(input string) error {
	v := validation.NewPathValidator(a.Logger)
	if source.IsLocalPath(input) {
		if err := v.ValidateInputFile(input); err != nil {
			return err
		}
	}
	return v.ValidateOutputDirectory(a.Config.Output.Dir)
}

func (a *Application) processingOptions() dataprocessing.ProcessingOptions {
	opts := dataprocessing.DefaultOptions()
	opts.Filter = dataprocessing.IQRFilter{
		Multiplier:    a.Config.Pipeline.IQRMultiplier,
		MinSampleSize: a.Config.Pipeline.MinSampleSize,
	}
	opts.MaxLineBytes = a.Config.Pipeline.MaxLineBytes
	return opts
}

// phase runs fn in a child span and records its duration.
func (a *Application) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := a.Telemetry.Tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	a.Metrics.RecordPhase(ctx, name, time.Since(start))

	if err != nil {
		infrastructure.RecordError(ctx, err)
	}
	return err
}

func (a *Application) fail(ctx context.Context, err error) error {
	infrastructure.RecordError(ctx, err)
	a.Logger.ErrorContext(ctx, "run failed",
		slog.String("error_type", string(apperrors.TypeOf(err))),
		slog.String("error", err.Error()))
	return err
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
