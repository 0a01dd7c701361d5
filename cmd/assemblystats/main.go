// Command assemblystats summarizes an NCBI assembly_summary table per
// taxid and writes NCBI_Assembly_Stats_<YYYYMMDD>.txt.
//
// Usage:
//
//	assemblystats -d assembly_summary.txt [-o dir] [-format tsv,xlsx,sqlite]
//	assemblystats --path_database s3://bucket/assembly_summary.txt.gz
//	assemblystats -V
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"assemblystats/internal/app"
	"assemblystats/internal/config"
	"assemblystats/internal/infrastructure"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cliFlags are the command-line settings. Empty values leave the
// configuration untouched.
type cliFlags struct {
	input       string
	outDir      string
	formats     string
	logLevel    string
	metricsFile string
	configFile  string
	trace       bool
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.input, "d", "", "assembly summary: local path, http(s) URL, s3://bucket/key, or - for stdin")
	fs.StringVar(&f.input, "path_database", "", "same as -d")
	fs.StringVar(&f.outDir, "o", "", "output directory (default from config, usually the working directory)")
	fs.StringVar(&f.formats, "format", "", "comma-separated report formats: tsv, xlsx, sqlite")
	fs.StringVar(&f.logLevel, "log-level", "", "debug | info | warn | error")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile at exit")
	fs.StringVar(&f.configFile, "config", "", "YAML config file (default "+config.EnvPrefix+"_CONFIG_FILE or ./assemblystats.yaml)")
	fs.BoolVar(&f.trace, "trace", false, "print trace spans to stderr")
	fs.BoolVar(&f.version, "V", false, "print version and exit")
	fs.BoolVar(&f.version, "version", false, "same as -V")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return f, nil
}

// loadConfig layers the flags over file and environment configuration.
func loadConfig(f *cliFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configFile != "" {
		cfg, err = config.LoadFrom(f.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.outDir != "" {
		cfg.Output.Dir = f.outDir
	}
	if f.formats != "" {
		cfg.Output.Formats = strings.Split(f.formats, ",")
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.metricsFile != "" {
		cfg.Telemetry.MetricsFile = f.metricsFile
	}
	if f.trace {
		cfg.Telemetry.TraceExporter = infrastructure.TraceExporterStdout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	if f.version {
		fmt.Fprintln(stdout, config.VersionString())
		return exitOK
	}
	if f.input == "" {
		fmt.Fprintln(stderr, "error: -d/--path_database is required")
		return exitUsage
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}

	logger, logFile, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error: failed to initialize logger:", err)
		return exitError
	}
	if logFile != nil {
		defer logFile.Close()
	}
	prev := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(prev)

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("failed to start", slog.String("error", err.Error()))
		return exitError
	}

	_, runErr := application.Run(ctx, f.input)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
		if runErr == nil {
			return exitError
		}
	}

	if runErr != nil {
		return exitError
	}
	return exitOK
}
