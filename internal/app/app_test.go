package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assemblystats/internal/config"
	"assemblystats/internal/dataprocessing"
	apperrors "assemblystats/internal/errors"
	"assemblystats/internal/infrastructure"
	"assemblystats/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "reports")
	cfg.Output.Formats = []string{config.FormatTSV, config.FormatXLSX}
	cfg.Telemetry.MetricsFile = filepath.Join(t.TempDir(), "assemblystats.prom")
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, logs *bytes.Buffer) *Application {
	t.Helper()
	logger, _, err := infrastructure.NewLogger(config.LoggingConfig{Level: "debug", Format: "text", Output: "console"}, logs)
	require.NoError(t, err)

	a, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	a.Now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local) }
	return a
}

func TestApplication_Run(t *testing.T) {
	input := testutil.WriteSummary(t,
		testutil.SummaryHeader[0],
		testutil.SummaryHeader[1],
		testutil.SummaryRow("1234", "Foo bar", "1000000", "50", "900"),
		testutil.SummaryRow("1234", "Foo bar", "1000000", "52", "950"),
		testutil.SummaryRow("1234", "Foo baz", "9000000000", "40", ""),
		testutil.SummaryRow("562", "Escherichia coli", "4641652", "50.8", "4288"),
		"too\tshort",
	)

	var logs bytes.Buffer
	cfg := testConfig(t)
	a := newTestApp(t, cfg, &logs)

	report, err := a.Run(context.Background(), input)
	require.NoError(t, err)
	require.NoError(t, a.Shutdown(context.Background()))

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Records)
	assert.Positive(t, report.BytesRead)
	assert.Equal(t, 1, report.Stats.SkippedTotal())
	assert.Equal(t, 1, report.Stats.Conflicts)
	assert.Len(t, report.Outliers, 3)

	wantTSV := filepath.Join(cfg.Output.Dir, "NCBI_Assembly_Stats_20261019.txt")
	wantXLSX := filepath.Join(cfg.Output.Dir, "NCBI_Assembly_Stats_20261019.xlsx")
	assert.Equal(t, []string{wantTSV, wantXLSX}, report.Files)

	content, err := os.ReadFile(wantTSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Species\tMin\tMax"))

	foo := strings.Split(lines[1], "\t")
	assert.Equal(t, "Foo bar", foo[0])
	assert.Equal(t, "1.0", foo[1])
	assert.Equal(t, "9000.0", foo[2])
	assert.Equal(t, "3", foo[6])
	assert.Equal(t, "1234", foo[19])

	ecoli := strings.Split(lines[2], "\t")
	assert.Equal(t, "Escherichia coli", ecoli[0])
	assert.Equal(t, "4288", ecoli[13])

	metrics, err := os.ReadFile(cfg.Telemetry.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "assemblystats_rows_read_total 5")
	assert.Contains(t, string(metrics), "assemblystats_name_conflicts_total 1")
	assert.Contains(t, string(metrics), `assemblystats_phase_duration_seconds_count{phase="export"} 1`)

	logged := logs.String()
	assert.Contains(t, logged, "run_id="+report.RunID)
	assert.Contains(t, logged, "collected data for tax IDs")
	assert.Contains(t, logged, "writing output file")
	assert.Contains(t, logged, "taxid has multiple organism names")
}

func TestApplication_Run_MissingInput(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t)
	a := newTestApp(t, cfg, &logs)
	defer a.Shutdown(context.Background())

	_, err := a.Run(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Contains(t, logs.String(), "run failed")
	assert.Contains(t, logs.String(), "error_type=NOT_FOUND")

	_, statErr := os.Stat(cfg.Output.Dir)
	assert.True(t, os.IsNotExist(statErr), "no report directory on failure")
}

func TestApplication_Run_Cancelled(t *testing.T) {
	input := testutil.WriteSummary(t, testutil.SummaryRow("1", "x", "1", "1", "1"))

	a := newTestApp(t, testConfig(t), &bytes.Buffer{})
	defer a.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApplication_Run_CustomFilter(t *testing.T) {
	input := testutil.WriteSummary(t,
		testutil.SummaryRow("9", "Nine", "4000000", "40", "100"),
		testutil.SummaryRow("9", "Nine", "4100000", "41", "110"),
		testutil.SummaryRow("9", "Nine", "4200000", "42", "120"),
		testutil.SummaryRow("9", "Nine", "80000000", "43", "130"),
	)

	cfg := testConfig(t)
	cfg.Output.Formats = []string{config.FormatTSV}
	cfg.Pipeline.MinSampleSize = 10

	a := newTestApp(t, cfg, &bytes.Buffer{})
	defer a.Shutdown(context.Background())

	report, err := a.Run(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)

	content, err := os.ReadFile(report.Files[0])
	require.NoError(t, err)
	row := strings.Split(strings.Split(string(content), "\n")[1], "\t")
	assert.Equal(t, "80.0", row[2], "small samples are not filtered")
	assert.Equal(t, "4", row[6])
}

func TestApplication_Run_CountsOutliers(t *testing.T) {
	var rows []string
	for _, cds := range []string{"100", "101", "102", "103", "104", "1000"} {
		rows = append(rows, testutil.SummaryRow("7", "Seven", "5000000", "50", cds))
	}
	input := testutil.WriteSummary(t, rows...)

	cfg := testConfig(t)
	cfg.Output.Formats = []string{config.FormatTSV}

	var logs bytes.Buffer
	a := newTestApp(t, cfg, &logs)
	defer a.Shutdown(context.Background())

	report, err := a.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, map[dataprocessing.Attribute]int{
		dataprocessing.AttrGenomeSize: 0,
		dataprocessing.AttrGCPercent:  0,
		dataprocessing.AttrCDSCount:   1,
	}, report.Outliers)
	assert.Contains(t, logs.String(), "outliers_removed=1")

	content, err := os.ReadFile(report.Files[0])
	require.NoError(t, err)
	row := strings.Split(strings.Split(string(content), "\n")[1], "\t")
	assert.Equal(t, "104", row[14], "the outlier is dropped")
	assert.Equal(t, "5", row[18])
}

func TestApplication_Run_LineLimit(t *testing.T) {
	input := testutil.WriteSummary(t,
		testutil.SummaryRow("562", "Escherichia coli", "4641652", "50.8", "4288"),
		testutil.SummaryRow("562", strings.Repeat("x", 4096), "4641652", "50.8", "4288"),
	)

	cfg := testConfig(t)
	cfg.Pipeline.MaxLineBytes = 1024
	require.NoError(t, cfg.Validate())

	var logs bytes.Buffer
	a := newTestApp(t, cfg, &logs)
	defer a.Shutdown(context.Background())

	_, err := a.Run(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeTransport))
	assert.Contains(t, logs.String(), "exceeds the configured limit")

	_, statErr := os.Stat(cfg.Output.Dir)
	assert.True(t, os.IsNotExist(statErr), "no report on a rejected input")
}

func TestApplication_Run_OutputBlocked(t *testing.T) {
	input := testutil.WriteSummary(t, testutil.SummaryRow("562", "Escherichia coli", "4641652", "50.8", "4288"))

	blocker := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	cfg := testConfig(t)
	cfg.Output.Dir = filepath.Join(blocker, "2026")

	logger, handler := testutil.NewTestLogger(t)
	a, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	defer a.Shutdown(context.Background())

	_, err = a.Run(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	failed, ok := handler.Find("run failed")
	require.True(t, ok)
	assert.Equal(t, "STORAGE", failed.Attrs["error_type"])
	assert.False(t, handler.ContainsMessage("collected data for tax IDs"), "input is never read")
}
