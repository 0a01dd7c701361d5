package exporter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"assemblystats/pkg/contracts/domain"
)

// TableName is the table holding the report.
const TableName = "assembly_stats"

// sqlColumnTypes parallels Header.
var sqlColumnTypes = []string{
	"TEXT NOT NULL",
	"REAL", "REAL", "REAL", "REAL", "REAL", "INTEGER NOT NULL",
	"REAL", "REAL", "REAL", "REAL", "REAL", "INTEGER NOT NULL",
	"INTEGER", "INTEGER", "REAL", "REAL", "REAL", "INTEGER NOT NULL",
	"INTEGER PRIMARY KEY",
}

func createTableSQL() string {
	cols := make([]string, len(Header))
	for i, h := range Header {
		cols[i] = fmt.Sprintf("%q %s", h, sqlColumnTypes[i])
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", TableName, strings.Join(cols, ",\n\t"))
}

func insertSQL() string {
	cols := make([]string, len(Header))
	for i, h := range Header {
		cols[i] = fmt.Sprintf("%q", h)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Header)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", TableName, strings.Join(cols, ", "), placeholders)
}

// WriteSQLite writes the report as a one-table SQLite database, replacing
// any database already at path. Statistics that are NA are stored as NULL
// with a count of 0.
func WriteSQLite(ctx context.Context, path string, records []domain.TaxonSummary) (retErr error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove old database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("close sqlite: %w", err)
		}
	}()

	if _, err := db.ExecContext(ctx, createTableSQL()); err != nil {
		return fmt.Errorf("create %s table: %w", TableName, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSQL())
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, sqlValues(rec)...); err != nil {
			return fmt.Errorf("insert taxid %d: %w", rec.TaxID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// sqlValues is Values with NULL in place of NA.
func sqlValues(rec domain.TaxonSummary) []any {
	values := make([]any, 0, len(Header))
	values = append(values, rec.Species)
	values = appendSQLSummary(values, rec.GenomeSize, false)
	values = appendSQLSummary(values, rec.GCPercent, false)
	values = appendSQLSummary(values, rec.CDSCount, true)
	return append(values, rec.TaxID)
}

func appendSQLSummary(values []any, s domain.StatSummary, integral bool) []any {
	if s.IsNA() {
		return append(values, nil, nil, nil, nil, nil, 0)
	}
	if integral {
		values = append(values, int64(s.Min), int64(s.Max))
	} else {
		values = append(values, s.Min, s.Max)
	}
	return append(values, s.Median, s.Mean, s.StdDev, s.Count)
}
